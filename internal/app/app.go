package app

import (
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/cistech/market/internal/adapters/httpserver"
	"github.com/cistech/market/internal/adapters/identity/firebaseauth"
	"github.com/cistech/market/internal/adapters/repo/postgres"
	"github.com/cistech/market/internal/adapters/sms/twilio"
	"github.com/cistech/market/internal/adapters/storage/supabase"
	"github.com/cistech/market/internal/domain"
	"github.com/cistech/market/internal/usecase"
)

type App struct {
	DB *gorm.DB

	CatalogUC  *usecase.CatalogUC
	BasketUC   *usecase.BasketUC
	FavoriteUC *usecase.FavoriteUC
	MetadataUC *usecase.MetadataUC
	VendorUC   *usecase.VendorUC
	AdminUC    *usecase.AdminUC
	AuthUC     *usecase.AuthUC
	OrderUC    *usecase.OrderUC

	Identity domain.TokenVerifier
	Storage  domain.FileStorage
}

func NewApp(db *gorm.DB) (*App, error) {
	catalogRepo := postgres.NewCatalogRepo(db)
	metadataRepo := postgres.NewMetadataRepo(db)
	basketRepo := postgres.NewBasketRepo(db)
	favoriteRepo := postgres.NewFavoriteRepo(db)
	userRepo := postgres.NewUserRepo(db)
	vendorRepo := postgres.NewVendorRepo(db)
	orderRepo := postgres.NewOrderRepo(db)

	a := &App{DB: db}

	var serviceAccount []byte
	if path := os.Getenv("IDENTITY_SERVICE_ACCOUNT_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		serviceAccount = raw
	}
	identity, err := firebaseauth.NewClient(
		os.Getenv("IDENTITY_API_KEY"),
		os.Getenv("IDENTITY_PROJECT_ID"),
		serviceAccount,
	)
	if err != nil {
		log.Warn().Err(err).Msg("identity provider not configured; authenticated routes disabled")
	} else {
		a.Identity = identity
	}

	sms, err := twilio.NewClient(
		os.Getenv("TWILIO_ACCOUNT_SID"),
		os.Getenv("TWILIO_AUTH_TOKEN"),
		os.Getenv("TWILIO_VERIFY_SERVICE_SID"),
	)
	var smsVerifier domain.SMSVerifier
	if err != nil {
		log.Warn().Err(err).Msg("sms provider not configured; phone verification disabled")
	} else {
		smsVerifier = sms
	}

	storage, err := supabase.NewClient(
		os.Getenv("STORAGE_URL"),
		os.Getenv("STORAGE_BUCKET"),
		os.Getenv("STORAGE_SERVICE_KEY"),
	)
	if err != nil {
		log.Warn().Err(err).Msg("object storage not configured; uploads disabled")
	} else {
		a.Storage = storage
	}

	a.CatalogUC = &usecase.CatalogUC{Products: catalogRepo, Metadata: metadataRepo}
	a.BasketUC = &usecase.BasketUC{Baskets: basketRepo}
	a.FavoriteUC = &usecase.FavoriteUC{Favorites: favoriteRepo}
	a.MetadataUC = &usecase.MetadataUC{Metadata: metadataRepo}
	a.VendorUC = &usecase.VendorUC{Vendors: vendorRepo, Users: userRepo, Products: catalogRepo}
	a.AdminUC = &usecase.AdminUC{Users: userRepo, Vendors: vendorRepo, Products: catalogRepo, Identity: a.Identity}
	a.AuthUC = &usecase.AuthUC{Users: userRepo, SMS: smsVerifier}
	a.OrderUC = &usecase.OrderUC{Orders: orderRepo}

	return a, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Deps{
		Catalog:   a.CatalogUC,
		Basket:    a.BasketUC,
		Favorites: a.FavoriteUC,
		Metadata:  a.MetadataUC,
		Vendors:   a.VendorUC,
		Admin:     a.AdminUC,
		Auth:      a.AuthUC,
		Orders:    a.OrderUC,
		Identity:  a.Identity,
		Storage:   a.Storage,
	})
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.User{}, &domain.VendorProfile{},
		&domain.Category{}, &domain.FilterType{}, &domain.FilterOption{},
		&domain.CharacteristicType{},
		&domain.Product{}, &domain.ProductImage{}, &domain.ProductCharacteristic{},
		&domain.Variation{}, &domain.VariationImage{}, &domain.VariationCharacteristic{},
		&domain.Basket{}, &domain.BasketItem{}, &domain.Favorite{},
		&domain.Order{}, &domain.OrderItem{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_products_vendor_status ON products(vendor_profile_id, status)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_product_filters_option ON product_filters(filter_option_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_favorites_product ON favorites(product_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_basket_items_product ON basket_items(product_id)").Error

	return seedMetadata(a.DB)
}

// seedMetadata gives a fresh database a minimal classification tree so the
// catalog endpoints are usable before an operator loads the real one.
func seedMetadata(db *gorm.DB) error {
	var n int64
	if err := db.Model(&domain.Category{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	categories := []struct {
		name    string
		filters map[string][]string
	}{
		{"Electronics", map[string][]string{
			"Brand":  {"Apple", "Samsung", "Xiaomi"},
			"Memory": {"64GB", "128GB", "256GB"},
		}},
		{"Clothing", map[string][]string{
			"Size":  {"S", "M", "L", "XL"},
			"Color": {"Black", "White", "Blue"},
		}},
		{"Home", map[string][]string{
			"Material": {"Wood", "Metal", "Plastic"},
		}},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range categories {
			cat := domain.Category{Name: c.name}
			if err := tx.Create(&cat).Error; err != nil {
				return err
			}
			for fname, options := range c.filters {
				ft := domain.FilterType{CategoryID: cat.ID, Name: fname}
				if err := tx.Create(&ft).Error; err != nil {
					return err
				}
				for _, v := range options {
					if err := tx.Create(&domain.FilterOption{FilterTypeID: ft.ID, Value: v}).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}
