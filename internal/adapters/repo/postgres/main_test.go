package postgres

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cistech/market/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.VendorProfile{},
		&domain.Category{}, &domain.FilterType{}, &domain.FilterOption{},
		&domain.CharacteristicType{},
		&domain.Product{}, &domain.ProductImage{}, &domain.ProductCharacteristic{},
		&domain.Variation{}, &domain.VariationImage{}, &domain.VariationCharacteristic{},
		&domain.Basket{}, &domain.BasketItem{}, &domain.Favorite{},
		&domain.Order{}, &domain.OrderItem{},
	))
	return db
}

func seedVendor(t *testing.T, db *gorm.DB, phone string) *domain.VendorProfile {
	t.Helper()
	u := domain.User{ExternalUID: "uid-" + phone, Phone: phone, UserType: domain.UserTypeVendor}
	require.NoError(t, db.Create(&u).Error)
	v := domain.VendorProfile{UserID: u.ID, BusinessType: domain.BusinessIP, BusinessName: "Shop " + phone, INN: "77" + phone, Status: domain.VendorStatusApproved}
	require.NoError(t, db.Create(&v).Error)
	return &v
}

func seedUser(t *testing.T, db *gorm.DB, phone string) *domain.User {
	t.Helper()
	u := domain.User{ExternalUID: "uid-" + phone, Phone: phone, UserType: domain.UserTypeUser}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedCategory(t *testing.T, db *gorm.DB, name string, filters map[string][]string) (*domain.Category, []domain.FilterOption) {
	t.Helper()
	cat := domain.Category{Name: name}
	require.NoError(t, db.Create(&cat).Error)
	var options []domain.FilterOption
	for fname, values := range filters {
		ft := domain.FilterType{CategoryID: cat.ID, Name: fname}
		require.NoError(t, db.Create(&ft).Error)
		for _, v := range values {
			opt := domain.FilterOption{FilterTypeID: ft.ID, Value: v}
			require.NoError(t, db.Create(&opt).Error)
			options = append(options, opt)
		}
	}
	return &cat, options
}

func seedProduct(t *testing.T, db *gorm.DB, vendorID uint, status domain.ProductStatus, price string, quantity int) *domain.Product {
	t.Helper()
	p := domain.Product{
		VendorProfileID: vendorID,
		Name:            "Widget",
		Price:           decimal.RequireFromString(price),
		Status:          status,
		Quantity:        quantity,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func ctxT(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}
