package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CharacteristicInput is a (type name, value) pair. Unknown type names create a
// new CharacteristicType row on the fly.
type CharacteristicInput struct {
	TypeName string `json:"type_name" validate:"required"`
	Value    string `json:"value" validate:"required"`
}

type ImageInput struct {
	URL      string `json:"url" validate:"required"`
	AltText  string `json:"alt_text"`
	Position *int   `json:"position"`
}

type VariationInput struct {
	SKU             *string               `json:"sku"`
	Name            string                `json:"name"`
	Price           decimal.Decimal       `json:"price"`
	Quantity        int                   `json:"quantity" validate:"gte=0"`
	Characteristics []CharacteristicInput `json:"characteristics" validate:"dive"`
	Images          []ImageInput          `json:"images" validate:"dive"`
}

// ProductCreate is the nested aggregate payload persisted as one transaction.
type ProductCreate struct {
	CategoryID      *uint                 `json:"category_id"`
	Name            string                `json:"name" validate:"required"`
	Description     string                `json:"description"`
	MainImageURL    string                `json:"main_image_url"`
	Price           decimal.Decimal       `json:"price"`
	Quantity        int                   `json:"quantity" validate:"gte=0"`
	FilterOptionIDs []uint                `json:"filter_option_ids"`
	Images          []ImageInput          `json:"images" validate:"dive"`
	Characteristics []CharacteristicInput `json:"characteristics" validate:"dive"`
	Variations      []VariationInput      `json:"variations" validate:"dive"`
}

// ProductUpdate uses pointers throughout: nil means "leave untouched". For the
// child collections a present-but-empty slice deletes every existing row of that
// kind, while an absent field leaves them as they are.
type ProductUpdate struct {
	CategoryID      *uint                  `json:"category_id"`
	Name            *string                `json:"name"`
	Description     *string                `json:"description"`
	MainImageURL    *string                `json:"main_image_url"`
	Price           *decimal.Decimal       `json:"price"`
	Quantity        *int                   `json:"quantity"`
	FilterOptionIDs *[]uint                `json:"filter_option_ids"`
	Images          *[]ImageInput          `json:"images"`
	Characteristics *[]CharacteristicInput `json:"characteristics"`
	Variations      *[]VariationInput      `json:"variations"`
}

type ProductFilter struct {
	Status          ProductStatus
	VendorProfileID uint
	CategoryID      uint
	ApprovedOnly    bool
	Query           string
	Offset          int
	Limit           int
}

type CatalogRepo interface {
	CreateComplete(ctx context.Context, vendorProfileID uint, in ProductCreate) (*Product, error)
	UpdateComplete(ctx context.Context, productID uint, in ProductUpdate) (*Product, error)
	DeleteFull(ctx context.Context, productID uint) error
	Get(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	ListByFilterOptions(ctx context.Context, optionIDs []uint, matchAll, approvedOnly bool) ([]Product, error)
	ListVariations(ctx context.Context, productID uint) ([]Variation, error)
	UpdateStatus(ctx context.Context, productID uint, status ProductStatus) error
	Stats(ctx context.Context) (ProductStats, error)
}

type MetadataRepo interface {
	Tree(ctx context.Context) (MetadataTree, error)
	CategoryExists(ctx context.Context, id uint) (bool, error)
	Categories(ctx context.Context) ([]Category, error)
}

type BasketRepo interface {
	GetWithItems(ctx context.Context, userID uint) (*Basket, error)
	AddItem(ctx context.Context, userID, productID uint, quantity int) (*BasketItem, error)
	UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*BasketItem, error)
	RemoveItem(ctx context.Context, userID, itemID uint) error
	Clear(ctx context.Context, userID uint) error
}

type FavoriteRepo interface {
	List(ctx context.Context, userID uint, offset, limit int) ([]Favorite, error)
	ListProducts(ctx context.Context, userID uint, offset, limit int) ([]Product, error)
	Add(ctx context.Context, userID, productID uint) (*Favorite, error)
	Remove(ctx context.Context, userID, productID uint) error
}

type UserRepo interface {
	FindByExternalUID(ctx context.Context, uid string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Save(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query string, offset, limit int) ([]User, int64, error)
	Stats(ctx context.Context) (UserStats, error)
}

type VendorRepo interface {
	FindByID(ctx context.Context, id uint) (*VendorProfile, error)
	FindByUserID(ctx context.Context, userID uint) (*VendorProfile, error)
	Save(ctx context.Context, v *VendorProfile) error
	List(ctx context.Context, status VendorStatus, offset, limit int) ([]VendorProfile, int64, error)
	Stats(ctx context.Context) (VendorStats, error)
}

type OrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

type OrderCreate struct {
	Address string           `json:"address"`
	Comment string           `json:"comment"`
	Items   []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type OrderRepo interface {
	Create(ctx context.Context, userID uint, in OrderCreate) (*Order, error)
	Get(ctx context.Context, id uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint, status OrderStatus, offset, limit int) ([]Order, error)
	UpdateStatus(ctx context.Context, id uint, status OrderStatus) error
}

type UserStats struct {
	TotalUsers        int64 `json:"total_users"`
	Vendors           int64 `json:"vendors"`
	Admins            int64 `json:"admins"`
	NewUsersThisMonth int64 `json:"new_users_this_month"`
}

type VendorStats struct {
	TotalVendors             int64 `json:"total_vendors"`
	PendingVendors           int64 `json:"pending_vendors"`
	ApprovedVendors          int64 `json:"approved_vendors"`
	RejectedVendors          int64 `json:"rejected_vendors"`
	NewApplicationsThisMonth int64 `json:"new_applications_this_month"`
}

type CategoryCount struct {
	CategoryName string `json:"category_name"`
	ProductCount int64  `json:"product_count"`
}

type ProductStats struct {
	TotalProducts        int64           `json:"total_products"`
	PendingProducts      int64           `json:"pending_products"`
	ApprovedProducts     int64           `json:"approved_products"`
	RejectedProducts     int64           `json:"rejected_products"`
	NewProductsThisMonth int64           `json:"new_products_this_month"`
	TopCategories        []CategoryCount `json:"top_categories"`
}

// TokenVerifier is the identity-provider boundary: it verifies bearer tokens and
// pushes role/vendor-status custom claims back to the provider. Token issuance
// and signature checks stay on the provider side.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*TokenClaims, error)
	SetCustomClaims(ctx context.Context, uid string, claims map[string]any) error
}

// SMSVerifier is the phone-verification boundary. The provider owns the codes;
// we only hold the session handle it returns.
type SMSVerifier interface {
	StartVerification(ctx context.Context, phone string) (string, error)
	CheckVerification(ctx context.Context, phone, code string) (bool, error)
}

// FileStorage uploads raw bytes and returns a public URL; deletion works from a
// previously issued URL.
type FileStorage interface {
	Upload(ctx context.Context, folder, name string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}
