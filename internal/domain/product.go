package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusRejected ProductStatus = "rejected"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusPending, ProductStatusApproved, ProductStatusRejected:
		return true
	}
	return false
}

// productTransitions is the allowed lifecycle graph. Arbitrary jumps between
// statuses are rejected; setting the current status again is a no-op.
var productTransitions = map[ProductStatus][]ProductStatus{
	ProductStatusDraft:    {ProductStatusPending},
	ProductStatusPending:  {ProductStatusApproved, ProductStatusRejected},
	ProductStatusApproved: {ProductStatusRejected},
	ProductStatusRejected: {ProductStatusPending},
}

func (s ProductStatus) CanTransition(to ProductStatus) bool {
	if s == to {
		return true
	}
	for _, next := range productTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Product struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	VendorProfileID uint            `gorm:"not null;index" json:"vendor_profile_id"`
	CategoryID      *uint           `gorm:"index" json:"category_id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	MainImageURL    string          `gorm:"size:500" json:"main_image_url"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Status          ProductStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Quantity        int             `gorm:"not null;default:0" json:"quantity"`

	VendorProfile   *VendorProfile          `json:"vendor_profile,omitempty"`
	Category        *Category               `json:"category,omitempty"`
	Images          []ProductImage          `json:"images"`
	Characteristics []ProductCharacteristic `json:"characteristics"`
	Variations      []Variation             `json:"variations"`
	FilterOptions   []FilterOption          `gorm:"many2many:product_filters" json:"filter_options"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Variation struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	SKU       *string         `gorm:"size:100;uniqueIndex" json:"sku"`
	Name      string          `gorm:"size:255" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Status    ProductStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Quantity  int             `gorm:"not null;default:0" json:"quantity"`

	Characteristics []VariationCharacteristic `json:"characteristics"`
	Images          []VariationImage          `json:"images"`

	CreatedAt time.Time `json:"created_at"`
}

// CharacteristicType is a shared vocabulary (e.g. "Color"), created lazily on
// first use and reused across products.
type CharacteristicType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null;uniqueIndex" json:"name"`
}

type ProductCharacteristic struct {
	ID                   uint   `gorm:"primaryKey" json:"id"`
	ProductID            uint   `gorm:"not null;index" json:"product_id"`
	CharacteristicTypeID uint   `gorm:"not null" json:"characteristic_type_id"`
	Value                string `gorm:"size:255;not null" json:"value"`

	Type *CharacteristicType `gorm:"foreignKey:CharacteristicTypeID" json:"type,omitempty"`
}

type VariationCharacteristic struct {
	ID                   uint   `gorm:"primaryKey" json:"id"`
	VariationID          uint   `gorm:"not null;index" json:"variation_id"`
	CharacteristicTypeID uint   `gorm:"not null" json:"characteristic_type_id"`
	Value                string `gorm:"size:255;not null" json:"value"`

	Type *CharacteristicType `gorm:"foreignKey:CharacteristicTypeID" json:"type,omitempty"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	URL       string `gorm:"size:500;not null" json:"url"`
	AltText   string `gorm:"size:255" json:"alt_text"`
	Position  int    `gorm:"not null;default:0" json:"position"`
}

type VariationImage struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	VariationID uint   `gorm:"not null;index" json:"variation_id"`
	URL         string `gorm:"size:500;not null" json:"url"`
	AltText     string `gorm:"size:255" json:"alt_text"`
	Position    int    `gorm:"not null;default:0" json:"position"`
}
