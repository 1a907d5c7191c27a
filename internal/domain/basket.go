package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Basket is created lazily, one per user. Totals are never stored: they are
// recomputed from current line items and current product prices on every read,
// so a vendor price change retroactively reprices items sitting in baskets.
type Basket struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Items []BasketItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BasketItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BasketID  uint `gorm:"not null;uniqueIndex:idx_basket_product" json:"basket_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_basket_product" json:"product_id"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`

	Product *Product `json:"product,omitempty"`
}

func (b *Basket) TotalQuantity() int {
	n := 0
	for _, it := range b.Items {
		n += it.Quantity
	}
	return n
}

func (b *Basket) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.Items {
		if it.Product == nil {
			continue
		}
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Favorite is a unique (user, product) pair; creation is idempotent.
type Favorite struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:uq_user_product_favorite" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:uq_user_product_favorite" json:"product_id"`

	Product *Product `json:"product,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
