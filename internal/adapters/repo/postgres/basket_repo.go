package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cistech/market/internal/domain"
)

type BasketRepo struct{ db *gorm.DB }

func NewBasketRepo(db *gorm.DB) *BasketRepo { return &BasketRepo{db: db} }

func getOrCreateBasket(tx *gorm.DB, userID uint) (*domain.Basket, error) {
	var b domain.Basket
	err := tx.Where("user_id = ?", userID).First(&b).Error
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	b = domain.Basket{UserID: userID}
	if err := tx.Create(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// lockProduct reads the product row for update so the stock check and the item
// write below it cannot interleave with a concurrent add. Row locks exist on
// postgres only; other dialects fall back to the bare transaction.
func lockProduct(tx *gorm.DB, productID uint) (*domain.Product, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p domain.Product
	if err := q.First(&p, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *BasketRepo) GetWithItems(ctx context.Context, userID uint) (*domain.Basket, error) {
	var basket *domain.Basket
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := getOrCreateBasket(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Preload("Product").Where("basket_id = ?", b.ID).Order("id asc").Find(&b.Items).Error; err != nil {
			return err
		}
		basket = b
		return nil
	})
	return basket, err
}

// AddItem merges with an existing line item for the same product: the requested
// quantity is added, and the combined total re-validated against current stock
// before anything is written.
func (r *BasketRepo) AddItem(ctx context.Context, userID, productID uint, quantity int) (*domain.BasketItem, error) {
	var out *domain.BasketItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockProduct(tx, productID)
		if err != nil {
			return err
		}
		if p.Status != domain.ProductStatusApproved {
			return domain.Validationf("product is not available for purchase")
		}
		b, err := getOrCreateBasket(tx, userID)
		if err != nil {
			return err
		}
		var item domain.BasketItem
		err = tx.Where("basket_id = ? AND product_id = ?", b.ID, productID).First(&item).Error
		switch {
		case err == nil:
			newQuantity := item.Quantity + quantity
			if p.Quantity < newQuantity {
				return &domain.StockError{Available: p.Quantity, Requested: newQuantity}
			}
			item.Quantity = newQuantity
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if p.Quantity < quantity {
				return &domain.StockError{Available: p.Quantity, Requested: quantity}
			}
			item = domain.BasketItem{BasketID: b.ID, ProductID: productID, Quantity: quantity}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}
		out = &item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateItem sets an absolute quantity. The item is addressed through the
// basket derived from the authenticated user, never a client-supplied basket id.
func (r *BasketRepo) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*domain.BasketItem, error) {
	var out *domain.BasketItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := getOrCreateBasket(tx, userID)
		if err != nil {
			return err
		}
		var item domain.BasketItem
		if err := tx.Where("id = ? AND basket_id = ?", itemID, b.ID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		p, err := lockProduct(tx, item.ProductID)
		if err != nil {
			return err
		}
		if p.Quantity < quantity {
			return &domain.StockError{Available: p.Quantity, Requested: quantity}
		}
		item.Quantity = quantity
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		out = &item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BasketRepo) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := getOrCreateBasket(tx, userID)
		if err != nil {
			return err
		}
		res := tx.Where("id = ? AND basket_id = ?", itemID, b.ID).Delete(&domain.BasketItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *BasketRepo) Clear(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := getOrCreateBasket(tx, userID)
		if err != nil {
			return err
		}
		return tx.Where("basket_id = ?", b.ID).Delete(&domain.BasketItem{}).Error
	})
}
