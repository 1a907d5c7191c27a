package postgres

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cistech/market/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create validates every line against current stock, snapshots the unit price
// and decrements product quantities, all inside one transaction. A failure on
// any line rolls the whole order back.
func (r *OrderRepo) Create(ctx context.Context, userID uint, in domain.OrderCreate) (*domain.Order, error) {
	var out *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := domain.Order{
			UserID:     userID,
			Status:     domain.OrderStatusPending,
			Address:    in.Address,
			Comment:    in.Comment,
			TotalPrice: decimal.Zero,
		}
		if err := tx.Omit("Items", "User").Create(&order).Error; err != nil {
			return err
		}
		total := decimal.Zero
		for _, line := range in.Items {
			p, err := lockProduct(tx, line.ProductID)
			if err != nil {
				return err
			}
			if p.Status != domain.ProductStatusApproved {
				return domain.Validationf("product is not available for purchase")
			}
			if p.Quantity < line.Quantity {
				return &domain.StockError{Available: p.Quantity, Requested: line.Quantity}
			}
			item := domain.OrderItem{
				OrderID:   order.ID,
				ProductID: p.ID,
				Quantity:  line.Quantity,
				UnitPrice: p.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if err := tx.Model(&domain.Product{}).Where("id = ?", p.ID).
				Update("quantity", p.Quantity-line.Quantity).Error; err != nil {
				return err
			}
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		if err := tx.Model(&domain.Order{}).Where("id = ?", order.ID).Update("total_price", total).Error; err != nil {
			return err
		}
		var created domain.Order
		if err := tx.Preload("Items.Product").First(&created, "id = ?", order.ID).Error; err != nil {
			return err
		}
		out = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OrderRepo) Get(ctx context.Context, id uint) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.Product").
		First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID uint, status domain.OrderStatus, offset, limit int) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit <= 0 {
		limit = 50
	}
	var list []domain.Order
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.Product").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
