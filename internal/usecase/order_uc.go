package usecase

import (
	"context"

	"github.com/cistech/market/internal/domain"
)

type OrderUC struct {
	Orders domain.OrderRepo
}

func (uc *OrderUC) Create(ctx context.Context, userID uint, in domain.OrderCreate) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.Validationf("order must contain at least one item")
	}
	seen := make(map[uint]bool, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, domain.Validationf("item quantity must be at least 1")
		}
		if seen[it.ProductID] {
			return nil, domain.Validationf("duplicate product %d in order", it.ProductID)
		}
		seen[it.ProductID] = true
	}
	return uc.Orders.Create(ctx, userID, in)
}

// Get enforces ownership unless the caller is an admin.
func (uc *OrderUC) Get(ctx context.Context, userID uint, isAdmin bool, orderID uint) (*domain.Order, error) {
	o, err := uc.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func (uc *OrderUC) ListMine(ctx context.Context, userID uint, status domain.OrderStatus, offset, limit int) ([]domain.Order, error) {
	if status != "" && !status.Valid() {
		return nil, domain.Validationf("invalid status %q", status)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return uc.Orders.ListByUser(ctx, userID, status, offset, limit)
}

func (uc *OrderUC) UpdateStatus(ctx context.Context, orderID uint, status domain.OrderStatus) error {
	if !status.Valid() {
		return domain.Validationf("invalid status %q", status)
	}
	return uc.Orders.UpdateStatus(ctx, orderID, status)
}
