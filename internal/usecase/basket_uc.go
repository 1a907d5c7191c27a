package usecase

import (
	"context"

	"github.com/cistech/market/internal/domain"
)

type BasketUC struct {
	Baskets domain.BasketRepo
}

func (uc *BasketUC) Get(ctx context.Context, userID uint) (*domain.Basket, error) {
	return uc.Baskets.GetWithItems(ctx, userID)
}

func (uc *BasketUC) AddItem(ctx context.Context, userID, productID uint, quantity int) (*domain.BasketItem, error) {
	if quantity < 1 {
		return nil, domain.Validationf("quantity must be at least 1")
	}
	return uc.Baskets.AddItem(ctx, userID, productID, quantity)
}

func (uc *BasketUC) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*domain.BasketItem, error) {
	if quantity < 1 {
		return nil, domain.Validationf("quantity must be at least 1")
	}
	return uc.Baskets.UpdateItem(ctx, userID, itemID, quantity)
}

func (uc *BasketUC) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return uc.Baskets.RemoveItem(ctx, userID, itemID)
}

func (uc *BasketUC) Clear(ctx context.Context, userID uint) error {
	return uc.Baskets.Clear(ctx, userID)
}
