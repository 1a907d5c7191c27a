package usecase

import (
	"context"

	"github.com/cistech/market/internal/domain"
)

type FavoriteUC struct {
	Favorites domain.FavoriteRepo
}

func (uc *FavoriteUC) Add(ctx context.Context, userID, productID uint) (*domain.Favorite, error) {
	return uc.Favorites.Add(ctx, userID, productID)
}

func (uc *FavoriteUC) Remove(ctx context.Context, userID, productID uint) error {
	return uc.Favorites.Remove(ctx, userID, productID)
}

func (uc *FavoriteUC) List(ctx context.Context, userID uint, offset, limit int) ([]domain.Favorite, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return uc.Favorites.List(ctx, userID, offset, limit)
}

func (uc *FavoriteUC) ListProducts(ctx context.Context, userID uint, offset, limit int) ([]domain.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return uc.Favorites.ListProducts(ctx, userID, offset, limit)
}
