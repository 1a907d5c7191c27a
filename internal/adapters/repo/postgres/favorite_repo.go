package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cistech/market/internal/domain"
)

type FavoriteRepo struct{ db *gorm.DB }

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) List(ctx context.Context, userID uint, offset, limit int) ([]domain.Favorite, error) {
	var list []domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Offset(offset).Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListProducts returns the user's favorited products, approved only,
// newest favorite first.
func (r *FavoriteRepo) ListProducts(ctx context.Context, userID uint, offset, limit int) ([]domain.Product, error) {
	var list []domain.Product
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Where("products.status = ?", domain.ProductStatusApproved).
		Order("favorites.created_at desc").
		Offset(offset).Limit(limit).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc, id asc") }).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Add is idempotent: an existing (user, product) pair is returned as-is.
func (r *FavoriteRepo) Add(ctx context.Context, userID, productID uint) (*domain.Favorite, error) {
	var fav domain.Favorite
	err := r.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&fav).Error
	if err == nil {
		return &fav, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	var exists int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", productID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, domain.ErrNotFound
	}
	fav = domain.Favorite{UserID: userID, ProductID: productID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *FavoriteRepo) Remove(ctx context.Context, userID, productID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&domain.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
