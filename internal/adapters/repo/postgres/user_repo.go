package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cistech/market/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) FindByExternalUID(ctx context.Context, uid string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Preload("VendorProfile").First(&u, "external_uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "phone = ?", strings.TrimSpace(phone)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Preload("VendorProfile").First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Save(ctx context.Context, u *domain.User) error {
	if u.Email != "" {
		u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	}
	return r.db.WithContext(ctx).Save(u).Error
}

// Delete removes the user together with the rows it owns: basket + items,
// favorites, and a vendor profile if one exists. The profile owns its products
// exclusively, so the whole catalog cascades with it, including basket and
// favorite rows of other users that reference those products.
func (r *UserRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		var basket domain.Basket
		if err := tx.Where("user_id = ?", id).First(&basket).Error; err == nil {
			if err := tx.Where("basket_id = ?", basket.ID).Delete(&domain.BasketItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&basket).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		var profile domain.VendorProfile
		if err := tx.Where("user_id = ?", id).First(&profile).Error; err == nil {
			var productIDs []uint
			if err := tx.Model(&domain.Product{}).Where("vendor_profile_id = ?", profile.ID).Pluck("id", &productIDs).Error; err != nil {
				return err
			}
			for _, pid := range productIDs {
				if err := deleteProductFull(tx, pid); err != nil {
					return err
				}
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Delete(&domain.User{}, "id = ?", id).Error
	})
}

func (r *UserRepo) List(ctx context.Context, query string, offset, limit int) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if query != "" {
		like := "%" + strings.TrimSpace(query) + "%"
		q = q.Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR phone LIKE ?", like, like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	var list []domain.User
	if err := q.Preload("VendorProfile").Order("created_at desc").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *UserRepo) Stats(ctx context.Context) (domain.UserStats, error) {
	var s domain.UserStats
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&s.TotalUsers).Error; err != nil {
		return s, err
	}
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("user_type = ?", domain.UserTypeVendor).Count(&s.Vendors).Error; err != nil {
		return s, err
	}
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("user_type IN ?", []domain.UserType{domain.UserTypeAdmin, domain.UserTypeSuperadmin}).Count(&s.Admins).Error; err != nil {
		return s, err
	}
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("created_at >= ?", monthStart).Count(&s.NewUsersThisMonth).Error
	return s, err
}
