package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cistech/market/internal/domain"
)

type VendorRepo struct{ db *gorm.DB }

func NewVendorRepo(db *gorm.DB) *VendorRepo { return &VendorRepo{db: db} }

func (r *VendorRepo) FindByID(ctx context.Context, id uint) (*domain.VendorProfile, error) {
	var v domain.VendorProfile
	if err := r.db.WithContext(ctx).Preload("User").First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepo) FindByUserID(ctx context.Context, userID uint) (*domain.VendorProfile, error) {
	var v domain.VendorProfile
	if err := r.db.WithContext(ctx).Preload("User").First(&v, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepo) Save(ctx context.Context, v *domain.VendorProfile) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VendorRepo) List(ctx context.Context, status domain.VendorStatus, offset, limit int) ([]domain.VendorProfile, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.VendorProfile{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	var list []domain.VendorProfile
	if err := q.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *VendorRepo) Stats(ctx context.Context) (domain.VendorStats, error) {
	var s domain.VendorStats
	if err := r.db.WithContext(ctx).Model(&domain.VendorProfile{}).Count(&s.TotalVendors).Error; err != nil {
		return s, err
	}
	for status, dst := range map[domain.VendorStatus]*int64{
		domain.VendorStatusPending:  &s.PendingVendors,
		domain.VendorStatusApproved: &s.ApprovedVendors,
		domain.VendorStatusRejected: &s.RejectedVendors,
	} {
		if err := r.db.WithContext(ctx).Model(&domain.VendorProfile{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return s, err
		}
	}
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	err := r.db.WithContext(ctx).Model(&domain.VendorProfile{}).Where("created_at >= ?", monthStart).Count(&s.NewApplicationsThisMonth).Error
	return s, err
}
