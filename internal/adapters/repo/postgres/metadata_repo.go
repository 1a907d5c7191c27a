package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/cistech/market/internal/domain"
)

type MetadataRepo struct{ db *gorm.DB }

func NewMetadataRepo(db *gorm.DB) *MetadataRepo { return &MetadataRepo{db: db} }

// Tree assembles the category → filter-type → option document from three bulk
// selects. Nothing is cached; every request recomputes from the database.
func (r *MetadataRepo) Tree(ctx context.Context) (domain.MetadataTree, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	var types []domain.FilterType
	if err := r.db.WithContext(ctx).Find(&types).Error; err != nil {
		return nil, err
	}
	var options []domain.FilterOption
	if err := r.db.WithContext(ctx).Order("id asc").Find(&options).Error; err != nil {
		return nil, err
	}

	optionsByType := make(map[uint][]domain.MetadataOption, len(types))
	for _, o := range options {
		optionsByType[o.FilterTypeID] = append(optionsByType[o.FilterTypeID], domain.MetadataOption{ID: o.ID, Value: o.Value})
	}
	typesByCategory := make(map[uint][]domain.FilterType, len(categories))
	for _, t := range types {
		typesByCategory[t.CategoryID] = append(typesByCategory[t.CategoryID], t)
	}

	tree := make(domain.MetadataTree, len(categories))
	for _, c := range categories {
		filters := make(map[string]domain.MetadataFilter)
		for _, t := range typesByCategory[c.ID] {
			opts := optionsByType[t.ID]
			if opts == nil {
				opts = []domain.MetadataOption{}
			}
			filters[t.Name] = domain.MetadataFilter{ID: t.ID, Options: opts}
		}
		tree[c.Name] = domain.MetadataCategory{ID: c.ID, Filters: filters}
	}
	return tree, nil
}

func (r *MetadataRepo) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MetadataRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	var list []domain.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
