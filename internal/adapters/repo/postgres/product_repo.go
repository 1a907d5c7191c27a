package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cistech/market/internal/domain"
)

type CatalogRepo struct{ db *gorm.DB }

func NewCatalogRepo(db *gorm.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func aggregatePreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Category").
		Preload("VendorProfile.User").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc, id asc") }).
		Preload("Characteristics.Type").
		Preload("Variations", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
		Preload("Variations.Characteristics.Type").
		Preload("Variations.Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc, id asc") }).
		Preload("FilterOptions.FilterType")
}

func (r *CatalogRepo) Get(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := aggregatePreloads(r.db.WithContext(ctx)).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreateComplete persists the whole aggregate in one transaction: product row,
// filter-option associations, images, characteristics and variations with their
// own children. Any failure rolls the whole thing back.
func (r *CatalogRepo) CreateComplete(ctx context.Context, vendorProfileID uint, in domain.ProductCreate) (*domain.Product, error) {
	var productID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p := domain.Product{
			VendorProfileID: vendorProfileID,
			CategoryID:      in.CategoryID,
			Name:            in.Name,
			Description:     in.Description,
			MainImageURL:    in.MainImageURL,
			Price:           in.Price,
			Quantity:        in.Quantity,
			Status:          domain.ProductStatusPending,
		}
		if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
			return err
		}
		if len(in.FilterOptionIDs) > 0 {
			opts, err := lookupFilterOptions(tx, in.FilterOptionIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&p).Association("FilterOptions").Append(opts); err != nil {
				return err
			}
		}
		if err := createProductImages(tx, p.ID, in.Images); err != nil {
			return err
		}
		if err := createProductCharacteristics(tx, p.ID, in.Characteristics); err != nil {
			return err
		}
		if err := createVariations(tx, p.ID, in.Variations); err != nil {
			return err
		}
		productID = p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, productID)
}

// UpdateComplete applies a partial update. Scalar fields come as pointers; child
// collections follow replace-in-place semantics: a present list deletes every
// existing row of that kind and inserts the new set, an absent one is untouched.
func (r *CatalogRepo) UpdateComplete(ctx context.Context, productID uint, in domain.ProductUpdate) (*domain.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Product
		if err := tx.First(&p, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if in.CategoryID != nil {
			p.CategoryID = in.CategoryID
		}
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.MainImageURL != nil {
			p.MainImageURL = *in.MainImageURL
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if in.Quantity != nil {
			p.Quantity = *in.Quantity
		}
		if err := tx.Omit(clause.Associations).Save(&p).Error; err != nil {
			return err
		}

		if in.FilterOptionIDs != nil {
			if len(*in.FilterOptionIDs) == 0 {
				if err := tx.Model(&p).Association("FilterOptions").Clear(); err != nil {
					return err
				}
			} else {
				opts, err := lookupFilterOptions(tx, *in.FilterOptionIDs)
				if err != nil {
					return err
				}
				if err := tx.Model(&p).Association("FilterOptions").Replace(opts); err != nil {
					return err
				}
			}
		}

		if in.Images != nil {
			if err := tx.Where("product_id = ?", productID).Delete(&domain.ProductImage{}).Error; err != nil {
				return err
			}
			if err := createProductImages(tx, productID, *in.Images); err != nil {
				return err
			}
		}

		if in.Characteristics != nil {
			if err := tx.Where("product_id = ?", productID).Delete(&domain.ProductCharacteristic{}).Error; err != nil {
				return err
			}
			if err := createProductCharacteristics(tx, productID, *in.Characteristics); err != nil {
				return err
			}
		}

		if in.Variations != nil {
			if err := deleteVariations(tx, productID); err != nil {
				return err
			}
			if err := createVariations(tx, productID, *in.Variations); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, productID)
}

// DeleteFull removes the product with all owned rows plus the basket and
// favorite references pointing at it, so no orphans survive the delete.
func (r *CatalogRepo) DeleteFull(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Product
		if err := tx.First(&p, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		return deleteProductFull(tx, productID)
	})
}

// deleteProductFull does the actual cascade inside an open transaction; it is
// shared with the user-deletion path, which removes a vendor's whole catalog.
func deleteProductFull(tx *gorm.DB, productID uint) error {
	if err := tx.Where("product_id = ?", productID).Delete(&domain.BasketItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", productID).Delete(&domain.Favorite{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&domain.Product{ID: productID}).Association("FilterOptions").Clear(); err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", productID).Delete(&domain.ProductImage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", productID).Delete(&domain.ProductCharacteristic{}).Error; err != nil {
		return err
	}
	if err := deleteVariations(tx, productID); err != nil {
		return err
	}
	return tx.Delete(&domain.Product{}, "id = ?", productID).Error
}

func (r *CatalogRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if f.ApprovedOnly {
		q = q.Where("status = ?", domain.ProductStatusApproved)
	} else if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.VendorProfileID != 0 {
		q = q.Where("vendor_profile_id = ?", f.VendorProfileID)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Query != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+f.Query+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	var list []domain.Product
	err := aggregatePreloads(q.Order("created_at desc, id desc").Offset(f.Offset).Limit(f.Limit)).Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *CatalogRepo) ListByFilterOptions(ctx context.Context, optionIDs []uint, matchAll, approvedOnly bool) ([]domain.Product, error) {
	if len(optionIDs) == 0 {
		return []domain.Product{}, nil
	}
	sub := r.db.WithContext(ctx).Table("product_filters").Select("product_id").Where("filter_option_id IN ?", optionIDs)
	if matchAll {
		sub = sub.Group("product_id").Having("COUNT(DISTINCT filter_option_id) = ?", len(optionIDs))
	}
	q := r.db.WithContext(ctx).Where("id IN (?)", sub)
	if approvedOnly {
		q = q.Where("status = ?", domain.ProductStatusApproved)
	}
	var list []domain.Product
	if err := aggregatePreloads(q).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CatalogRepo) ListVariations(ctx context.Context, productID uint) ([]domain.Variation, error) {
	var list []domain.Variation
	err := r.db.WithContext(ctx).
		Preload("Characteristics.Type").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc, id asc") }).
		Where("product_id = ?", productID).
		Order("created_at asc, id asc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CatalogRepo) UpdateStatus(ctx context.Context, productID uint, status domain.ProductStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", productID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CatalogRepo) Stats(ctx context.Context) (domain.ProductStats, error) {
	var s domain.ProductStats
	db := r.db.WithContext(ctx).Model(&domain.Product{})
	if err := db.Count(&s.TotalProducts).Error; err != nil {
		return s, err
	}
	for status, dst := range map[domain.ProductStatus]*int64{
		domain.ProductStatusPending:  &s.PendingProducts,
		domain.ProductStatusApproved: &s.ApprovedProducts,
		domain.ProductStatusRejected: &s.RejectedProducts,
	} {
		if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return s, err
		}
	}
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("created_at >= ?", monthStart).Count(&s.NewProductsThisMonth).Error; err != nil {
		return s, err
	}
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("categories.name AS category_name, COUNT(products.id) AS product_count").
		Joins("JOIN categories ON categories.id = products.category_id").
		Group("categories.name").
		Order("product_count DESC").
		Limit(5).
		Scan(&s.TopCategories).Error
	return s, err
}

// lookupFilterOptions validates the requested set by count match: fewer rows
// back than ids requested fails the whole operation.
func lookupFilterOptions(tx *gorm.DB, ids []uint) ([]domain.FilterOption, error) {
	var opts []domain.FilterOption
	if err := tx.Where("id IN ?", ids).Find(&opts).Error; err != nil {
		return nil, err
	}
	if len(opts) != len(ids) {
		return nil, domain.Validationf("some filter options not found")
	}
	return opts, nil
}

// getOrCreateCharacteristicType resolves a shared type name, creating it on
// first use. A concurrent insert of the same name is an expected conflict: the
// insert no-ops on the unique index and the winner's row is read back.
func getOrCreateCharacteristicType(tx *gorm.DB, name string) (*domain.CharacteristicType, error) {
	var ct domain.CharacteristicType
	err := tx.Where("name = ?", name).First(&ct).Error
	if err == nil {
		return &ct, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	ct = domain.CharacteristicType{Name: name}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ct).Error; err != nil {
		return nil, err
	}
	if ct.ID == 0 {
		if err := tx.Where("name = ?", name).First(&ct).Error; err != nil {
			return nil, err
		}
	}
	return &ct, nil
}

func createProductImages(tx *gorm.DB, productID uint, images []domain.ImageInput) error {
	for idx, in := range images {
		pos := idx
		if in.Position != nil {
			pos = *in.Position
		}
		img := domain.ProductImage{ProductID: productID, URL: in.URL, AltText: in.AltText, Position: pos}
		if err := tx.Create(&img).Error; err != nil {
			return err
		}
	}
	return nil
}

func createProductCharacteristics(tx *gorm.DB, productID uint, chars []domain.CharacteristicInput) error {
	for _, in := range chars {
		ct, err := getOrCreateCharacteristicType(tx, in.TypeName)
		if err != nil {
			return err
		}
		c := domain.ProductCharacteristic{ProductID: productID, CharacteristicTypeID: ct.ID, Value: in.Value}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
	}
	return nil
}

func createVariations(tx *gorm.DB, productID uint, variations []domain.VariationInput) error {
	for _, in := range variations {
		v := domain.Variation{
			ProductID: productID,
			SKU:       in.SKU,
			Name:      in.Name,
			Price:     in.Price,
			Quantity:  in.Quantity,
			Status:    domain.ProductStatusPending,
		}
		if err := tx.Omit(clause.Associations).Create(&v).Error; err != nil {
			return err
		}
		for _, ch := range in.Characteristics {
			ct, err := getOrCreateCharacteristicType(tx, ch.TypeName)
			if err != nil {
				return err
			}
			vc := domain.VariationCharacteristic{VariationID: v.ID, CharacteristicTypeID: ct.ID, Value: ch.Value}
			if err := tx.Create(&vc).Error; err != nil {
				return err
			}
		}
		for idx, im := range in.Images {
			pos := idx
			if im.Position != nil {
				pos = *im.Position
			}
			vi := domain.VariationImage{VariationID: v.ID, URL: im.URL, AltText: im.AltText, Position: pos}
			if err := tx.Create(&vi).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func deleteVariations(tx *gorm.DB, productID uint) error {
	var ids []uint
	if err := tx.Model(&domain.Variation{}).Where("product_id = ?", productID).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("variation_id IN ?", ids).Delete(&domain.VariationCharacteristic{}).Error; err != nil {
		return err
	}
	if err := tx.Where("variation_id IN ?", ids).Delete(&domain.VariationImage{}).Error; err != nil {
		return err
	}
	return tx.Where("product_id = ?", productID).Delete(&domain.Variation{}).Error
}
