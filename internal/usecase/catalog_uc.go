package usecase

import (
	"context"
	"strings"

	"github.com/cistech/market/internal/domain"
)

type CatalogUC struct {
	Products domain.CatalogRepo
	Metadata domain.MetadataRepo
}

func (uc *CatalogUC) validateCreate(ctx context.Context, in *domain.ProductCreate) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.Validationf("name is required")
	}
	if !in.Price.IsPositive() {
		return domain.Validationf("price must be greater than zero")
	}
	if in.Quantity < 0 {
		return domain.Validationf("quantity cannot be negative")
	}
	for _, v := range in.Variations {
		if !v.Price.IsPositive() {
			return domain.Validationf("variation price must be greater than zero")
		}
		if v.Quantity < 0 {
			return domain.Validationf("variation quantity cannot be negative")
		}
	}
	if in.CategoryID != nil {
		ok, err := uc.Metadata.CategoryExists(ctx, *in.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.Validationf("category %d does not exist", *in.CategoryID)
		}
	}
	return nil
}

func (uc *CatalogUC) Create(ctx context.Context, vendorProfileID uint, in domain.ProductCreate) (*domain.Product, error) {
	if err := uc.validateCreate(ctx, &in); err != nil {
		return nil, err
	}
	return uc.Products.CreateComplete(ctx, vendorProfileID, in)
}

// Update enforces ownership before touching anything. Category references are
// checked here on update as well as on create.
func (uc *CatalogUC) Update(ctx context.Context, vendorProfileID, productID uint, in domain.ProductUpdate) (*domain.Product, error) {
	p, err := uc.Products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.VendorProfileID != vendorProfileID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.Validationf("name cannot be empty")
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return nil, domain.Validationf("price must be greater than zero")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.Validationf("quantity cannot be negative")
	}
	if in.Variations != nil {
		for _, v := range *in.Variations {
			if !v.Price.IsPositive() {
				return nil, domain.Validationf("variation price must be greater than zero")
			}
			if v.Quantity < 0 {
				return nil, domain.Validationf("variation quantity cannot be negative")
			}
		}
	}
	if in.CategoryID != nil {
		ok, err := uc.Metadata.CategoryExists(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.Validationf("category %d does not exist", *in.CategoryID)
		}
	}
	return uc.Products.UpdateComplete(ctx, productID, in)
}

func (uc *CatalogUC) Delete(ctx context.Context, vendorProfileID, productID uint) error {
	p, err := uc.Products.Get(ctx, productID)
	if err != nil {
		return err
	}
	if p.VendorProfileID != vendorProfileID {
		return domain.ErrForbidden
	}
	return uc.Products.DeleteFull(ctx, productID)
}

func (uc *CatalogUC) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return uc.Products.Get(ctx, id)
}

// GetPublic hides anything that is not approved.
func (uc *CatalogUC) GetPublic(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := uc.Products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProductStatusApproved {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *CatalogUC) ListMine(ctx context.Context, vendorProfileID uint, status domain.ProductStatus, offset, limit int) ([]domain.Product, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, domain.Validationf("invalid status %q", status)
	}
	return uc.Products.List(ctx, domain.ProductFilter{
		VendorProfileID: vendorProfileID,
		Status:          status,
		Offset:          offset,
		Limit:           limit,
	})
}

func (uc *CatalogUC) ListPublic(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	f.ApprovedOnly = true
	f.Status = ""
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return uc.Products.List(ctx, f)
}

func (uc *CatalogUC) SearchByFilterOptions(ctx context.Context, optionIDs []uint, matchAll bool) ([]domain.Product, error) {
	if len(optionIDs) == 0 {
		return nil, domain.Validationf("at least one filter option id is required")
	}
	return uc.Products.ListByFilterOptions(ctx, optionIDs, matchAll, true)
}

func (uc *CatalogUC) Variations(ctx context.Context, productID uint) ([]domain.Variation, error) {
	if _, err := uc.Products.Get(ctx, productID); err != nil {
		return nil, err
	}
	return uc.Products.ListVariations(ctx, productID)
}

// ChangeStatus walks the lifecycle graph; jumps outside it are rejected. The
// vendor path additionally requires ownership.
func (uc *CatalogUC) ChangeStatus(ctx context.Context, vendorProfileID, productID uint, to domain.ProductStatus) (*domain.Product, error) {
	p, err := uc.Products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if vendorProfileID != 0 && p.VendorProfileID != vendorProfileID {
		return nil, domain.ErrForbidden
	}
	if !to.Valid() {
		return nil, domain.Validationf("invalid status %q", to)
	}
	if !p.Status.CanTransition(to) {
		return nil, domain.Validationf("cannot change status from %q to %q", p.Status, to)
	}
	if err := uc.Products.UpdateStatus(ctx, productID, to); err != nil {
		return nil, err
	}
	p.Status = to
	return p, nil
}
