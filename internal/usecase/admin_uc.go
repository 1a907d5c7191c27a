package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/cistech/market/internal/domain"
)

type AdminUC struct {
	Users    domain.UserRepo
	Vendors  domain.VendorRepo
	Products domain.CatalogRepo
	Identity domain.TokenVerifier
}

type AdminDashboard struct {
	Users    domain.UserStats    `json:"users"`
	Vendors  domain.VendorStats  `json:"vendors"`
	Products domain.ProductStats `json:"products"`
}

func (uc *AdminUC) Dashboard(ctx context.Context) (*AdminDashboard, error) {
	var d AdminDashboard
	var err error
	if d.Users, err = uc.Users.Stats(ctx); err != nil {
		return nil, err
	}
	if d.Vendors, err = uc.Vendors.Stats(ctx); err != nil {
		return nil, err
	}
	if d.Products, err = uc.Products.Stats(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

func (uc *AdminUC) ListUsers(ctx context.Context, query string, offset, limit int) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return uc.Users.List(ctx, query, offset, limit)
}

// UpdateUserType changes a user's role and pushes the new role to the identity
// provider so fresh tokens carry it. A claims push failure does not roll the
// role back; it is logged and the provider catches up on the next push.
func (uc *AdminUC) UpdateUserType(ctx context.Context, userID uint, t domain.UserType) (*domain.User, error) {
	if !t.Valid() {
		return nil, domain.Validationf("invalid user type %q", t)
	}
	u, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.UserType = t
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	uc.pushClaims(ctx, u)
	return u, nil
}

// DeleteUser removes an account. SUPERADMIN accounts cannot be deleted.
func (uc *AdminUC) DeleteUser(ctx context.Context, userID uint) error {
	u, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.UserType == domain.UserTypeSuperadmin {
		return domain.Validationf("cannot delete a superadmin account")
	}
	return uc.Users.Delete(ctx, userID)
}

func (uc *AdminUC) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	return uc.Products.List(ctx, f)
}

func (uc *AdminUC) SetProductStatus(ctx context.Context, productID uint, to domain.ProductStatus) (*domain.Product, error) {
	catalog := &CatalogUC{Products: uc.Products}
	return catalog.ChangeStatus(ctx, 0, productID, to)
}

func (uc *AdminUC) DeleteProduct(ctx context.Context, productID uint) error {
	if _, err := uc.Products.Get(ctx, productID); err != nil {
		return err
	}
	return uc.Products.DeleteFull(ctx, productID)
}

func (uc *AdminUC) ListVendors(ctx context.Context, status domain.VendorStatus, offset, limit int) ([]domain.VendorProfile, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, domain.Validationf("invalid status %q", status)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return uc.Vendors.List(ctx, status, offset, limit)
}

// ApproveVendor flips the profile to APPROVED, promotes the owning user to
// VENDOR and pushes both to the identity provider.
func (uc *AdminUC) ApproveVendor(ctx context.Context, vendorID uint) (*domain.VendorProfile, error) {
	v, err := uc.Vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	v.SetStatus(domain.VendorStatusApproved, "")
	if err := uc.Vendors.Save(ctx, v); err != nil {
		return nil, err
	}
	u, err := uc.Users.FindByID(ctx, v.UserID)
	if err != nil {
		return nil, err
	}
	if u.UserType == domain.UserTypeUser {
		u.UserType = domain.UserTypeVendor
		if err := uc.Users.Save(ctx, u); err != nil {
			return nil, err
		}
	}
	u.VendorProfile = v
	uc.pushClaims(ctx, u)
	return v, nil
}

func (uc *AdminUC) RejectVendor(ctx context.Context, vendorID uint, reason string) (*domain.VendorProfile, error) {
	v, err := uc.Vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	v.SetStatus(domain.VendorStatusRejected, reason)
	if err := uc.Vendors.Save(ctx, v); err != nil {
		return nil, err
	}
	if u, err := uc.Users.FindByID(ctx, v.UserID); err == nil {
		u.VendorProfile = v
		uc.pushClaims(ctx, u)
	}
	return v, nil
}

func (uc *AdminUC) pushClaims(ctx context.Context, u *domain.User) {
	if uc.Identity == nil {
		return
	}
	claims := map[string]any{"user_type": string(u.UserType)}
	if u.VendorProfile != nil {
		claims["vendor_status"] = string(u.VendorProfile.Status)
	}
	if err := uc.Identity.SetCustomClaims(ctx, u.ExternalUID, claims); err != nil {
		log.Error().Err(err).Uint("user_id", u.ID).Msg("set custom claims")
	}
}

// ExportCatalogXLSX builds a spreadsheet of the whole catalog, one product per
// row, paging through the repository.
func (uc *AdminUC) ExportCatalogXLSX(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Catalog"
	f.SetSheetName(f.GetSheetName(0), sheet)
	headers := []string{"ID", "Name", "Vendor", "Category", "Price", "Quantity", "Status", "Variations", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	const pageSize = 200
	for offset := 0; ; offset += pageSize {
		products, _, err := uc.Products.List(ctx, domain.ProductFilter{Offset: offset, Limit: pageSize})
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			break
		}
		for _, p := range products {
			vendor := ""
			if p.VendorProfile != nil {
				vendor = p.VendorProfile.BusinessName
				if vendor == "" {
					vendor = p.VendorProfile.OrganizationName
				}
			}
			category := ""
			if p.Category != nil {
				category = p.Category.Name
			}
			values := []any{
				p.ID, p.Name, vendor, category,
				p.Price.StringFixed(2), p.Quantity, string(p.Status),
				len(p.Variations), p.CreatedAt.Format("2006-01-02 15:04"),
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}
			row++
		}
		if len(products) < pageSize {
			break
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
