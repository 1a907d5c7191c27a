package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/cistech/market/internal/domain"
)

type VendorUC struct {
	Vendors  domain.VendorRepo
	Users    domain.UserRepo
	Products domain.CatalogRepo
}

// VendorApply carries the application form. Which fields are required depends
// on the business type.
type VendorApply struct {
	BusinessType        domain.BusinessType `json:"business_type" validate:"required"`
	BusinessName        string              `json:"business_name"`
	OrganizationName    string              `json:"organization_name"`
	LegalForm           string              `json:"legal_form"`
	INN                 string              `json:"inn"`
	RegistrationCountry string              `json:"registration_country"`
	PassportFrontURL    string              `json:"passport_front_url"`
	PassportBackURL     string              `json:"passport_back_url"`
	Description         string              `json:"description"`
}

func (in *VendorApply) validate() error {
	if !in.BusinessType.Valid() {
		return domain.Validationf("invalid business type %q", in.BusinessType)
	}
	switch in.BusinessType {
	case domain.BusinessIndividual:
		if in.PassportFrontURL == "" || in.PassportBackURL == "" {
			return domain.Validationf("passport photos are required for individual sellers")
		}
	case domain.BusinessIP:
		if strings.TrimSpace(in.INN) == "" {
			return domain.Validationf("inn is required for sole proprietors")
		}
		if strings.TrimSpace(in.BusinessName) == "" {
			return domain.Validationf("business name is required for sole proprietors")
		}
	case domain.BusinessLegalEntity:
		if strings.TrimSpace(in.OrganizationName) == "" {
			return domain.Validationf("organization name is required for legal entities")
		}
		if strings.TrimSpace(in.LegalForm) == "" {
			return domain.Validationf("legal form is required for legal entities")
		}
		if strings.TrimSpace(in.INN) == "" {
			return domain.Validationf("inn is required for legal entities")
		}
	}
	return nil
}

func (in *VendorApply) fill(v *domain.VendorProfile) {
	v.BusinessType = in.BusinessType
	v.BusinessName = strings.TrimSpace(in.BusinessName)
	v.OrganizationName = strings.TrimSpace(in.OrganizationName)
	v.LegalForm = strings.TrimSpace(in.LegalForm)
	v.INN = strings.TrimSpace(in.INN)
	v.RegistrationCountry = strings.TrimSpace(in.RegistrationCountry)
	v.PassportFrontURL = in.PassportFrontURL
	v.PassportBackURL = in.PassportBackURL
	v.Description = in.Description
}

// Apply files a vendor application. A user holds at most one profile; an
// existing rejected profile is resubmitted in place, anything else conflicts.
func (uc *VendorUC) Apply(ctx context.Context, userID uint, in VendorApply) (*domain.VendorProfile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := uc.Vendors.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		if existing.Status != domain.VendorStatusRejected {
			return nil, domain.ErrConflict
		}
		in.fill(existing)
		existing.SetStatus(domain.VendorStatusPending, "")
		if err := uc.Vendors.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, domain.ErrNotFound):
		v := &domain.VendorProfile{UserID: userID, Status: domain.VendorStatusPending}
		in.fill(v)
		if err := uc.Vendors.Save(ctx, v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, err
	}
}

func (uc *VendorUC) Profile(ctx context.Context, userID uint) (*domain.VendorProfile, error) {
	return uc.Vendors.FindByUserID(ctx, userID)
}

// UpdateProfile edits form fields without touching the status. Approved
// vendors keep their approval; use Apply for resubmission after a rejection.
func (uc *VendorUC) UpdateProfile(ctx context.Context, userID uint, in VendorApply) (*domain.VendorProfile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	v, err := uc.Vendors.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	in.fill(v)
	if err := uc.Vendors.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

type VendorDashboard struct {
	Status           domain.VendorStatus `json:"status"`
	RejectReason     string              `json:"reject_reason,omitempty"`
	TotalProducts    int64               `json:"total_products"`
	PendingProducts  int64               `json:"pending_products"`
	ApprovedProducts int64               `json:"approved_products"`
	RejectedProducts int64               `json:"rejected_products"`
}

func (uc *VendorUC) Dashboard(ctx context.Context, userID uint) (*VendorDashboard, error) {
	v, err := uc.Vendors.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	d := &VendorDashboard{Status: v.Status, RejectReason: v.RejectReason}
	counts := map[domain.ProductStatus]*int64{
		"":                           &d.TotalProducts,
		domain.ProductStatusPending:  &d.PendingProducts,
		domain.ProductStatusApproved: &d.ApprovedProducts,
		domain.ProductStatusRejected: &d.RejectedProducts,
	}
	for status, dst := range counts {
		_, n, err := uc.Products.List(ctx, domain.ProductFilter{VendorProfileID: v.ID, Status: status, Limit: 1})
		if err != nil {
			return nil, err
		}
		*dst = n
	}
	return d, nil
}

// PublicProfile exposes approved vendors only, together with their approved
// products.
func (uc *VendorUC) PublicProfile(ctx context.Context, vendorID uint) (*domain.VendorProfile, []domain.Product, error) {
	v, err := uc.Vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, nil, err
	}
	if v.Status != domain.VendorStatusApproved {
		return nil, nil, domain.ErrNotFound
	}
	products, _, err := uc.Products.List(ctx, domain.ProductFilter{
		VendorProfileID: v.ID,
		ApprovedOnly:    true,
		Limit:           100,
	})
	if err != nil {
		return nil, nil, err
	}
	return v, products, nil
}
