package usecase

import (
	"context"

	"github.com/cistech/market/internal/domain"
)

// function-field fakes; unset methods are never reached by the test.

type fakeCatalogRepo struct {
	CreateCompleteFn      func(ctx context.Context, vendorProfileID uint, in domain.ProductCreate) (*domain.Product, error)
	UpdateCompleteFn      func(ctx context.Context, productID uint, in domain.ProductUpdate) (*domain.Product, error)
	DeleteFullFn          func(ctx context.Context, productID uint) error
	GetFn                 func(ctx context.Context, id uint) (*domain.Product, error)
	ListFn                func(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error)
	ListByFilterOptionsFn func(ctx context.Context, optionIDs []uint, matchAll, approvedOnly bool) ([]domain.Product, error)
	ListVariationsFn      func(ctx context.Context, productID uint) ([]domain.Variation, error)
	UpdateStatusFn        func(ctx context.Context, productID uint, status domain.ProductStatus) error
	StatsFn               func(ctx context.Context) (domain.ProductStats, error)
}

func (f *fakeCatalogRepo) CreateComplete(ctx context.Context, vendorProfileID uint, in domain.ProductCreate) (*domain.Product, error) {
	return f.CreateCompleteFn(ctx, vendorProfileID, in)
}
func (f *fakeCatalogRepo) UpdateComplete(ctx context.Context, productID uint, in domain.ProductUpdate) (*domain.Product, error) {
	return f.UpdateCompleteFn(ctx, productID, in)
}
func (f *fakeCatalogRepo) DeleteFull(ctx context.Context, productID uint) error {
	return f.DeleteFullFn(ctx, productID)
}
func (f *fakeCatalogRepo) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return f.GetFn(ctx, id)
}
func (f *fakeCatalogRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	return f.ListFn(ctx, filter)
}
func (f *fakeCatalogRepo) ListByFilterOptions(ctx context.Context, optionIDs []uint, matchAll, approvedOnly bool) ([]domain.Product, error) {
	return f.ListByFilterOptionsFn(ctx, optionIDs, matchAll, approvedOnly)
}
func (f *fakeCatalogRepo) ListVariations(ctx context.Context, productID uint) ([]domain.Variation, error) {
	return f.ListVariationsFn(ctx, productID)
}
func (f *fakeCatalogRepo) UpdateStatus(ctx context.Context, productID uint, status domain.ProductStatus) error {
	return f.UpdateStatusFn(ctx, productID, status)
}
func (f *fakeCatalogRepo) Stats(ctx context.Context) (domain.ProductStats, error) {
	return f.StatsFn(ctx)
}

type fakeMetadataRepo struct {
	TreeFn           func(ctx context.Context) (domain.MetadataTree, error)
	CategoryExistsFn func(ctx context.Context, id uint) (bool, error)
	CategoriesFn     func(ctx context.Context) ([]domain.Category, error)
}

func (f *fakeMetadataRepo) Tree(ctx context.Context) (domain.MetadataTree, error) {
	return f.TreeFn(ctx)
}
func (f *fakeMetadataRepo) CategoryExists(ctx context.Context, id uint) (bool, error) {
	return f.CategoryExistsFn(ctx, id)
}
func (f *fakeMetadataRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	return f.CategoriesFn(ctx)
}

type fakeVendorRepo struct {
	FindByIDFn     func(ctx context.Context, id uint) (*domain.VendorProfile, error)
	FindByUserIDFn func(ctx context.Context, userID uint) (*domain.VendorProfile, error)
	SaveFn         func(ctx context.Context, v *domain.VendorProfile) error
	ListFn         func(ctx context.Context, status domain.VendorStatus, offset, limit int) ([]domain.VendorProfile, int64, error)
	StatsFn        func(ctx context.Context) (domain.VendorStats, error)
}

func (f *fakeVendorRepo) FindByID(ctx context.Context, id uint) (*domain.VendorProfile, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeVendorRepo) FindByUserID(ctx context.Context, userID uint) (*domain.VendorProfile, error) {
	return f.FindByUserIDFn(ctx, userID)
}
func (f *fakeVendorRepo) Save(ctx context.Context, v *domain.VendorProfile) error {
	return f.SaveFn(ctx, v)
}
func (f *fakeVendorRepo) List(ctx context.Context, status domain.VendorStatus, offset, limit int) ([]domain.VendorProfile, int64, error) {
	return f.ListFn(ctx, status, offset, limit)
}
func (f *fakeVendorRepo) Stats(ctx context.Context) (domain.VendorStats, error) {
	return f.StatsFn(ctx)
}

type fakeUserRepo struct {
	FindByExternalUIDFn func(ctx context.Context, uid string) (*domain.User, error)
	FindByPhoneFn       func(ctx context.Context, phone string) (*domain.User, error)
	FindByIDFn          func(ctx context.Context, id uint) (*domain.User, error)
	SaveFn              func(ctx context.Context, u *domain.User) error
	DeleteFn            func(ctx context.Context, id uint) error
	ListFn              func(ctx context.Context, query string, offset, limit int) ([]domain.User, int64, error)
	StatsFn             func(ctx context.Context) (domain.UserStats, error)
}

func (f *fakeUserRepo) FindByExternalUID(ctx context.Context, uid string) (*domain.User, error) {
	return f.FindByExternalUIDFn(ctx, uid)
}
func (f *fakeUserRepo) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return f.FindByPhoneFn(ctx, phone)
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeUserRepo) Save(ctx context.Context, u *domain.User) error { return f.SaveFn(ctx, u) }
func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error      { return f.DeleteFn(ctx, id) }
func (f *fakeUserRepo) List(ctx context.Context, query string, offset, limit int) ([]domain.User, int64, error) {
	return f.ListFn(ctx, query, offset, limit)
}
func (f *fakeUserRepo) Stats(ctx context.Context) (domain.UserStats, error) { return f.StatsFn(ctx) }

type fakeSMS struct {
	StartFn func(ctx context.Context, phone string) (string, error)
	CheckFn func(ctx context.Context, phone, code string) (bool, error)
}

func (f *fakeSMS) StartVerification(ctx context.Context, phone string) (string, error) {
	return f.StartFn(ctx, phone)
}
func (f *fakeSMS) CheckVerification(ctx context.Context, phone, code string) (bool, error) {
	return f.CheckFn(ctx, phone, code)
}
