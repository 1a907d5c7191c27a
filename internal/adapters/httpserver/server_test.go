package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cistech/market/internal/domain"
	"github.com/cistech/market/internal/usecase"
)

type stubVerifier struct {
	claims map[string]*domain.TokenClaims
}

func (s *stubVerifier) VerifyToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	if c, ok := s.claims[token]; ok {
		return c, nil
	}
	return nil, domain.ErrForbidden
}

func (s *stubVerifier) SetCustomClaims(ctx context.Context, uid string, claims map[string]any) error {
	return nil
}

type stubCatalogRepo struct {
	products map[uint]*domain.Product
}

func (s *stubCatalogRepo) CreateComplete(ctx context.Context, vendorProfileID uint, in domain.ProductCreate) (*domain.Product, error) {
	p := &domain.Product{ID: 100, VendorProfileID: vendorProfileID, Name: in.Name, Price: in.Price, Quantity: in.Quantity, Status: domain.ProductStatusPending}
	s.products[p.ID] = p
	return p, nil
}
func (s *stubCatalogRepo) UpdateComplete(ctx context.Context, productID uint, in domain.ProductUpdate) (*domain.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
func (s *stubCatalogRepo) DeleteFull(ctx context.Context, productID uint) error {
	delete(s.products, productID)
	return nil
}
func (s *stubCatalogRepo) Get(ctx context.Context, id uint) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
func (s *stubCatalogRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	var out []domain.Product
	for _, p := range s.products {
		if f.ApprovedOnly && p.Status != domain.ProductStatusApproved {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}
func (s *stubCatalogRepo) ListByFilterOptions(ctx context.Context, optionIDs []uint, matchAll, approvedOnly bool) ([]domain.Product, error) {
	return nil, nil
}
func (s *stubCatalogRepo) ListVariations(ctx context.Context, productID uint) ([]domain.Variation, error) {
	return nil, nil
}
func (s *stubCatalogRepo) UpdateStatus(ctx context.Context, productID uint, status domain.ProductStatus) error {
	p, ok := s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}
func (s *stubCatalogRepo) Stats(ctx context.Context) (domain.ProductStats, error) {
	return domain.ProductStats{}, nil
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) FindByExternalUID(ctx context.Context, uid string) (*domain.User, error) {
	if u, ok := s.users[uid]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}
func (s *stubUserRepo) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
func (s *stubUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (s *stubUserRepo) Save(ctx context.Context, u *domain.User) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id uint) error      { return nil }
func (s *stubUserRepo) List(ctx context.Context, query string, offset, limit int) ([]domain.User, int64, error) {
	return nil, 0, nil
}
func (s *stubUserRepo) Stats(ctx context.Context) (domain.UserStats, error) {
	return domain.UserStats{}, nil
}

type stubMetadataRepo struct{}

func (stubMetadataRepo) Tree(ctx context.Context) (domain.MetadataTree, error) {
	return domain.MetadataTree{
		"Electronics": {ID: 1, Filters: map[string]domain.MetadataFilter{}},
	}, nil
}
func (stubMetadataRepo) CategoryExists(ctx context.Context, id uint) (bool, error) {
	return true, nil
}
func (stubMetadataRepo) Categories(ctx context.Context) ([]domain.Category, error) { return nil, nil }

func testServer(t *testing.T) (http.Handler, *stubCatalogRepo) {
	t.Helper()
	catalog := &stubCatalogRepo{products: map[uint]*domain.Product{
		1: {ID: 1, VendorProfileID: 10, Name: "Phone", Price: decimal.RequireFromString("100.00"), Status: domain.ProductStatusApproved, Quantity: 5},
		2: {ID: 2, VendorProfileID: 10, Name: "Draft thing", Price: decimal.RequireFromString("5.00"), Status: domain.ProductStatusPending, Quantity: 1},
	}}
	users := &stubUserRepo{users: map[string]*domain.User{
		"uid-user": {ID: 1, ExternalUID: "uid-user", UserType: domain.UserTypeUser},
		"uid-vendor": {
			ID: 2, ExternalUID: "uid-vendor", UserType: domain.UserTypeVendor,
			VendorProfile: &domain.VendorProfile{ID: 10, UserID: 2, Status: domain.VendorStatusApproved},
		},
		"uid-admin": {ID: 3, ExternalUID: "uid-admin", UserType: domain.UserTypeAdmin},
	}}
	verifier := &stubVerifier{claims: map[string]*domain.TokenClaims{
		"tok-user":   {Subject: "uid-user", UserType: domain.UserTypeUser},
		"tok-vendor": {Subject: "uid-vendor", UserType: domain.UserTypeVendor, VendorStatus: domain.VendorStatusApproved},
		"tok-admin":  {Subject: "uid-admin", UserType: domain.UserTypeAdmin},
	}}

	meta := stubMetadataRepo{}
	h := New(Deps{
		Catalog:   &usecase.CatalogUC{Products: catalog, Metadata: meta},
		Metadata:  &usecase.MetadataUC{Metadata: meta},
		Vendors:   &usecase.VendorUC{Products: catalog},
		Admin:     &usecase.AdminUC{Users: users, Products: catalog, Identity: verifier},
		Auth:      &usecase.AuthUC{Users: users},
		Identity:  verifier,
		Favorites: &usecase.FavoriteUC{},
		Basket:    &usecase.BasketUC{},
		Orders:    &usecase.OrderUC{},
	})
	return h, catalog
}

func TestRoutesAuthorization(t *testing.T) {
	h, _ := testServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{"health is open", http.MethodGet, "/healthz", "", "", http.StatusOK},
		{"public products open", http.MethodGet, "/api/v1/products/public", "", "", http.StatusOK},
		{"metadata tree open", http.MethodGet, "/api/v1/get_catalogs_filter/", "", "", http.StatusOK},
		{"profile needs token", http.MethodGet, "/api/v1/auth/profile", "", "", http.StatusUnauthorized},
		{"profile bad token", http.MethodGet, "/api/v1/auth/profile", "garbage", "", http.StatusUnauthorized},
		{"profile ok", http.MethodGet, "/api/v1/auth/profile", "tok-user", "", http.StatusOK},
		{"vendor surface blocked for plain user", http.MethodPost, "/api/v1/products", "tok-user", `{"name":"x","price":"1.00"}`, http.StatusForbidden},
		{"admin dashboard blocked for vendor", http.MethodGet, "/api/v1/admin/dashboard", "tok-vendor", "", http.StatusForbidden},
		{"admin users needs superadmin", http.MethodGet, "/api/v1/admin/users", "tok-admin", "", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req *http.Request
			if tc.body != "" {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			}
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestPublicProductListHidesUnapproved(t *testing.T) {
	h, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/public", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Items []domain.Product `json:"items"`
		Total int64            `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Phone", out.Items[0].Name)
}

func TestPublicProductDetail(t *testing.T) {
	h, _ := testServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/public/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// pending products are invisible on the public surface
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/public/2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/public/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVendorCreateProduct(t *testing.T) {
	h, catalog := testServer(t)

	body := `{"name":"New item","price":"15.50","quantity":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer tok-vendor")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created, ok := catalog.products[100]
	require.True(t, ok)
	assert.Equal(t, uint(10), created.VendorProfileID)
	assert.Equal(t, domain.ProductStatusPending, created.Status)
}

func TestVendorCreateProductValidation(t *testing.T) {
	h, _ := testServer(t)

	body := `{"name":"Free stuff","price":"0","quantity":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer tok-vendor")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var out errEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Contains(t, out.Error, "price")
}

func TestAdminProductStatusTransition(t *testing.T) {
	h, catalog := testServer(t)

	// pending -> approved is legal
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/products/2/status", strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("Authorization", "Bearer tok-admin")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.ProductStatusApproved, catalog.products[2].Status)

	// approved -> draft is not
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/admin/products/2/status", strings.NewReader(`{"status":"draft"}`))
	req.Header.Set("Authorization", "Bearer tok-admin")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
