package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/cistech/market/internal/domain"
	"github.com/cistech/market/internal/usecase"
)

type Server struct {
	mux      *http.ServeMux
	validate *validator.Validate

	catalog   *usecase.CatalogUC
	basket    *usecase.BasketUC
	favorites *usecase.FavoriteUC
	metadata  *usecase.MetadataUC
	vendors   *usecase.VendorUC
	admin     *usecase.AdminUC
	auth      *usecase.AuthUC
	orders    *usecase.OrderUC

	identity domain.TokenVerifier
	storage  domain.FileStorage
}

type Deps struct {
	Catalog   *usecase.CatalogUC
	Basket    *usecase.BasketUC
	Favorites *usecase.FavoriteUC
	Metadata  *usecase.MetadataUC
	Vendors   *usecase.VendorUC
	Admin     *usecase.AdminUC
	Auth      *usecase.AuthUC
	Orders    *usecase.OrderUC
	Identity  domain.TokenVerifier
	Storage   domain.FileStorage
}

func New(d Deps) http.Handler {
	s := &Server{
		mux:       http.NewServeMux(),
		validate:  validator.New(),
		catalog:   d.Catalog,
		basket:    d.Basket,
		favorites: d.Favorites,
		metadata:  d.Metadata,
		vendors:   d.Vendors,
		admin:     d.Admin,
		auth:      d.Auth,
		orders:    d.Orders,
		identity:  d.Identity,
		storage:   d.Storage,
	}
	s.routes()
	return Chain(s.mux,
		RateLimit(120),
		CORS,
		Gzip,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	mux := s.mux

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// auth
	mux.HandleFunc("POST /api/v1/auth/request-verification", s.handleRequestVerification)
	mux.Handle("POST /api/v1/auth/verify-phone", s.withClaims(s.handleVerifyPhone))
	mux.Handle("POST /api/v1/auth/complete-profile", s.withUser(s.handleCompleteProfile))
	mux.Handle("GET /api/v1/auth/profile", s.withUser(s.handleProfile))
	mux.HandleFunc("POST /api/v1/auth/check-user", s.handleCheckUser)

	// public catalog
	mux.HandleFunc("GET /api/v1/products/public", s.handlePublicProducts)
	mux.HandleFunc("GET /api/v1/products/public/{id}", s.handlePublicProduct)
	mux.HandleFunc("POST /api/v1/products/public/filter", s.handleProductsByFilterOptions)
	mux.HandleFunc("GET /api/v1/variations/product/{id}", s.handleProductVariations)
	mux.HandleFunc("GET /api/v1/get_catalogs_filter/", s.handleMetadataTree)
	mux.HandleFunc("GET /api/v1/categories", s.handleCategories)

	// vendor catalog
	mux.Handle("POST /api/v1/products", s.withApprovedVendor(s.handleCreateProduct))
	mux.Handle("GET /api/v1/products", s.withApprovedVendor(s.handleMyProducts))
	mux.Handle("GET /api/v1/products/{id}", s.withApprovedVendor(s.handleMyProduct))
	mux.Handle("PUT /api/v1/products/{id}", s.withApprovedVendor(s.handleUpdateProduct))
	mux.Handle("PATCH /api/v1/products/{id}/status", s.withApprovedVendor(s.handleProductStatus))
	mux.Handle("DELETE /api/v1/products/{id}", s.withApprovedVendor(s.handleDeleteProduct))

	// basket
	mux.Handle("GET /api/v1/basket", s.withUser(s.handleGetBasket))
	mux.Handle("POST /api/v1/basket/items", s.withUser(s.handleAddBasketItem))
	mux.Handle("PUT /api/v1/basket/items/{id}", s.withUser(s.handleUpdateBasketItem))
	mux.Handle("DELETE /api/v1/basket/items/{id}", s.withUser(s.handleRemoveBasketItem))
	mux.Handle("DELETE /api/v1/basket", s.withUser(s.handleClearBasket))

	// favorites
	mux.Handle("GET /api/v1/favorites", s.withUser(s.handleListFavorites))
	mux.Handle("GET /api/v1/favorites/products", s.withUser(s.handleFavoriteProducts))
	mux.Handle("POST /api/v1/favorites/{productID}", s.withUser(s.handleAddFavorite))
	mux.Handle("DELETE /api/v1/favorites/{productID}", s.withUser(s.handleRemoveFavorite))

	// vendor profile
	mux.Handle("POST /api/v1/vendor/apply", s.withUser(s.handleVendorApply))
	mux.Handle("GET /api/v1/vendor/profile", s.withUser(s.handleVendorProfile))
	mux.Handle("PUT /api/v1/vendor/profile", s.withUser(s.handleVendorUpdate))
	mux.Handle("GET /api/v1/vendor/status", s.withUser(s.handleVendorStatus))
	mux.Handle("GET /api/v1/vendor/dashboard", s.withUser(s.handleVendorDashboard))
	mux.HandleFunc("GET /api/v1/vendor/public/{id}", s.handleVendorPublic)

	// orders
	mux.Handle("POST /api/v1/orders", s.withUser(s.handleCreateOrder))
	mux.Handle("GET /api/v1/orders", s.withUser(s.handleMyOrders))
	mux.Handle("GET /api/v1/orders/{id}", s.withUser(s.handleGetOrder))
	mux.Handle("PATCH /api/v1/orders/{id}/status", s.withAdmin(s.handleOrderStatus))

	// uploads
	mux.Handle("POST /api/v1/uploads", s.withUser(s.handleUpload))
	mux.Handle("DELETE /api/v1/uploads", s.withUser(s.handleDeleteUpload))

	// admin
	mux.Handle("GET /api/v1/admin/dashboard", s.withAdmin(s.handleAdminDashboard))
	mux.Handle("GET /api/v1/admin/users", s.withSuperadmin(s.handleAdminUsers))
	mux.Handle("PATCH /api/v1/admin/users/{id}/type", s.withSuperadmin(s.handleAdminUserType))
	mux.Handle("DELETE /api/v1/admin/users/{id}", s.withSuperadmin(s.handleAdminDeleteUser))
	mux.Handle("GET /api/v1/admin/products", s.withAdmin(s.handleAdminProducts))
	mux.Handle("PATCH /api/v1/admin/products/{id}/status", s.withAdmin(s.handleAdminProductStatus))
	mux.Handle("DELETE /api/v1/admin/products/{id}", s.withAdmin(s.handleAdminDeleteProduct))
	mux.Handle("GET /api/v1/admin/vendors", s.withAdmin(s.handleAdminVendors))
	mux.Handle("POST /api/v1/admin/vendors/{id}/approve", s.withAdmin(s.handleAdminApproveVendor))
	mux.Handle("POST /api/v1/admin/vendors/{id}/reject", s.withAdmin(s.handleAdminRejectVendor))
	mux.Handle("GET /api/v1/admin/export/catalog.xlsx", s.withAdmin(s.handleAdminExportCatalog))
}

type errEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto status codes; anything unexpected is
// logged and surfaced as an opaque 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	var sErr *domain.StockError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errEnvelope{Error: vErr.Msg})
	case errors.As(err, &sErr):
		writeJSON(w, http.StatusBadRequest, errEnvelope{Error: sErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errEnvelope{Error: "not found"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errEnvelope{Error: "forbidden"})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errEnvelope{Error: "conflict"})
	default:
		reqID, _ := r.Context().Value(ctxKeyRequestID).(string)
		log.Error().Err(err).Str("path", r.URL.Path).Str("request_id", reqID).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errEnvelope{Error: "internal server error"})
	}
}

// decode unmarshals the body into dst and runs struct validation on it.
func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Validationf("invalid json body")
	}
	if err := s.validate.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return domain.Validationf("field %q failed validation (%s)", ve[0].Field(), ve[0].Tag())
		}
		return domain.Validationf("invalid request body")
	}
	return nil
}

func pathID(r *http.Request, name string) (uint, error) {
	n, err := strconv.ParseUint(r.PathValue(name), 10, 32)
	if err != nil || n == 0 {
		return 0, domain.Validationf("invalid %s", name)
	}
	return uint(n), nil
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func pagination(r *http.Request) (offset, limit int) {
	return queryInt(r, "offset", 0), queryInt(r, "limit", 20)
}
