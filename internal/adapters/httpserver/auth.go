package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/cistech/market/internal/domain"
)

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func claimsFrom(r *http.Request) *domain.TokenClaims {
	c, _ := r.Context().Value(ctxKeyClaims).(*domain.TokenClaims)
	return c
}

func userFrom(r *http.Request) *domain.User {
	u, _ := r.Context().Value(ctxKeyUser).(*domain.User)
	return u
}

// withClaims verifies the bearer token with the identity provider and stores
// the resulting claims. No local user row is required yet; the verify-phone
// flow runs before one exists.
func (s *Server) withClaims(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.identity == nil {
			writeJSON(w, http.StatusServiceUnavailable, errEnvelope{Error: "identity provider not configured"})
			return
		}
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errEnvelope{Error: "missing bearer token"})
			return
		}
		claims, err := s.identity.VerifyToken(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errEnvelope{Error: "invalid token"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyClaims, claims)))
	})
}

// withUser additionally resolves the local user row for the token subject.
func (s *Server) withUser(next http.HandlerFunc) http.Handler {
	return s.withClaims(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		u, err := s.auth.UserByExternalUID(r.Context(), claims.Subject)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyUser, u)))
	})
}

func (s *Server) withAdmin(next http.HandlerFunc) http.Handler {
	return s.withUser(func(w http.ResponseWriter, r *http.Request) {
		if !userFrom(r).IsAdmin() {
			writeJSON(w, http.StatusForbidden, errEnvelope{Error: "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withSuperadmin(next http.HandlerFunc) http.Handler {
	return s.withUser(func(w http.ResponseWriter, r *http.Request) {
		if !userFrom(r).IsSuperadmin() {
			writeJSON(w, http.StatusForbidden, errEnvelope{Error: "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withApprovedVendor gates the selling surface: the caller must hold an
// approved vendor profile.
func (s *Server) withApprovedVendor(next http.HandlerFunc) http.Handler {
	return s.withUser(func(w http.ResponseWriter, r *http.Request) {
		u := userFrom(r)
		if u.VendorProfile == nil || u.VendorProfile.Status != domain.VendorStatusApproved {
			writeJSON(w, http.StatusForbidden, errEnvelope{Error: "vendor profile is not approved"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
