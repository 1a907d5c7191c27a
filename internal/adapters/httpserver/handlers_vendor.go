package httpserver

import (
	"net/http"

	"github.com/cistech/market/internal/usecase"
)

func (s *Server) handleVendorApply(w http.ResponseWriter, r *http.Request) {
	var req usecase.VendorApply
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := s.vendors.Apply(r.Context(), userFrom(r).ID, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleVendorProfile(w http.ResponseWriter, r *http.Request) {
	v, err := s.vendors.Profile(r.Context(), userFrom(r).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleVendorUpdate(w http.ResponseWriter, r *http.Request) {
	var req usecase.VendorApply
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := s.vendors.UpdateProfile(r.Context(), userFrom(r).ID, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleVendorStatus(w http.ResponseWriter, r *http.Request) {
	v, err := s.vendors.Profile(r.Context(), userFrom(r).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        v.Status,
		"reject_reason": v.RejectReason,
	})
}

func (s *Server) handleVendorDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.vendors.Dashboard(r.Context(), userFrom(r).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleVendorPublic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, products, err := s.vendors.PublicProfile(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vendor": map[string]any{
			"id":            v.ID,
			"business_type": v.BusinessType,
			"business_name": v.BusinessName,
			"description":   v.Description,
		},
		"products": products,
	})
}
