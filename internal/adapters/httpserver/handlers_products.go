package httpserver

import (
	"net/http"

	"github.com/cistech/market/internal/domain"
)

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.ProductCreate
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.catalog.Create(r.Context(), userFrom(r).VendorProfile.ID, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleMyProducts(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	status := domain.ProductStatus(r.URL.Query().Get("status"))
	list, total, err := s.catalog.ListMine(r.Context(), userFrom(r).VendorProfile.ID, status, offset, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list, "total": total})
}

func (s *Server) handleMyProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if p.VendorProfileID != userFrom(r).VendorProfile.ID {
		s.writeError(w, r, domain.ErrForbidden)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req domain.ProductUpdate
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.catalog.Update(r.Context(), userFrom(r).VendorProfile.ID, id, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProductStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req struct {
		Status domain.ProductStatus `json:"status" validate:"required"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.catalog.ChangeStatus(r.Context(), userFrom(r).VendorProfile.ID, id, req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.catalog.Delete(r.Context(), userFrom(r).VendorProfile.ID, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// public surface

func (s *Server) handlePublicProducts(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	f := domain.ProductFilter{
		Query:      r.URL.Query().Get("q"),
		CategoryID: uint(queryInt(r, "category_id", 0)),
		Offset:     offset,
		Limit:      limit,
	}
	if vendorID := queryInt(r, "vendor_id", 0); vendorID > 0 {
		f.VendorProfileID = uint(vendorID)
	}
	list, total, err := s.catalog.ListPublic(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list, "total": total})
}

func (s *Server) handlePublicProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.catalog.GetPublic(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProductsByFilterOptions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FilterOptionIDs []uint `json:"filter_option_ids" validate:"required,min=1"`
		MatchAll        bool   `json:"match_all"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.catalog.SearchByFilterOptions(r.Context(), req.FilterOptionIDs, req.MatchAll)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}

func (s *Server) handleProductVariations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.catalog.Variations(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}
