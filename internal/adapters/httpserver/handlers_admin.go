package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cistech/market/internal/domain"
)

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.admin.Dashboard(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	list, total, err := s.admin.ListUsers(r.Context(), r.URL.Query().Get("q"), offset, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list, "total": total})
}

func (s *Server) handleAdminUserType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req struct {
		UserType domain.UserType `json:"user_type" validate:"required"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.admin.UpdateUserType(r.Context(), id, req.UserType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if id == userFrom(r).ID {
		s.writeError(w, r, domain.Validationf("cannot delete your own account"))
		return
	}
	if err := s.admin.DeleteUser(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	f := domain.ProductFilter{
		Status:     domain.ProductStatus(r.URL.Query().Get("status")),
		CategoryID: uint(queryInt(r, "category_id", 0)),
		Query:      r.URL.Query().Get("q"),
		Offset:     offset,
		Limit:      limit,
	}
	if vendorID := queryInt(r, "vendor_id", 0); vendorID > 0 {
		f.VendorProfileID = uint(vendorID)
	}
	list, total, err := s.admin.ListProducts(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list, "total": total})
}

func (s *Server) handleAdminProductStatus(w http.ResponseWriter, r *http.Request) {
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
	p, err := s.admin.SetProductStatus(r.Context(), id, req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.admin.DeleteProduct(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAdminVendors(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	status := domain.VendorStatus(r.URL.Query().Get("status"))
	list, total, err := s.admin.ListVendors(r.Context(), status, offset, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list, "total": total})
}

func (s *Server) handleAdminApproveVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := s.admin.ApproveVendor(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleAdminRejectVendor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req struct {
		Reason string `json:"reason" validate:"required"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := s.admin.RejectVendor(r.Context(), id, req.Reason)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleAdminExportCatalog(w http.ResponseWriter, r *http.Request) {
	data, err := s.admin.ExportCatalogXLSX(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name := fmt.Sprintf("catalog-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
