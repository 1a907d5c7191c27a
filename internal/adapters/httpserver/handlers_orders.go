package httpserver

import (
	"net/http"

	"github.com/cistech/market/internal/domain"
)

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderCreate
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := s.orders.Create(r.Context(), userFrom(r).ID, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	status := domain.OrderStatus(r.URL.Query().Get("status"))
	list, err := s.orders.ListMine(r.Context(), userFrom(r).ID, status, offset, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	u := userFrom(r)
	o, err := s.orders.Get(r.Context(), u.ID, u.IsAdmin(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req struct {
		Status domain.OrderStatus `json:"status" validate:"required"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.orders.UpdateStatus(r.Context(), id, req.Status); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}
