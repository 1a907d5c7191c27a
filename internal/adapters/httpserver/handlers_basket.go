package httpserver

import (
	"net/http"

	"github.com/cistech/market/internal/domain"
)

type basketView struct {
	*domain.Basket
	TotalQuantity int    `json:"total_quantity"`
	TotalPrice    string `json:"total_price"`
}

func viewBasket(b *domain.Basket) basketView {
	return basketView{
		Basket:        b,
		TotalQuantity: b.TotalQuantity(),
		TotalPrice:    b.TotalPrice().StringFixed(2),
	}
}

func (s *Server) handleGetBasket(w http.ResponseWriter, r *http.Request) {
	b, err := s.basket.Get(r.Context(), userFrom(r).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewBasket(b))
}

func (s *Server) handleAddBasketItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID uint `json:"product_id" validate:"required"`
		Quantity  int  `json:"quantity" validate:"required,gte=1"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.basket.AddItem(r.Context(), userFrom(r).ID, req.ProductID, req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateBasketItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req struct {
		Quantity int `json:"quantity" validate:"required,gte=1"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.basket.UpdateItem(r.Context(), userFrom(r).ID, id, req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleRemoveBasketItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.basket.RemoveItem(r.Context(), userFrom(r).ID, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleClearBasket(w http.ResponseWriter, r *http.Request) {
	if err := s.basket.Clear(r.Context(), userFrom(r).ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
