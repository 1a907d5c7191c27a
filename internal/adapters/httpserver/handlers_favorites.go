package httpserver

import "net/http"

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	list, err := s.favorites.List(r.Context(), userFrom(r).ID, offset, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}

func (s *Server) handleFavoriteProducts(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	list, err := s.favorites.ListProducts(r.Context(), userFrom(r).ID, offset, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	fav, err := s.favorites.Add(r.Context(), userFrom(r).ID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, fav)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.favorites.Remove(r.Context(), userFrom(r).ID, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
