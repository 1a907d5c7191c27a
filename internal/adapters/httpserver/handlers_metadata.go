package httpserver

import "net/http"

func (s *Server) handleMetadataTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.metadata.Tree(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	list, err := s.metadata.Categories(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}
