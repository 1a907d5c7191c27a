package httpserver

import (
	"io"
	"net/http"

	"github.com/cistech/market/internal/domain"
)

const maxUploadBytes = 10 << 20

var allowedUploadFolders = map[string]bool{
	"products":  true,
	"passports": true,
	"avatars":   true,
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		writeJSON(w, http.StatusServiceUnavailable, errEnvelope{Error: "object storage not configured"})
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, r, domain.Validationf("invalid multipart body"))
		return
	}
	folder := r.FormValue("folder")
	if !allowedUploadFolders[folder] {
		s.writeError(w, r, domain.Validationf("invalid folder"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, domain.Validationf("file is required"))
		return
	}
	defer file.Close()
	if header.Size > maxUploadBytes {
		s.writeError(w, r, domain.Validationf("file exceeds %d bytes", maxUploadBytes))
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	url, err := s.storage.Upload(r.Context(), folder, header.Filename, data, header.Header.Get("Content-Type"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (s *Server) handleDeleteUpload(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		writeJSON(w, http.StatusServiceUnavailable, errEnvelope{Error: "object storage not configured"})
		return
	}
	var req struct {
		URL string `json:"url" validate:"required,url"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.storage.Delete(r.Context(), req.URL); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
