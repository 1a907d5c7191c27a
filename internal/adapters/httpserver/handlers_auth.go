package httpserver

import (
	"net/http"

	"github.com/cistech/market/internal/usecase"
)

type phoneReq struct {
	Phone string `json:"phone" validate:"required"`
}

func (s *Server) handleRequestVerification(w http.ResponseWriter, r *http.Request) {
	var req phoneReq
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sessionID, err := s.auth.RequestVerification(r.Context(), req.Phone)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"session_id": sessionID})
}

func (s *Server) handleVerifyPhone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone" validate:"required"`
		Code  string `json:"code" validate:"required"`
	}
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	claims := claimsFrom(r)
	u, created, err := s.auth.VerifyPhone(r.Context(), claims.Subject, req.Phone, req.Code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	writeJSON(w, code, map[string]any{"user": u, "is_new": created})
}

func (s *Server) handleCompleteProfile(w http.ResponseWriter, r *http.Request) {
	var req usecase.ProfileUpdate
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.auth.CompleteProfile(r.Context(), userFrom(r).ID, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r))
}

func (s *Server) handleCheckUser(w http.ResponseWriter, r *http.Request) {
	var req phoneReq
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	exists, err := s.auth.CheckUser(r.Context(), req.Phone)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}
