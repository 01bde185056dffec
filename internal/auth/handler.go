package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"personalportal/internal/auth/model"
	"personalportal/internal/auth/service"
	"personalportal/pkg/respond"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// Routes mounts the handler under /api/auth.
func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/validate", h.Validate)
}

// Login answers 200 for both outcomes; the body's success flag tells them apart.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.Login(req)
	if err != nil {
		respond.Error(w, err, "log in")
		return
	}
	respond.JSON(w, http.StatusOK, resp)
}

// Validate takes the token as a bare JSON string.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var token string
	if err := json.NewDecoder(r.Body).Decode(&token); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	respond.JSON(w, http.StatusOK, h.Service.Validate(token))
}
