package handler

import (
	"blogboard/internal/api/middleware"
	"blogboard/internal/app/service"
	"blogboard/internal/common"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AuthService is the slice of the auth service the handler needs.
type AuthService interface {
	Register(ctx context.Context, req service.RegisterRequest) (string, error)
	Login(ctx context.Context, req service.LoginRequest) (*service.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)

	r.Group(func(protected chi.Router) {
		protected.Use(authn)
		protected.Post("/logout", h.logout)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	id, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User registered successfully",
		"id":      id,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    resp.User,
		"token":   resp.Token,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing session context")
		return
	}

	if err := h.authService.Logout(r.Context(), sessionID); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}
