package handler

import (
	"blogboard/internal/app/service"
	"blogboard/internal/common"
	"blogboard/internal/domain/model"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// UserService is the slice of the user service the handler needs.
type UserService interface {
	List(ctx context.Context) ([]model.UserSummary, error)
	GetProfile(ctx context.Context, userID string) (*service.UserProfileResponse, error)
	GetStats(ctx context.Context, userID string) (*model.UserStats, error)
}

type UserHandler struct {
	userService UserService
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listUsers)                  // GET /api/v1/users
	r.Get("/{userID}", h.getUser)            // GET /api/v1/users/{id}
	r.Get("/{userID}/stats", h.getUserStats) // GET /api/v1/users/{id}/stats
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) getUserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := h.userService.GetStats(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}
