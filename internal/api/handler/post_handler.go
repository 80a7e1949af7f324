package handler

import (
	"blogboard/internal/api/middleware"
	"blogboard/internal/app/service"
	"blogboard/internal/common"
	"blogboard/internal/domain/model"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PostService is the slice of the post service the handler needs.
type PostService interface {
	List(ctx context.Context) ([]model.Post, error)
	Create(ctx context.Context, userID string, req service.CreatePostRequest) (*model.Post, error)
	Update(ctx context.Context, actorID, postID string, req service.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, actorID, postID string) (*model.Post, error)
}

type PostHandler struct {
	postService PostService
}

func NewPostHandler(postService PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) RegisterRoutes(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Get("/", h.listPosts) // GET /api/v1/posts

	r.Group(func(protected chi.Router) {
		protected.Use(authn)
		protected.Post("/", h.createPost)
		protected.Put("/{postID}", h.updatePost)
		protected.Delete("/{postID}", h.deletePost)
	})
}

func (h *PostHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) createPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post added successfully",
		"post":    post,
	})
}

func (h *PostHandler) updatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	postID := chi.URLParam(r, "postID")

	var req service.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	post, err := h.postService.Update(r.Context(), userID, postID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post updated successfully",
		"post":    post,
	})
}

func (h *PostHandler) deletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	postID := chi.URLParam(r, "postID")

	post, err := h.postService.Delete(r.Context(), userID, postID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Post deleted successfully",
		"deletedPost": post,
	})
}
