package service

import (
	"blogboard/internal/common"
	"blogboard/internal/domain/model"
	"blogboard/internal/domain/repository"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

type PostService struct {
	postRepo repository.PostRepository
	logger   *zap.Logger
}

func NewPostService(postRepo repository.PostRepository, logger *zap.Logger) *PostService {
	return &PostService{postRepo: postRepo, logger: logger}
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List returns the community feed, newest first, with author names resolved.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postRepo.ListWithAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Create persists a new post owned by the authenticated identity. The owner
// comes from the verified token, never from the request body.
func (s *PostService) Create(ctx context.Context, userID string, req CreatePostRequest) (*model.Post, error) {
	if err := validatePostFields(req.Title, req.Content); err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   req.Title,
		Slug:    slug.Make(req.Title),
		Content: req.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	created, err := s.postRepo.FindByIDWithAuthor(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created post: %w", err)
	}

	s.logger.Info("post created", zap.String("post_id", post.ID), zap.String("user_id", userID))
	return created, nil
}

// Update edits a post after the ownership guard passes: the acting identity
// must be the post's owner. The re-fetch after the update races concurrent
// deletes; a miss there is NotFound, not a failure.
func (s *PostService) Update(ctx context.Context, actorID, postID string, req UpdatePostRequest) (*model.Post, error) {
	if err := validatePostFields(req.Title, req.Content); err != nil {
		return nil, err
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if post.UserID != actorID {
		return nil, fmt.Errorf("only the author can edit a post: %w", common.ErrForbidden)
	}

	if err := s.postRepo.Update(ctx, postID, req.Title, slug.Make(req.Title), req.Content); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	updated, err := s.postRepo.FindByIDWithAuthor(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch updated post: %w", err)
	}

	s.logger.Info("post updated", zap.String("post_id", postID), zap.String("user_id", actorID))
	return updated, nil
}

// Delete removes a post after the ownership guard passes and returns the
// deleted record for confirmation.
func (s *PostService) Delete(ctx context.Context, actorID, postID string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if post.UserID != actorID {
		return nil, fmt.Errorf("only the author can delete a post: %w", common.ErrForbidden)
	}

	deleted, err := s.postRepo.Delete(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", zap.String("post_id", postID), zap.String("user_id", actorID))
	return deleted, nil
}

func validatePostFields(title, content string) error {
	if len(title) < 3 {
		return common.NewValidationError("title", "must be at least 3 characters long")
	}
	if len(content) < 10 {
		return common.NewValidationError("content", "must be at least 10 characters long")
	}
	return nil
}
