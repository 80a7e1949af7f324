package service

import (
	"blogboard/internal/common"
	"blogboard/internal/domain/model"
	"blogboard/internal/domain/repository"
	"context"
	"errors"
	"fmt"
)

type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo}
}

type UserProfileResponse struct {
	User  *model.UserProfile `json:"user"`
	Posts []model.Post       `json:"posts"`
}

func (s *UserService) List(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.userRepo.ListWithPostCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*UserProfileResponse, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}

	posts, err := s.postRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}

	return &UserProfileResponse{User: profile, Posts: posts}, nil
}

func (s *UserService) GetStats(ctx context.Context, userID string) (*model.UserStats, error) {
	// The aggregate query returns a row even for unknown users, so existence
	// is checked first to keep the 404 contract.
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	stats, err := s.postRepo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user stats: %w", err)
	}
	return stats, nil
}
