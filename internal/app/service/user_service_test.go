package service

import (
	"blogboard/internal/common"
	"blogboard/internal/domain/model"
	"context"
	"errors"
	"testing"
	"time"
)

// statsUserRepo wraps fakeUserRepo with a profile for one known user.
type statsUserRepo struct {
	*fakeUserRepo
	profile *model.UserProfile
}

func (s *statsUserRepo) GetProfile(ctx context.Context, id string) (*model.UserProfile, error) {
	if s.profile != nil && s.profile.ID == id {
		return s.profile, nil
	}
	return nil, common.ErrNotFound
}

func newTestUserService() (*UserService, *statsUserRepo, *fakePostRepo) {
	users := &statsUserRepo{fakeUserRepo: newFakeUserRepo()}
	posts := newFakePostRepo()
	return NewUserService(users, posts), users, posts
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.GetProfile(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetProfile_IncludesPosts(t *testing.T) {
	svc, users, posts := newTestUserService()
	users.byEmail["alice@example.com"] = &model.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	users.profile = &model.UserProfile{ID: "u1", Name: "Alice", TotalPosts: 1}
	seedPost(posts, "p1", "u1")
	seedPost(posts, "p2", "u2")

	resp, err := svc.GetProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.TotalPosts != 1 {
		t.Errorf("TotalPosts = %d, want 1", resp.User.TotalPosts)
	}
	if len(resp.Posts) != 1 || resp.Posts[0].ID != "p1" {
		t.Errorf("expected only u1's posts, got %+v", resp.Posts)
	}
}

func TestGetStats_UnknownUser(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.GetStats(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetStats_KnownUser(t *testing.T) {
	svc, users, _ := newTestUserService()
	users.byEmail["alice@example.com"] = &model.User{
		ID: "u1", Name: "Alice", Email: "alice@example.com", CreatedAt: time.Now(),
	}

	stats, err := svc.GetStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.UserID != "u1" {
		t.Errorf("UserID = %q, want %q", stats.UserID, "u1")
	}
}
