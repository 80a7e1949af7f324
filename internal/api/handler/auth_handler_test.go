package handler

import (
	"blogboard/internal/api/middleware"
	"blogboard/internal/app/service"
	"blogboard/internal/common"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeAuthService implements AuthService for handler tests.
type fakeAuthService struct {
	registerID  string
	registerErr error
	loginReturn *service.LoginResponse
	loginErr    error
	logoutErr   error
	loggedOut   []string
}

func (f *fakeAuthService) Register(ctx context.Context, req service.RegisterRequest) (string, error) {
	return f.registerID, f.registerErr
}

func (f *fakeAuthService) Login(ctx context.Context, req service.LoginRequest) (*service.LoginResponse, error) {
	return f.loginReturn, f.loginErr
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionID string) error {
	f.loggedOut = append(f.loggedOut, sessionID)
	return f.logoutErr
}

// sessionAuthn injects an authenticated session without a real token.
func sessionAuthn(userID, sessionID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDCtxKey, userID)
			ctx = context.WithValue(ctx, middleware.SessionIDCtxKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newAuthRouter(svc AuthService) http.Handler {
	r := chi.NewRouter()
	h := NewAuthHandler(svc)
	r.Route("/api/v1", func(v1 chi.Router) {
		h.RegisterRoutes(v1, sessionAuthn("u1", "s1"))
	})
	return r
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		svc          *fakeAuthService
		expectedCode int
	}{
		{"success", `{"name":"Alice","email":"alice@example.com","password":"secret1"}`, &fakeAuthService{registerID: "u1"}, http.StatusOK},
		{"invalid JSON", `not a json`, &fakeAuthService{}, http.StatusBadRequest},
		{"validation", `{"name":"A","email":"alice@example.com","password":"secret1"}`, &fakeAuthService{registerErr: common.NewValidationError("name", "must be at least 2 characters long")}, http.StatusBadRequest},
		{"duplicate email", `{"name":"Alice","email":"alice@example.com","password":"secret1"}`, &fakeAuthService{registerErr: common.ErrDuplicateEmail}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(tt.svc)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/v1/register", bytes.NewBufferString(tt.body))
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.expectedCode, rec.Body.String())
			}
			if tt.expectedCode == http.StatusOK {
				var resp map[string]interface{}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid JSON response: %v", err)
				}
				if resp["id"] != "u1" {
					t.Errorf("id = %v, want %q", resp["id"], "u1")
				}
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	ok := &service.LoginResponse{
		User:  service.SessionIdentity{ID: "u1", Name: "Alice"},
		Token: "signed-token",
	}

	tests := []struct {
		name         string
		svc          *fakeAuthService
		expectedCode int
	}{
		{"success", &fakeAuthService{loginReturn: ok}, http.StatusOK},
		{"invalid credentials", &fakeAuthService{loginErr: common.ErrInvalidCredentials}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(tt.svc)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/v1/login", bytes.NewBufferString(`{"email":"alice@example.com","password":"secret1"}`))
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.expectedCode, rec.Body.String())
			}
			if tt.expectedCode == http.StatusOK {
				var resp map[string]json.RawMessage
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid JSON response: %v", err)
				}
				if _, ok := resp["token"]; !ok {
					t.Error("expected token in response")
				}
				var identity service.SessionIdentity
				if err := json.Unmarshal(resp["user"], &identity); err != nil {
					t.Fatalf("invalid user in response: %v", err)
				}
				if identity.ID != "u1" || identity.Name != "Alice" {
					t.Errorf("unexpected identity: %+v", identity)
				}
			}
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	svc := &fakeAuthService{}
	router := newAuthRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "s1" {
		t.Errorf("expected logout of session s1, got %v", svc.loggedOut)
	}
}
