package middleware

import (
	"blogboard/internal/common"
	"blogboard/internal/common/security"
	"blogboard/internal/domain/model"
	"blogboard/internal/platform/config"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type fakeSessionRepo struct {
	sessions map[string]*model.Session
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *model.Session, ttl time.Duration) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) Find(ctx context.Context, id string) (*model.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func newProtectedRouter(t *testing.T, sessions *fakeSessionRepo) http.Handler {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(security.TokenAuth))
	r.Group(func(protected chi.Router) {
		protected.Use(Authenticator(sessions))
		protected.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			userID, _ := GetUserIDFromContext(r.Context())
			w.Write([]byte(userID))
		})
	})
	return r
}

func TestAuthenticator(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[string]*model.Session{
		"s1": {ID: "s1", UserID: "u1", UserName: "Alice", IssuedAt: time.Now()},
		"s2": {ID: "s2", UserID: "someone-else", IssuedAt: time.Now()},
	}}
	router := newProtectedRouter(t, sessions)

	validToken, err := security.GenerateToken("u1", "s1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	revokedToken, err := security.GenerateToken("u1", "gone")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	mismatchToken, err := security.GenerateToken("u1", "s2")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name         string
		authHeader   string
		expectedCode int
		expectedBody string
	}{
		{"no token", "", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized, ""},
		{"valid token with live session", "Bearer " + validToken, http.StatusOK, "u1"},
		{"revoked session", "Bearer " + revokedToken, http.StatusUnauthorized, ""},
		{"session owned by someone else", "Bearer " + mismatchToken, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.expectedCode, rec.Body.String())
			}
			if tt.expectedBody != "" && rec.Body.String() != tt.expectedBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[string]*model.Session{}}
	router := newProtectedRouter(t, sessions)

	// Issue a token that is already expired.
	config.AppConfig.JWTExp = -time.Minute
	expiredToken, err := security.GenerateToken("u1", "s1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	config.AppConfig.JWTExp = time.Hour

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+expiredToken)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
