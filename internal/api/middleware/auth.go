package middleware

import (
	"blogboard/internal/common"
	"blogboard/internal/common/security"
	"blogboard/internal/domain/repository"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey    contextKey = "userID"
	SessionIDCtxKey contextKey = "sessionID"
)

// Authenticator requires a valid signed token AND a live server-side session
// record behind it. A revoked or expired session rejects the request even if
// the token signature still verifies, which is what makes logout effective.
func Authenticator(sessions repository.SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				if strings.Contains(err.Error(), "token not found") || token == nil {
					common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				} else {
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
				}
				return
			}

			if token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}
			sessionID, err := security.GetSessionIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}

			session, err := sessions.Find(r.Context(), sessionID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					common.RespondWithError(w, http.StatusUnauthorized, "Session expired or revoked")
				} else {
					common.RespondWithError(w, http.StatusInternalServerError, common.ErrInternalServer.Error())
				}
				return
			}
			if session.UserID != userID {
				common.RespondWithError(w, http.StatusUnauthorized, "Session does not match token identity")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
			ctx = context.WithValue(ctx, SessionIDCtxKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// Helper to get session ID from context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok
}
