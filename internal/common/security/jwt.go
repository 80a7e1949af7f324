package security

import (
	"blogboard/internal/platform/config"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken issues a signed token bound to a server-side session record
// via the sid claim.
func GenerateToken(userID, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"sid":     sessionID,
		"exp":     time.Now().Add(config.AppConfig.JWTExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetSessionIDFromClaims(claims map[string]interface{}) (string, error) {
	sid, ok := claims["sid"].(string)
	if !ok {
		return "", errors.New("sid claim is missing or not a string")
	}
	return sid, nil
}
