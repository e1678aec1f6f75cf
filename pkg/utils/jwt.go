package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateRefreshToken creates a refresh token. Refresh tokens are also stored
// server-side (refresh_tokens table) so they can be revoked before expiry.
func GenerateRefreshToken(coachID uint, secret string, days int) (string, error) {
	claims := jwt.MapClaims{
		"coach_id": coachID,
		"exp":      time.Now().Add(time.Duration(days) * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyRefreshToken parses and validates a refresh token, returning the coach id.
func VerifyRefreshToken(tokenStr, secret string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid refresh token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	id, ok := claims["coach_id"].(float64)
	if !ok || id <= 0 {
		return 0, errors.New("coach_id claim is missing")
	}
	return uint(id), nil
}
