package utils

import (
	"time"

	"rentbot-backend/config"

	"github.com/golang-jwt/jwt/v5"
)

// jwtConfig is set once at startup via InitJWT; the defaults only cover
// code paths that run before main wires the real configuration (tests).
var jwtConfig = config.JWTConfig{
	Secret:          "rentbotsecret",
	ExpirationHours: 24,
}

// InitJWT hands the token helpers their configuration. Called from main
// so the secret has a single source of truth.
func InitJWT(cfg config.JWTConfig) {
	jwtConfig = cfg
}

// ApiSecret returns the JWT signing key.
func ApiSecret() []byte {
	return []byte(jwtConfig.Secret)
}

// GenerateToken mints a signed token carrying the user id and role.
func GenerateToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Duration(jwtConfig.ExpirationHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ApiSecret())
}
