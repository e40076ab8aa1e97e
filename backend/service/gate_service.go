package service

import (
	"errors"
	"time"

	"campus-board/backend/common"

	"github.com/golang-jwt/jwt/v5"
)

// Gate scopes. Admin implies hub.
const (
	GateScopeHub   = "hub"
	GateScopeAdmin = "admin"
)

// GateClaims is the signed session claim a successful gate unlock produces.
// Replaces the unbounded "unlocked" boolean of the classic shared-secret gate
// with something that actually expires.
type GateClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

var ErrInvalidGateToken = errors.New("invalid gate token")

// GenerateGateToken issues a signed gate token for the given scope, valid for
// common.GateTokenDuration.
func GenerateGateToken(scope string) (string, error) {
	if scope != GateScopeHub && scope != GateScopeAdmin {
		return "", errors.New("unknown gate scope: " + scope)
	}
	now := time.Now()
	claims := GateClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(common.GateTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "campus-board",
			Subject:   scope,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(common.GateSecret))
}

// ValidateGateToken parses and verifies a gate token. Expired tokens fail
// exactly like missing ones.
func ValidateGateToken(tokenString string) (*GateClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidGateToken
		}
		return []byte(common.GateSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*GateClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidGateToken
	}
	return claims, nil
}

// ScopeSatisfies reports whether a token scope grants access to a required
// scope. Admin passes every gate.
func ScopeSatisfies(tokenScope string, required string) bool {
	if tokenScope == GateScopeAdmin {
		return true
	}
	return tokenScope == required
}
