package middleware

import (
	"testing"
	"time"

	"agromandi/globals"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestValidateJWTRoundTrip(t *testing.T) {
	signed := signToken(t, &Claims{
		Username: "ali",
		UserID:   "u123",
		Role:     "farmer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateJWT("Bearer " + signed)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "u123" || claims.Role != "farmer" || claims.Username != "ali" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	signed := signToken(t, &Claims{
		UserID: "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	if _, err := ValidateJWT("Bearer " + signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "Bearer", "Bearer garbage"} {
		if _, err := ValidateJWT(tok); err == nil {
			t.Errorf("expected %q to be rejected", tok)
		}
	}
}
