package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTService_SignParseAccess(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)

	token, err := svc.SignAccessToken("u1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "u1" || claims.Subject != "u1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RejectsEmptySecret(t *testing.T) {
	svc := NewJWTService("", 15*time.Minute)

	if _, err := svc.SignAccessToken("u1"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
	if _, err := svc.ParseAccessToken("abc"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("secret", time.Minute)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	token, err := svc.SignAccessToken("u1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := svc.ParseAccessToken(token); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("other", time.Minute).SignAccessToken("u1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewJWTService("secret", time.Minute).ParseAccessToken(token); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)
	now := time.Now().UTC()
	claims := Claims{
		UserID:    "u1",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "other-issuer",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.ParseAccessToken(signed); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for wrong issuer, got %v", err)
	}
}

func TestJWTService_RejectsNonAccessType(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)
	now := time.Now().UTC()
	claims := Claims{
		UserID:    "u1",
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.ParseAccessToken(signed); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}
