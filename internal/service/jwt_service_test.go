package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func accessClaims(subject, issuer string, ttl time.Duration) Claims {
	now := time.Now().UTC()
	return Claims{
		TokenType: "access",
		Scope:     "risk:assess",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func TestJWTVerifierParseAccessToken(t *testing.T) {
	v := NewJWTVerifier("secret", "credit-risk")

	token := signTestToken(t, "secret", accessClaims("svc-frontend", "credit-risk", time.Minute))
	claims, err := v.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "svc-frontend" || claims.Scope != "risk:assess" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestJWTVerifierRejects(t *testing.T) {
	v := NewJWTVerifier("secret", "credit-risk")

	refresh := accessClaims("svc", "credit-risk", time.Minute)
	refresh.TokenType = "refresh"
	noSubject := accessClaims("", "credit-risk", time.Minute)

	cases := map[string]struct {
		token string
		want  error
	}{
		"empty":         {token: " ", want: ErrJWTInvalid},
		"garbage":       {token: "not-a-token", want: ErrJWTInvalid},
		"wrong secret":  {token: signTestToken(t, "other", accessClaims("svc", "credit-risk", time.Minute)), want: ErrJWTInvalid},
		"wrong issuer":  {token: signTestToken(t, "secret", accessClaims("svc", "someone-else", time.Minute)), want: ErrJWTInvalid},
		"expired":       {token: signTestToken(t, "secret", accessClaims("svc", "credit-risk", -time.Minute)), want: ErrJWTExpired},
		"refresh token": {token: signTestToken(t, "secret", refresh), want: ErrJWTInvalid},
		"missing sub":   {token: signTestToken(t, "secret", noSubject), want: ErrJWTInvalid},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.ParseAccessToken(tc.token)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestJWTVerifierWithoutSecret(t *testing.T) {
	v := NewJWTVerifier("", "credit-risk")
	token := signTestToken(t, "secret", accessClaims("svc", "credit-risk", time.Minute))
	if _, err := v.ParseAccessToken(token); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}
