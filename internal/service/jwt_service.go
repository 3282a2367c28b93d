package service

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier valida access tokens HS256 emitidos por el proveedor de
// identidad. Este servicio no emite ni guarda tokens.
type JWTVerifier struct {
	secret []byte
	issuer string
}

type Claims struct {
	Scope     string `json:"scope,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

func (v *JWTVerifier) ParseAccessToken(accessToken string) (Claims, error) {
	if len(v.secret) == 0 {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(accessToken) == "" {
		return Claims{}, ErrJWTInvalid
	}
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(accessToken, &claims, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	if claims.TokenType != "access" {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Claims{}, ErrJWTInvalid
	}
	if v.issuer != "" && strings.TrimSpace(claims.Issuer) != v.issuer {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}
