package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the identity contained in a JWT.
type Claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Exp   int64  `json:"exp,omitempty"`
	Iat   int64  `json:"iat,omitempty"`
}

const (
	devSecret = "dev-secret"
	tokenTTL  = 24 * time.Hour
)

var (
	ErrMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 tokens issued by the account service.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec builds a Codec. Outside dev-like environments an empty secret is an error.
func NewCodec(secret string, devLike bool) (*Codec, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		if !devLike {
			return nil, ErrMissingSecret
		}
		secret = devSecret
	}
	return &Codec{secret: []byte(secret), now: time.Now}, nil
}

// Sign signs claims, filling iat and a 24h exp when unset.
func (c *Codec) Sign(claims Claims) (string, error) {
	if claims.Sub == "" {
		return "", errors.New("sub is required")
	}
	now := c.now().UTC()
	iat, exp := now, now.Add(tokenTTL)
	if claims.Iat != 0 {
		iat = time.Unix(claims.Iat, 0)
	}
	if claims.Exp != 0 {
		exp = time.Unix(claims.Exp, 0)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email: claims.Email,
		Name:  claims.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Sub,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	return token.SignedString(c.secret)
}

// Verify checks the signature and expiry of token and returns its claims.
// Only HS256 is accepted.
func (c *Codec) Verify(token string) (Claims, error) {
	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if parsed.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	claims := Claims{Sub: parsed.Subject, Email: parsed.Email, Name: parsed.Name}
	if parsed.ExpiresAt != nil {
		claims.Exp = parsed.ExpiresAt.Unix()
	}
	if parsed.IssuedAt != nil {
		claims.Iat = parsed.IssuedAt.Unix()
	}
	return claims, nil
}
