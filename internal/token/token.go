package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/turnera-api/internal/access"
)

var ErrInvalidToken = errors.New("invalid token")

// Issuer signs and verifies HS256 bearer tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (i *Issuer) Issue(c access.Claims) (string, error) {
	now := i.now()

	claims := jwt.MapClaims{
		"sub":   c.UserID,
		"email": c.Email,
		"rol":   string(c.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(i.ttl).Unix(),
	}
	if c.Reference != "" {
		claims["idReferencia"] = c.Reference
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

func (i *Issuer) Parse(raw string) (*access.Claims, error) {
	t, err := jwt.Parse(
		raw,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !t.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := mc["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	rol, _ := mc["rol"].(string)
	role, ok := access.ParseRole(rol)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, rol)
	}

	email, _ := mc["email"].(string)
	ref, _ := mc["idReferencia"].(string)

	return &access.Claims{
		UserID:    uint(sub),
		Email:     email,
		Role:      role,
		Reference: ref,
	}, nil
}
