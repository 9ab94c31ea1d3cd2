package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

const (
	ContextClaims   = "claims"
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

type TokenParser interface {
	Parse(raw string) (*access.Claims, error)
}

// UserValidator reloads the identity behind a token. Unknown or inactive
// users must return an error.
type UserValidator interface {
	Execute(ctx context.Context, userID uint) (*models.User, error)
}

var (
	errMissingHeader = httperr.ErrUnauthorized("missing_authorization_header", "Falta el encabezado Authorization.")
	errInvalidHeader = httperr.ErrUnauthorized("invalid_authorization_header", "El encabezado Authorization debe ser Bearer <token>.")
	errInvalidToken  = httperr.ErrUnauthorized("invalid_token", "Token inválido o expirado.")
	errUnknownUser   = httperr.ErrUnauthorized("invalid_user", "El usuario del token no existe o está inactivo.")
)

func AuthMiddleware(tokens TokenParser, validator UserValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, errMissingHeader)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Abort(c, errInvalidHeader)
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, errInvalidToken)
			return
		}

		user, err := validator.Execute(c.Request.Context(), claims.UserID)
		if err != nil {
			httperr.Abort(c, errUnknownUser)
			return
		}

		// role and reference follow the stored user, not the token
		claims.Email = user.Email
		claims.Role = access.Role(user.Role)
		claims.Reference = user.Reference

		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, string(claims.Role))

		c.Next()
	}
}

// ClaimsFrom returns the caller set by AuthMiddleware, or nil.
func ClaimsFrom(c *gin.Context) *access.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*access.Claims)
	return claims
}

// UserIDString is the caller id as text, empty for anonymous requests.
func UserIDString(c *gin.Context) string {
	if claims := ClaimsFrom(c); claims != nil {
		return strconv.FormatUint(uint64(claims.UserID), 10)
	}
	return ""
}
