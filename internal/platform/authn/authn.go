// Package authn verifies bearer tokens issued by the hosted auth provider and
// enforces the admin policy on mutating routes.
package authn

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tjkspices_backend/internal/api"
)

// ContextEmail is the gin context key holding the authenticated email claim.
const ContextEmail = "authEmail"

// Config holds token verification and authorization policy settings.
type Config struct {
	// JWTSecret is the HS256 signing secret shared with the auth provider.
	JWTSecret string
	// AdminEmails is the set of identities allowed to mutate prices.
	// Policy is a configurable set rather than a single hardcoded address.
	AdminEmails []string
}

// LoadConfig loads authn configuration from environment variables.
// ADMIN_EMAILS is comma-separated; entries are trimmed and lowercased.
func LoadConfig() Config {
	var admins []string
	for _, e := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			admins = append(admins, e)
		}
	}
	return Config{
		JWTSecret:   os.Getenv("AUTH_JWT_SECRET"),
		AdminEmails: admins,
	}
}

// IsAdmin reports whether the given email is in the configured admin set.
func (c Config) IsAdmin(email string) bool {
	email = strings.ToLower(email)
	for _, a := range c.AdminEmails {
		if a == email {
			return true
		}
	}
	return false
}

// AuthRequired returns a gin middleware that validates the bearer token and
// stores the email claim in the request context. No data is touched before
// this check runs.
func AuthRequired(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if cfg.JWTSecret == "" {
			// Server misconfiguration, not a caller error
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server misconfigured"})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Only HMAC is accepted; reject alg-substitution tokens
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}
		email, _ := claims["email"].(string)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}

		c.Set(ContextEmail, email)
		c.Next()
	}
}

// AdminOnly returns a gin middleware that rejects authenticated callers whose
// email is not in the admin set. Must run after AuthRequired.
func AdminOnly(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := EmailFromContext(c)
		if email == "" || !cfg.IsAdmin(email) {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "not authorized"})
			return
		}
		c.Next()
	}
}

// EmailFromContext returns the authenticated email set by AuthRequired, or
// the empty string.
func EmailFromContext(c *gin.Context) string {
	return c.GetString(ContextEmail)
}
