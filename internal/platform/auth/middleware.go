package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hospital/records/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

// MiddlewareConfig configures JWTMiddleware.
type MiddlewareConfig struct {
	Tokens *TokenManager
	// Skipper bypasses authentication for public routes.
	Skipper func(c echo.Context) bool
}

// JWTMiddleware requires a valid, non-revoked access token in the
// Authorization header and stores the caller's Principal on the request
// context.
func JWTMiddleware(cfg MiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(c) {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication credentials were not provided.")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims, err := cfg.Tokens.Validate(strings.TrimSpace(parts[1]), TokenTypeAccess)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Given token not valid for any token type")
			}
			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Given token not valid for any token type")
			}

			p := Principal{UserID: userID, TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}
			c.SetRequest(c.Request().WithContext(WithPrincipal(c.Request().Context(), p)))
			c.Set("user_id", userID.String())

			return next(c)
		}
	}
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated caller or an error
// wrapping domain.ErrUnauthorized.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok || p.UserID == uuid.Nil {
		return Principal{}, fmt.Errorf("no authenticated principal: %w", domain.ErrUnauthorized)
	}
	return p, nil
}

// UserIDFromContext returns the caller's user id or uuid.Nil.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	p, _ := ctx.Value(principalKey).(Principal)
	return p.UserID
}
