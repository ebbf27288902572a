// Package app wires configuration, storage and HTTP handlers into a
// ready-to-serve echo instance.
package app

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/hospital/records/internal/config"
	"github.com/hospital/records/internal/domain/account"
	"github.com/hospital/records/internal/domain/doctor"
	"github.com/hospital/records/internal/domain/mapping"
	"github.com/hospital/records/internal/domain/patient"
	"github.com/hospital/records/internal/platform/auth"
	"github.com/hospital/records/internal/platform/db"
	"github.com/hospital/records/internal/platform/middleware"
)

// maxBodySize bounds every request body under the API prefix.
const maxBodySize = "64K"

// Server is the assembled HTTP application.
type Server struct {
	Echo    *echo.Echo
	Tokens  *auth.TokenManager
	revoked *auth.TokenRevocationStore
}

// New builds the echo server. The caller owns pool and must call Close
// when done.
func New(cfg *config.Config, pool *pgxpool.Pool, logger zerolog.Logger) *Server {
	revoked := auth.NewTokenRevocationStore(5 * time.Minute)
	tokens := auth.NewTokenManager(auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}, revoked)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)
	e.Validator = middleware.NewValidator()

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.RequestIDHeader},
	}))
	e.Use(auth.JWTMiddleware(auth.MiddlewareConfig{
		Tokens:  tokens,
		Skipper: auth.NewSkipper(cfg.APIPrefix),
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	api := e.Group(cfg.APIPrefix)
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))
	api.Use(echomw.BodyLimit(maxBodySize))

	users := account.NewUserRepoPG(pool)
	patients := patient.NewRepoPG(pool)
	doctors := doctor.NewRepoPG(pool)
	mappings := mapping.NewRepoPG(pool)

	account.NewHandler(account.NewService(users, tokens, cfg.BcryptCost, logger)).RegisterRoutes(api)
	patient.NewHandler(patient.NewService(patients)).RegisterRoutes(api)
	doctor.NewHandler(doctor.NewService(doctors, logger)).RegisterRoutes(api)
	mapping.NewHandler(mapping.NewService(
		mappings, doctors, patients, db.NewTxManager(pool), mapping.Scope(cfg.MappingScope), logger,
	)).RegisterRoutes(api)

	return &Server{Echo: e, Tokens: tokens, revoked: revoked}
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.revoked.Close()
}
