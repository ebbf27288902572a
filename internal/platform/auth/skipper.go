package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// publicRoutes are route paths, relative to the API prefix, that are
// reachable without a bearer token.
var publicRoutes = []string{
	"/auth/register",
	"/auth/login",
	"/token",
	"/token/refresh",
}

// infraRoutes are mounted at the server root.
var infraRoutes = []string{
	"/health",
	"/health/db",
}

// NewSkipper returns a skipper for JWTMiddleware that lets the public
// account routes under prefix and the health checks through.
func NewSkipper(prefix string) func(c echo.Context) bool {
	prefix = strings.TrimRight(prefix, "/")
	public := make(map[string]bool, len(publicRoutes)+len(infraRoutes))
	for _, p := range publicRoutes {
		public[prefix+p] = true
	}
	for _, p := range infraRoutes {
		public[p] = true
	}
	return func(c echo.Context) bool {
		return public[strings.TrimRight(c.Path(), "/")]
	}
}
