package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewSkipper(t *testing.T) {
	skip := NewSkipper("/api/")
	tests := []struct {
		path string
		want bool
	}{
		{"/health", true},
		{"/health/db", true},
		{"/api/auth/register", true},
		{"/api/auth/login", true},
		{"/api/token", true},
		{"/api/token/refresh", true},
		{"/api/token/refresh/", true},
		{"/api/auth/logout", false},
		{"/api/mapping", false},
		{"/api/patients/:id", false},
		{"/auth/login", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, tt.path, nil), httptest.NewRecorder())
			c.SetPath(tt.path)
			if got := skip(c); got != tt.want {
				t.Errorf("skip(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
