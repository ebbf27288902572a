package account

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospital/records/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the account endpoints. Everything except logout
// must be listed in auth.NewSkipper.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.POST("/token", h.Login)
	api.POST("/token/refresh", h.Refresh)
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	u, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, RegisterResponse{ID: u.ID, Name: u.Name, Email: u.Email})
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	pair, err := h.svc.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

func (h *Handler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	access, err := h.svc.Refresh(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RefreshResponse{Access: access})
}

func (h *Handler) Logout(c echo.Context) error {
	p, err := auth.PrincipalFromContext(c.Request().Context())
	if err != nil {
		return err
	}
	var req LogoutRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
	}
	if err := h.svc.Logout(c.Request().Context(), p, req); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
