package mapping

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hospital/records/internal/platform/auth"
	"github.com/hospital/records/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the mapping endpoints. GET /mapping/:id takes a
// patient id while DELETE /mapping/:id takes a mapping id.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/mapping", h.ListAll)
	api.POST("/mapping", h.Create)
	api.GET("/mapping/:id", h.ListForPatient)
	api.DELETE("/mapping/:id", h.Delete)
	api.DELETE("/mapping/delete/:id", h.Delete)
}

func (h *Handler) ListAll(c echo.Context) error {
	p, err := auth.PrincipalFromContext(c.Request().Context())
	if err != nil {
		return err
	}
	items, err := h.svc.ListAllMappings(c.Request().Context(), p.UserID, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Create(c echo.Context) error {
	p, err := auth.PrincipalFromContext(c.Request().Context())
	if err != nil {
		return err
	}
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	m, err := h.svc.CreateMapping(c.Request().Context(), p.UserID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) ListForPatient(c echo.Context) error {
	p, err := auth.PrincipalFromContext(c.Request().Context())
	if err != nil {
		return err
	}
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	items, err := h.svc.ListMappingsForPatient(c.Request().Context(), p.UserID, patientID, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Delete(c echo.Context) error {
	p, err := auth.PrincipalFromContext(c.Request().Context())
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid mapping id")
	}
	if err := h.svc.DeleteMapping(c.Request().Context(), p.UserID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
