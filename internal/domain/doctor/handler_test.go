package doctor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hospital/records/internal/platform/auth"
	"github.com/hospital/records/internal/platform/middleware"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(zerolog.Nop())
	e.Validator = middleware.NewValidator()
	user := uuid.New()
	api := e.Group("/api", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := auth.WithPrincipal(c.Request().Context(), auth.Principal{UserID: user})
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	NewHandler(newTestService()).RegisterRoutes(api)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateAndPartialUpdate(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/doctors", `{"name":"Dr. Strange","specialized_in":"Neurosurgery","yrs_of_experience":12}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created Doctor
	json.Unmarshal(rec.Body.Bytes(), &created)

	rec = do(e, http.MethodPut, "/api/doctors/"+created.ID.String(), `{"specialized_in":"Magic"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated map[string]any
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated["name"] != "Dr. Strange" || updated["specialized_in"] != "Magic" || updated["yrs_of_experience"] != float64(12) {
		t.Errorf("unexpected doctor after partial update: %v", updated)
	}

	rec = do(e, http.MethodGet, "/api/doctors", "")
	var list []Doctor
	json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 doctor, got %d", len(list))
	}

	rec = do(e, http.MethodDelete, "/api/doctors/"+created.ID.String(), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	rec = do(e, http.MethodGet, "/api/doctors/"+created.ID.String(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestHandler_ListPagination(t *testing.T) {
	e := newTestServer(t)
	for _, name := range []string{"A", "B", "C"} {
		do(e, http.MethodPost, "/api/doctors", `{"name":"`+name+`","specialized_in":"GP"}`)
	}

	rec := do(e, http.MethodGet, "/api/doctors?limit=2&offset=1", "")
	var list []Doctor
	json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 2 || list[0].Name != "B" {
		t.Fatalf("unexpected page %+v", list)
	}
}

func TestHandler_Errors(t *testing.T) {
	e := newTestServer(t)
	tests := []struct {
		name, method, path, body string
		status                   int
	}{
		{"invalid id", http.MethodGet, "/api/doctors/42", "", http.StatusBadRequest},
		{"unknown doctor", http.MethodGet, "/api/doctors/" + uuid.NewString(), "", http.StatusNotFound},
		{"unknown on update", http.MethodPut, "/api/doctors/" + uuid.NewString(), `{"name":"x"}`, http.StatusNotFound},
		{"missing specialty", http.MethodPost, "/api/doctors", `{"name":"x"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(e, tt.method, tt.path, tt.body); rec.Code != tt.status {
				t.Errorf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}
