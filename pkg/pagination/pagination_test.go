package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/labstack/echo/v4"
)

func paramsFor(target string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		target string
		want   Params
	}{
		{"/", Params{}},
		{"/?limit=10", Params{Limit: 10}},
		{"/?limit=10&offset=20", Params{Limit: 10, Offset: 20}},
		{"/?limit=500", Params{Limit: MaxLimit}},
		{"/?limit=-3&offset=-1", Params{}},
		{"/?limit=abc&offset=xyz", Params{}},
		{"/?offset=5", Params{Offset: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := paramsFor(tt.target); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParams_Apply(t *testing.T) {
	base := sq.Select("id").From("doctors")

	sql, _, err := Params{}.Apply(base).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if sql != "SELECT id FROM doctors" {
		t.Errorf("unexpected sql %q", sql)
	}

	sql, _, err = Params{Limit: 10, Offset: 30}.Apply(base).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if sql != "SELECT id FROM doctors LIMIT 10 OFFSET 30" {
		t.Errorf("unexpected sql %q", sql)
	}
}
