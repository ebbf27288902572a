package pagination

import (
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/labstack/echo/v4"
)

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// Params holds optional limit/offset query parameters. A zero Limit means
// the client did not ask for a page and every row is returned.
type Params struct {
	Limit  int
	Offset int
}

// FromContext reads limit and offset from the query string. Missing,
// malformed or negative values are ignored.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// Apply adds LIMIT and OFFSET to a select when they are set.
func (p Params) Apply(b sq.SelectBuilder) sq.SelectBuilder {
	if p.Limit > 0 {
		b = b.Limit(uint64(p.Limit))
	}
	if p.Offset > 0 {
		b = b.Offset(uint64(p.Offset))
	}
	return b
}
