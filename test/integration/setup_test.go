//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hospital/records/internal/app"
	"github.com/hospital/records/internal/config"
	"github.com/hospital/records/internal/platform/db/dbtest"
)

// testServer is the full API over a migrated PostgreSQL container.
type testServer struct {
	t   *testing.T
	url string
}

func newTestServer(t *testing.T, scope string) *testServer {
	t.Helper()
	pool := dbtest.Setup(t)

	cfg := &config.Config{
		Env:             "test",
		JWTSecret:       strings.Repeat("k", 48),
		JWTIssuer:       "hospital-api",
		AccessTokenTTL:  5 * time.Minute,
		RefreshTokenTTL: time.Hour,
		BcryptCost:      4,
		APIPrefix:       "/api",
		MappingScope:    scope,
		CORSOrigins:     []string{"*"},
		RateLimitRPS:    1000,
		RateLimitBurst:  1000,
	}
	require.NoError(t, cfg.Validate())

	srv := app.New(cfg, pool, zerolog.Nop())
	hs := httptest.NewServer(srv.Echo)
	t.Cleanup(func() {
		hs.Close()
		srv.Close()
	})
	return &testServer{t: t, url: hs.URL}
}

type response struct {
	Status int
	Body   []byte
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "body: %s", r.Body)
}

func (s *testServer) do(method, path, token string, body any) response {
	s.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.url+path, rdr)
	require.NoError(s.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	require.NoError(s.t, err)
	return response{Status: res.StatusCode, Body: raw}
}

// signup registers a fresh user and returns its token pair.
func (s *testServer) signup() (access, refresh string) {
	s.t.Helper()
	email := fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])
	res := s.do(http.MethodPost, "/api/auth/register/", "", map[string]string{
		"name": "Test User", "email": email, "password": "secret1",
	})
	require.Equal(s.t, http.StatusCreated, res.Status, string(res.Body))

	res = s.do(http.MethodPost, "/api/auth/login/", "", map[string]string{
		"email": email, "password": "secret1",
	})
	require.Equal(s.t, http.StatusOK, res.Status, string(res.Body))
	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	res.decode(s.t, &pair)
	require.NotEmpty(s.t, pair.Access)
	return pair.Access, pair.Refresh
}

func (s *testServer) createDoctor(token, name string) string {
	s.t.Helper()
	res := s.do(http.MethodPost, "/api/doctors/", token, map[string]any{
		"name": name, "specialized_in": "Cardiology", "yrs_of_experience": 7,
	})
	require.Equal(s.t, http.StatusCreated, res.Status, string(res.Body))
	var d struct {
		ID string `json:"id"`
	}
	res.decode(s.t, &d)
	return d.ID
}

func (s *testServer) createPatient(token, name string) string {
	s.t.Helper()
	res := s.do(http.MethodPost, "/api/patients/", token, map[string]any{
		"name": name, "age": 41, "disease": "hypertension",
	})
	require.Equal(s.t, http.StatusCreated, res.Status, string(res.Body))
	var p struct {
		ID string `json:"id"`
	}
	res.decode(s.t, &p)
	return p.ID
}
