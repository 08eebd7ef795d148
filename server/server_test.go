package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerboy448/compose-sanitizer/redact"
)

func testServer() *Server {
	return New(redact.DefaultConfig(), 0)
}

func TestServeForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<form")
}

func postCompose(t *testing.T, compose string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"compose": {compose}}
	req := httptest.NewRequest(http.MethodPost, "/sanitize", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)
	return rec
}

func TestSanitizeRendersResult(t *testing.T) {
	rec := postCompose(t, `services:
  db:
    image: mariadb
    environment:
      MYSQL_PASSWORD: hunter2
`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "hunter2")
	assert.Contains(t, body, "**REDACTED**")
	assert.Contains(t, body, "mariadb")
}

func TestSanitizeRejectsBadInput(t *testing.T) {
	rec := postCompose(t, "- not\n- compose\n")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<form")
	assert.Contains(t, body, "does not appear to be a Docker Compose file")
}

func TestSanitizeEmptyInput(t *testing.T) {
	rec := postCompose(t, "")
	assert.Contains(t, rec.Body.String(), "No input provided")
}
