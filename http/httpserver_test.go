package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contestadm/backend/auth"
	"github.com/contestadm/backend/contestsrvc"
	adminhttp "github.com/contestadm/backend/http"
	"github.com/contestadm/backend/testcasesrvc"
)

var jwtKey = []byte("test-key")

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	repo := contestsrvc.NewInMemContestRepo()
	repo.AddContest(contestsrvc.Contest{
		ID:        1,
		Title:     "Spring Open",
		StartTime: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	contestSrvc := contestsrvc.NewContestSrvc(repo, repo, repo, repo)
	testcaseSrvc := testcasesrvc.NewTestcaseSrvc(
		testcasesrvc.NewInMemTestcaseRepo(),
		testcasesrvc.NewInMemObjectStorage())

	server := adminhttp.NewHttpServer(contestSrvc, testcaseSrvc, jwtKey, nil)
	return server.Handler()
}

func TestJwtMiddleware(t *testing.T) {
	handler := newHandler(t)

	t.Run("request without token passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/contests/1/standings", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid bearer token is accepted", func(t *testing.T) {
		token, err := auth.GenerateJWT("admin", 7, []string{"admin"}, jwtKey)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/contests/1/standings", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/contests/1/standings", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		token, err := auth.GenerateJWT("admin", 7, nil, []byte("other-key"))
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/contests/1/standings", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTestcaseEndpointsWireFormat(t *testing.T) {
	handler := newHandler(t)

	putBody := `{"testcases":[
		{"input":"abcdef","output":"1","isHidden":true,"scoreWeight":100}
	]}`
	req := httptest.NewRequest("PUT", "/problems/42/testcases", strings.NewReader(putBody))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	stored := rec.Body.String()
	assert.Contains(t, stored, `"problemId":42`)
	assert.Contains(t, stored, `"isHidden":true`)
	assert.Contains(t, stored, `"scoreWeight":100`)
	assert.Contains(t, stored, `"numerator":100`)
	assert.NotContains(t, stored, `"IsHidden"`)

	t.Run("preview keys and truncation", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/problems/42/testcases?readBytes=3", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		views := rec.Body.String()
		assert.Contains(t, views, `"input":"abc"`)
		assert.Contains(t, views, `"isTruncated":true`)
		assert.Contains(t, views, `"order":1`)
	})
}
