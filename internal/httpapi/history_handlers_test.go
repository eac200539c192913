package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"slugbot/internal/httpapi"
	"slugbot/internal/repo"
	"slugbot/internal/service"
)

func seedSessions(t *testing.T, n int) *service.SessionService {
	t.Helper()

	t0 := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	sessions := service.NewSessionService(repo.NewMemoryStore(), func() time.Time {
		t0 = t0.Add(time.Second)
		return t0
	})

	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, err := sessions.AppendHistory(ctx, 1, fmt.Sprintf("original %d", i), fmt.Sprintf("slug-%d", i))
		require.NoError(t, err)
	}
	return sessions
}

func doGet(t *testing.T, s *httpapi.Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestListHistory_NewestFirst(t *testing.T) {
	s := httpapi.New(httpapi.Deps{History: seedSessions(t, 3)})

	rec := doGet(t, s, "/v1/sessions/1/history")
	require.Equal(t, http.StatusOK, rec.Code)

	var res httpapi.ListHistoryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Items, 3)
	require.Equal(t, "slug-2", res.Items[0].Slug)
	require.Empty(t, res.NextCursor)
}

func TestListHistory_Paginates(t *testing.T) {
	s := httpapi.New(httpapi.Deps{History: seedSessions(t, 5)})

	rec := doGet(t, s, "/v1/sessions/1/history?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var page1 httpapi.ListHistoryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page1))
	require.Len(t, page1.Items, 2)
	require.NotEmpty(t, page1.NextCursor)

	rec = doGet(t, s, "/v1/sessions/1/history?limit=2&cursor="+page1.NextCursor)
	require.Equal(t, http.StatusOK, rec.Code)

	var page2 httpapi.ListHistoryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page2))
	require.Len(t, page2.Items, 2)
	require.Equal(t, "slug-2", page2.Items[0].Slug)
}

func TestListHistory_UnknownUserIs404(t *testing.T) {
	s := httpapi.New(httpapi.Deps{History: seedSessions(t, 1)})

	rec := doGet(t, s, "/v1/sessions/999/history")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListHistory_BadInput(t *testing.T) {
	s := httpapi.New(httpapi.Deps{History: seedSessions(t, 1)})

	require.Equal(t, http.StatusBadRequest, doGet(t, s, "/v1/sessions/abc/history").Code)
	require.Equal(t, http.StatusBadRequest, doGet(t, s, "/v1/sessions/1/history?limit=many").Code)
	require.Equal(t, http.StatusBadRequest, doGet(t, s, "/v1/sessions/1/history?cursor=!!!").Code)
}

type flakyTranslator struct{ err error }

func (f *flakyTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	return "", f.err
}

func (f *flakyTranslator) CheckHealth(ctx context.Context) error { return f.err }

func TestHealthz(t *testing.T) {
	s := httpapi.New(httpapi.Deps{History: seedSessions(t, 0), Translator: &flakyTranslator{}})
	require.Equal(t, http.StatusOK, doGet(t, s, "/healthz").Code)

	s = httpapi.New(httpapi.Deps{
		History:    seedSessions(t, 0),
		Translator: &flakyTranslator{err: errors.New("down")},
	})
	require.Equal(t, http.StatusServiceUnavailable, doGet(t, s, "/healthz").Code)
}

func TestMetricsExposed(t *testing.T) {
	s := httpapi.New(httpapi.Deps{History: seedSessions(t, 0)})

	rec := doGet(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "slugbot_translations_total")
}