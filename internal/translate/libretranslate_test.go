package translate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"slugbot/internal/translate"
)

func TestLibreTranslate_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/translate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "سلام دنیا", req["q"])
		require.Equal(t, "auto", req["source"])
		require.Equal(t, "en", req["target"])

		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "Hello World"})
	}))
	defer srv.Close()

	c := translate.NewLibreTranslate(srv.URL, "", 2*time.Second)

	got, err := c.Translate(context.Background(), "سلام دنیا", translate.SourceAuto, "en")
	require.NoError(t, err)
	require.Equal(t, "Hello World", got)
}

func TestLibreTranslate_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := translate.NewLibreTranslate(srv.URL, "", 2*time.Second)

	_, err := c.Translate(context.Background(), "hi", translate.SourceAuto, "en")
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestLibreTranslate_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := translate.NewLibreTranslate(srv.URL, "", time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Translate(ctx, "hi", translate.SourceAuto, "en")
	require.Error(t, err)
}

func TestLibreTranslate_CheckHealth(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`[{"code":"en"}]`))
	}))
	defer srv.Close()

	c := translate.NewLibreTranslate(srv.URL, "", 2*time.Second)
	require.NoError(t, c.CheckHealth(context.Background()))
	require.Equal(t, "/languages", path)
}
