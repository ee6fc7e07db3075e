package smartsuite

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadforge/alertrelay/internal/alert"
)

func testClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	c := New(Config{
		Endpoint:  endpoint,
		APIKey:    "test-key",
		Workspace: "ws-1",
		TableID:   "tbl-1",
	}, zap.NewNop())
	c.now = func() time.Time { return time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC) }
	return c
}

func TestSubmit_SendsRecordWithHeaders(t *testing.T) {
	t.Parallel()

	var (
		gotPath    string
		gotAuth    string
		gotAccount string
		gotPayload map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccount = r.Header.Get("ACCOUNT-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	rec := &alert.Record{
		Headline:      "Acme Expands Plant",
		URL:           "https://news.example.com/acme",
		Source:        "Metro Daily",
		Company:       "Acme",
		Address:       "Dayton, Ohio",
		EstimatedJobs: "250",
		Summary:       "Acme is expanding.",
		Date:          time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC),
	}

	ok, msg := testClient(t, srv.URL).Submit(context.Background(), rec)

	require.True(t, ok, msg)
	require.Equal(t, "/applications/tbl-1/records/", gotPath)
	require.Equal(t, "Token test-key", gotAuth)
	require.Equal(t, "ws-1", gotAccount)
	require.Equal(t, "Acme - 20250601_123045", gotPayload["title"])
	require.Equal(t, "Acme", gotPayload[fieldCompany])
	require.Equal(t, "Dayton, Ohio", gotPayload[fieldAddress])
	require.Equal(t, "250", gotPayload[fieldJobs])
	require.Equal(t, "https://news.example.com/acme", gotPayload[fieldURL])
	require.Equal(t, "2025-05-30T08:00:00Z", gotPayload[fieldDate])
	require.Equal(t, "Metro Daily", gotPayload[fieldSource])
}

func TestSubmit_PrunesEmptyFields(t *testing.T) {
	t.Parallel()

	var gotPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec := &alert.Record{
		Headline: "Acme Expands Plant Somewhere",
		URL:      "https://news.example.com/acme",
		Summary:  "Acme is expanding.",
	}

	ok, _ := testClient(t, srv.URL).Submit(context.Background(), rec)

	require.True(t, ok)
	require.NotContains(t, gotPayload, fieldAddress)
	require.NotContains(t, gotPayload, fieldCompany)
	require.NotContains(t, gotPayload, fieldJobs)
	require.NotContains(t, gotPayload, fieldSource)
	// Zero date defaults to submission time rather than being pruned.
	require.Equal(t, "2025-06-01T12:30:45Z", gotPayload[fieldDate])
	// Title falls back to the headline when no company was extracted.
	require.Equal(t, "Acme Expands Plant Somewhere - 20250601_123045", gotPayload["title"])
}

func TestSubmit_MissingAPIKey(t *testing.T) {
	t.Parallel()

	c := New(Config{Endpoint: "http://unused", TableID: "tbl"}, zap.NewNop())
	ok, msg := c.Submit(context.Background(), &alert.Record{Headline: "h"})

	require.False(t, ok)
	require.Contains(t, msg, "missing SmartSuite API key")
}

func TestSubmit_NonSuccessStatusIsReported(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"bad token"}`))
	}))
	defer srv.Close()

	ok, msg := testClient(t, srv.URL).Submit(context.Background(), &alert.Record{Headline: "h"})

	require.False(t, ok)
	require.Contains(t, msg, "SmartSuite error 401")
	require.Contains(t, msg, "bad token")
}

func TestSubmit_ClipKeepsRunesWhole(t *testing.T) {
	t.Parallel()

	var gotPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec := &alert.Record{
		Headline: "Acme Expands Plant Somewhere",
		URL:      "https://news.example.com/acme",
		// The two-byte rune straddles the 1000-byte summary cut.
		Summary: strings.Repeat("a", 999) + "é",
		Source:  strings.Repeat("b", 99) + "é",
	}

	ok, _ := testClient(t, srv.URL).Submit(context.Background(), rec)

	require.True(t, ok)
	require.Equal(t, strings.Repeat("a", 999), gotPayload[fieldSummary])
	require.Equal(t, strings.Repeat("b", 99), gotPayload[fieldSource])
	require.True(t, utf8.ValidString(gotPayload[fieldSummary]))
	require.True(t, utf8.ValidString(gotPayload[fieldSource]))
}
