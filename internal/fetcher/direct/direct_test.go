package direct

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const articlePage = `<html>
<head><title>Acme Expands in Dayton</title></head>
<body>
<nav>Home | News | Contact</nav>
<article>
<p>Acme Manufacturing announced a major expansion of its Dayton operations on Tuesday,
with plans for a new 400,000 square foot production facility on the east side of the city.</p>
<p>The company expects to create 250 new jobs over the next three years as production lines
come online, more than doubling the size of its current Ohio workforce.</p>
</article>
<script>trackPageView();</script>
</body></html>`

func testFetcher(t *testing.T) *Fetcher {
	t.Helper()
	return New(Config{
		Timeout:    5 * time.Second,
		MaxChars:   5000,
		RetryDelay: time.Millisecond,
	}, zap.NewNop())
}

func TestFetch_ExtractsArticleText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	got := testFetcher(t).Fetch(context.Background(), srv.URL)

	require.True(t, got.Succeeded)
	require.Equal(t, "Acme Expands in Dayton", got.Title)
	require.Contains(t, got.Text, "400,000 square foot")
	require.Contains(t, got.Text, "250 new jobs")
	require.NotContains(t, got.Text, "trackPageView")
}

func TestFetch_FallsBackToContentClass(t *testing.T) {
	t.Parallel()

	page := `<html><head><title>t</title></head><body>
	<div class="post-content">
	<p>The logistics operator signed a long term lease for a distribution center near the
	interstate, a deal brokers called the largest industrial transaction of the year.</p>
	</div></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	got := testFetcher(t).Fetch(context.Background(), srv.URL)

	require.True(t, got.Succeeded)
	require.Contains(t, got.Text, "largest industrial transaction")
}

func TestFetch_ShortPageIsNotUsable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>tiny</p></body></html>"))
	}))
	defer srv.Close()

	got := testFetcher(t).Fetch(context.Background(), srv.URL)

	require.False(t, got.Succeeded)
}

func TestFetch_ForbiddenGivesUp(t *testing.T) {
	t.Parallel()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	got := testFetcher(t).Fetch(context.Background(), srv.URL)

	require.False(t, got.Succeeded)
	require.Equal(t, 1, hits)
}

func TestFetch_UnreachableHost(t *testing.T) {
	t.Parallel()

	got := testFetcher(t).Fetch(context.Background(), "http://127.0.0.1:1/nothing")
	require.False(t, got.Succeeded)
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	s := "résumé résumé"
	cut := truncate(s, 6)
	require.LessOrEqual(t, len(cut), 6)
	require.True(t, len(cut) > 0)
}
