// Package reader delegates article retrieval to an external reader
// transformation service that returns pre-cleaned, markdown-like text.
package reader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/leadforge/alertrelay/internal/fetcher"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Config controls the reader-service client.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	MaxChars int
}

// Fetcher implements fetcher.ArticleFetcher via the reader service.
type Fetcher struct {
	cfg        Config
	httpClient *http.Client
	log        *zap.Logger
}

// New builds a Fetcher, filling in defaults for zero config values.
func New(cfg Config, log *zap.Logger) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxChars == 0 {
		// Larger than the direct strategy; the upstream already did the
		// extraction work.
		cfg.MaxChars = 8000
	}
	return &Fetcher{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// Fetch forwards the target URL to the reader service. Failures yield a
// descriptive placeholder rather than an empty string so downstream
// summarization can acknowledge the miss explicitly.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) fetcher.ArticleContent {
	endpoint := strings.TrimSuffix(f.cfg.Endpoint, "/") + "/" + rawURL

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return failed(rawURL)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.Warn("reader service call failed", zap.String("url", rawURL), zap.Error(err))
		return failed(rawURL)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode != http.StatusOK {
		f.log.Warn("reader service rejected url",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
		)
		return failed(rawURL)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return failed(rawURL)
	}

	title, text := cleanReaderText(string(raw))
	text = truncate(text, f.cfg.MaxChars)
	return fetcher.ArticleContent{
		Text:      text,
		Title:     title,
		Succeeded: len(text) > fetcher.MinContentLen,
	}
}

func failed(rawURL string) fetcher.ArticleContent {
	return fetcher.ArticleContent{
		Text: fmt.Sprintf("Unable to retrieve article content from %s.", rawURL),
	}
}

// cleanReaderText strips a leading markdown title heading if present and
// collapses excess blank lines.
func cleanReaderText(s string) (title, text string) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		line, rest, found := strings.Cut(s, "\n")
		title = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if found {
			s = strings.TrimSpace(rest)
		} else {
			s = ""
		}
	}
	return title, blankRuns.ReplaceAllString(s, "\n\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
