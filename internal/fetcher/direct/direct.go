// Package direct retrieves article pages straight from the publisher and
// extracts readable text with markup heuristics.
package direct

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/leadforge/alertrelay/internal/fetcher"
)

// browserAgents is rotated across attempts to reduce anti-bot rejection.
var browserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
}

// minParagraphLen filters nav fragments out of the all-paragraphs strategy.
const minParagraphLen = 50

// Config controls fetch behavior.
type Config struct {
	Timeout    time.Duration
	MaxChars   int
	RetryDelay time.Duration
}

// Fetcher implements fetcher.ArticleFetcher with direct HTTP retrieval.
type Fetcher struct {
	cfg Config
	log *zap.Logger
}

// New builds a Fetcher, filling in defaults for zero config values.
func New(cfg Config, log *zap.Logger) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxChars == 0 {
		cfg.MaxChars = 5000
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	return &Fetcher{cfg: cfg, log: log}
}

// Fetch retrieves the page, trying each browser profile in turn until one
// yields enough readable text. A 403 waits briefly and gives up; every
// other failure just moves to the next profile. The result is always a
// value, never an error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) fetcher.ArticleContent {
	for _, agent := range browserAgents {
		status, body, err := f.get(ctx, rawURL, agent)
		if err != nil {
			f.log.Warn("article fetch failed", zap.String("url", rawURL), zap.Error(err))
			return fetcher.ArticleContent{}
		}
		if status == 403 {
			f.log.Warn("access forbidden", zap.String("url", rawURL))
			time.Sleep(f.cfg.RetryDelay)
			return fetcher.ArticleContent{}
		}
		if status != 200 {
			continue
		}
		title, text := extractContent(body, f.cfg.MaxChars)
		if len(text) > fetcher.MinContentLen {
			return fetcher.ArticleContent{Text: text, Title: title, Succeeded: true}
		}
	}
	return fetcher.ArticleContent{}
}

// get runs one GET through a fresh collector. The returned status is the
// HTTP status when a response arrived, even on non-2xx; err covers
// transport-level failures only.
func (f *Fetcher) get(ctx context.Context, rawURL, userAgent string) (int, []byte, error) {
	c := colly.NewCollector(colly.IgnoreRobotsTxt())
	c.UserAgent = userAgent
	c.SetRequestTimeout(f.cfg.Timeout)

	var (
		status int
		body   []byte
	)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.5")
		r.Headers.Set("Upgrade-Insecure-Requests", "1")
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- c.Visit(rawURL)
	}()

	select {
	case <-ctx.Done():
		return 0, nil, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil && status == 0 {
			return 0, nil, fmt.Errorf("visit %s: %w", rawURL, err)
		}
	}
	return status, body, nil
}

// extractContent pulls readable text out of an HTML page, trying the most
// specific container first and degrading to the whole document.
func extractContent(body []byte, maxChars int) (title, text string) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", ""
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script,style,noscript").Remove()

	content := blockText(doc.Find("article").First())
	if content == "" {
		content = regionText(doc)
	}
	if content == "" {
		content = paragraphText(doc)
	}
	if content == "" {
		content = collapseWhitespace(doc.Text())
	}
	return title, truncate(content, maxChars)
}

// regionText scans common content container selectors in priority order.
func regionText(doc *goquery.Document) string {
	selectors := []string{
		`[class*="content"]`,
		`[class*="article"]`,
		`[id*="content"]`,
		`[id*="article"]`,
		"main",
	}
	for _, sel := range selectors {
		if content := blockText(doc.Find(sel).First()); content != "" {
			return content
		}
	}
	return ""
}

// blockText joins the trimmed text of paragraph and block children.
func blockText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var parts []string
	sel.Find("p,div").Each(func(_ int, el *goquery.Selection) {
		if txt := collapseWhitespace(el.Text()); txt != "" {
			parts = append(parts, txt)
		}
	})
	return strings.Join(parts, " ")
}

// paragraphText joins all long-enough paragraphs when the page has more
// than a handful of them.
func paragraphText(doc *goquery.Document) string {
	paragraphs := doc.Find("p")
	if paragraphs.Length() <= 3 {
		return ""
	}
	var parts []string
	paragraphs.Each(func(_ int, el *goquery.Selection) {
		if txt := collapseWhitespace(el.Text()); len(txt) > minParagraphLen {
			parts = append(parts, txt)
		}
	})
	return strings.Join(parts, " ")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
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
