// Package smartsuite submits finalized lead records to the SmartSuite
// records API.
package smartsuite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/leadforge/alertrelay/internal/alert"
)

// Field identifiers are a contract with the external table schema, not
// derived from anything.
const (
	fieldCompany = "sc373e6626"
	fieldAddress = "s46434c9b6"
	fieldSummary = "s492934214"
	fieldJobs    = "sa8ca8dbcb"
	fieldURL     = "s8e6e9fe79"
	fieldDate    = "s8d5616e3e"
	fieldSource  = "s6e74e1ce5"
)

const (
	titleMaxLen   = 80
	summaryMaxLen = 1000
	sourceMaxLen  = 100
)

// Config holds credentials and identifiers for the record store.
type Config struct {
	Endpoint  string
	APIKey    string
	Workspace string
	TableID   string
}

// Client submits records to one SmartSuite table.
type Client struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time
	log        *zap.Logger
}

// New builds a Client.
func New(cfg Config, log *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
		log:        log,
	}
}

// Submit maps the record onto the table's field schema and creates it.
// The bool reports success; the string is a human-readable diagnostic.
// Submission failures are reported, never raised.
func (c *Client) Submit(ctx context.Context, rec *alert.Record) (bool, string) {
	if c.cfg.APIKey == "" {
		return false, "missing SmartSuite API key"
	}

	payload := c.buildPayload(rec)
	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Sprintf("encode payload: %v", err)
	}

	url := fmt.Sprintf("%s/applications/%s/records/", c.cfg.Endpoint, c.cfg.TableID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Sprintf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Token "+c.cfg.APIKey)
	req.Header.Set("ACCOUNT-ID", c.cfg.Workspace)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Sprintf("SmartSuite request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return true, "successfully sent to SmartSuite"
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
	msg := fmt.Sprintf("SmartSuite error %d: %s", resp.StatusCode, detail)
	c.log.Warn("record submission rejected", zap.Int("status", resp.StatusCode))
	return false, msg
}

// buildPayload assembles the field map, pruning empty values: the store
// treats absent and empty keys distinctly.
func (c *Client) buildPayload(rec *alert.Record) map[string]string {
	date := rec.Date
	if date.IsZero() {
		date = c.now()
	}

	payload := map[string]string{
		"title":      c.uniqueTitle(rec),
		fieldCompany: rec.Company,
		fieldAddress: rec.Address,
		fieldSummary: clip(rec.Summary, summaryMaxLen),
		fieldJobs:    rec.EstimatedJobs,
		fieldURL:     rec.URL,
		fieldDate:    date.Format(time.RFC3339),
		fieldSource:  clip(rec.Source, sourceMaxLen),
	}
	for k, v := range payload {
		if v == "" {
			delete(payload, k)
		}
	}
	return payload
}

// uniqueTitle combines the company or headline with a timestamp suffix so
// repeated submissions of the same headline stay distinguishable.
func (c *Client) uniqueTitle(rec *alert.Record) string {
	base := rec.Company
	if base == "" {
		base = rec.Headline
	}
	if base == "" {
		base = "New Lead"
	}
	return clip(base, titleMaxLen) + " - " + c.now().Format("20060102_150405")
}

// clip shortens s to at most n bytes without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
