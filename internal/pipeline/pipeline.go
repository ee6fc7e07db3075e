// Package pipeline sequences extraction, enrichment, and submission for
// one webhook request's batch of alerts.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/leadforge/alertrelay/internal/alert"
	"github.com/leadforge/alertrelay/internal/extract"
	"github.com/leadforge/alertrelay/internal/fetcher"
	"github.com/leadforge/alertrelay/internal/metrics"
)

// FieldExtractor is the optional model-backed extraction path.
type FieldExtractor interface {
	Available() bool
	Extract(ctx context.Context, content, headline string) extract.Outcome
}

// Submitter sends one finalized record to the external store.
type Submitter interface {
	Submit(ctx context.Context, rec *alert.Record) (bool, string)
}

// Result is the per-alert entry of the webhook response.
type Result struct {
	Headline string `json:"headline"`
	Company  string `json:"company"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
}

// Pipeline processes alert batches strictly sequentially. Each alert is
// isolated: a fetch or extraction failure degrades that alert to fallback
// behavior and never aborts the batch.
type Pipeline struct {
	fetcher   fetcher.ArticleFetcher
	ai        FieldExtractor
	submitter Submitter
	strategy  string
	log       *zap.Logger
}

// New builds a Pipeline. ai may be nil when no model is configured.
func New(f fetcher.ArticleFetcher, ai FieldExtractor, sub Submitter, strategy string, log *zap.Logger) *Pipeline {
	metrics.Init()
	return &Pipeline{
		fetcher:   f,
		ai:        ai,
		submitter: sub,
		strategy:  strategy,
		log:       log,
	}
}

// Process enriches and submits every record in the batch, in order, and
// returns one Result per record.
func (p *Pipeline) Process(ctx context.Context, records []*alert.Record, date time.Time) []Result {
	results := make([]Result, 0, len(records))
	for i, rec := range records {
		p.log.Info("processing alert",
			zap.Int("index", i+1),
			zap.Int("total", len(records)),
			zap.String("headline", rec.Headline),
			zap.String("url", rec.URL),
		)

		p.enrich(ctx, rec)
		rec.Date = date

		ok, msg := p.submitter.Submit(ctx, rec)
		metrics.ObserveSubmission(ok)
		if !ok {
			p.log.Warn("submission failed", zap.String("headline", rec.Headline), zap.String("reason", msg))
		}

		results = append(results, Result{
			Headline: rec.Headline,
			Company:  rec.Company,
			Success:  ok,
			Message:  msg,
		})
	}
	return results
}

// enrich fills the record's company, address, jobs, and summary fields.
func (p *Pipeline) enrich(ctx context.Context, rec *alert.Record) {
	if rec.URL == "" {
		rec.Summary = rec.Headline
		return
	}

	start := time.Now()
	content := p.fetcher.Fetch(ctx, rec.URL)
	metrics.ObserveFetch(p.strategy, content.Succeeded, time.Since(start))

	if content.Text != "" && p.ai != nil && p.ai.Available() {
		outcome := p.ai.Extract(ctx, content.Text, rec.Headline)
		switch outcome.Kind {
		case extract.OutcomeSucceeded:
			metrics.ObserveAIExtraction("succeeded")
			rec.Company = outcome.Fields.Company
			rec.Address = outcome.Fields.Address
			rec.EstimatedJobs = outcome.Fields.Jobs
			rec.Summary = outcome.Fields.Summary
			return
		case extract.OutcomeFailed:
			metrics.ObserveAIExtraction("failed")
			p.log.Warn("model extraction failed, using pattern rules",
				zap.String("headline", rec.Headline),
				zap.String("reason", outcome.Reason),
			)
		case extract.OutcomeUnavailable:
			metrics.ObserveAIExtraction("unavailable")
		}
	}

	p.applyRules(rec)
}

// applyRules runs the deterministic extractors over the headline and
// synthesizes a summary from whatever they found.
func (p *Pipeline) applyRules(rec *alert.Record) {
	rec.Company = extract.Company(rec.Headline)
	rec.Address = extract.Location(rec.Headline)
	rec.EstimatedJobs = extract.Jobs(rec.Headline)
	rec.Summary = extract.Summarize(rec.Headline, rec.Company, rec.Address)
}
