// Package alert parses Google Alert notification emails into lead records.
package alert

import "time"

// Record is one discovered notification item. It is created by Parse,
// filled in by the extraction pipeline, and submitted once.
type Record struct {
	Headline      string
	URL           string
	Source        string
	Company       string
	Address       string
	EstimatedJobs string
	Summary       string
	Date          time.Time
}

// maxAlerts caps one email's batch to bound per-request latency.
const maxAlerts = 10

// minHeadlineLen filters placeholder and noise links.
const minHeadlineLen = 10
