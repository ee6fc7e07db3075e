// Package extract derives structured lead fields from alert headlines and
// article text, either with deterministic pattern rules or by delegating to
// a hosted model with a rules fallback.
package extract

import (
	"regexp"
	"strings"
)

// Fields is the transient output of field extraction. Any value may be empty.
type Fields struct {
	Company string
	Address string
	Jobs    string
	Summary string
}

// Company name bounds; matches outside them are discarded as noise.
const (
	companyMinLen = 3
	companyMaxLen = 50
)

var companyPatterns = []*regexp.Regexp{
	// Capitalized phrase followed by a corporate suffix.
	regexp.MustCompile(`(?i)([A-Z][A-Za-z0-9\s&\-.']+)\s*(?:Inc\.?|LLC|Corp\.?|Corporation|Company|Co\.?|Ltd\.?|Limited|Group|Holdings|Industries|Manufacturing|Logistics|Properties|Partners|Enterprises|Systems|Technologies|Solutions)\b`),
	// Capitalized phrase at the start of text, before an action verb.
	regexp.MustCompile(`(?i)^([A-Z][A-Za-z0-9\s&\-.']+?)\s+(?:Announces|Expands|Opens|Plans|Invests|Develops|Acquires|to Build|Will Build)`),
	// Quoted capitalized phrase.
	regexp.MustCompile(`(?i)["']([A-Z][A-Za-z0-9\s&\-.']+?)["']`),
}

var (
	companySuffixPhrase = regexp.MustCompile(`(?i)([A-Z][A-Za-z0-9\s&\-.']+?)\s*(?:Inc\.?|LLC|Corp\.?|Corporation|Company|Co\.?|Ltd\.?)`)
	locationStopWords   = regexp.MustCompile(`(?i)\b(?:Announces|Expands|Opens|Plans|Million|Manufacturing|Expansion|Operations|Facility)\b`)
	embeddedDigits      = regexp.MustCompile(`\b\d+\b`)
	spaceRuns           = regexp.MustCompile(`\s+`)
)

var jobPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s*(?:new\s+)?(?:jobs?|positions?|employees?|workers?)`),
	regexp.MustCompile(`(?i)(?:create|creating|add|adding|hire|hiring)\s+(?:up\s+to\s+)?(\d{1,3}(?:,\d{3})*)`),
	regexp.MustCompile(`(?i)(?:employ|employing)\s+(?:up\s+to\s+)?(\d{1,3}(?:,\d{3})*)`),
	regexp.MustCompile(`(?i)workforce\s+of\s+(\d{1,3}(?:,\d{3})*)`),
}

// Company extracts a company name from text. Patterns run in fixed order
// and the first match within the length bounds wins.
func Company(text string) string {
	for _, pattern := range companyPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		company := strings.TrimSpace(spaceRuns.ReplaceAllString(m[1], " "))
		if len(company) > companyMinLen && len(company) < companyMaxLen {
			return company
		}
	}
	return ""
}

// Location extracts "City, FullStateName" from text by scanning for a
// capitalized phrase adjacent to a US state. Company suffixes and common
// headline verbs are stripped first so they cannot pollute the city capture.
// The first state match wins; there is no scoring across candidates.
func Location(text string) string {
	text = companySuffixPhrase.ReplaceAllString(text, "")
	text = locationStopWords.ReplaceAllString(text, "")

	for _, state := range usStates {
		for _, pattern := range []*regexp.Regexp{state.abbrPattern, state.namePattern} {
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			city := embeddedDigits.ReplaceAllString(m[1], "")
			city = strings.TrimSpace(spaceRuns.ReplaceAllString(city, " "))
			if len(city) > 2 {
				return city + ", " + state.name
			}
		}
	}
	return ""
}

// Jobs extracts a job creation count, comma-formatted digits preserved as
// text. Patterns run in fixed order; no match yields an empty string.
func Jobs(text string) string {
	for _, pattern := range jobPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
