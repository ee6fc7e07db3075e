package alert

import (
	"regexp"
	"strings"
)

// The alert template frequently glues adjacent words together when text
// nodes are concatenated. These transforms run in order; the order matters.
var (
	lowerThenUpper  = regexp.MustCompile(`([a-z])([A-Z])`)
	letterThenWord  = regexp.MustCompile(`([a-zA-Z])([A-Z][a-z])`)
	gluedKnownStems = regexp.MustCompile(`(Company|Expands|Announces|Million|Manufacturing)([A-Z])`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// NormalizeHeadline repairs spacing in concatenated headline text.
// The transform is idempotent.
func NormalizeHeadline(text string) string {
	text = lowerThenUpper.ReplaceAllString(text, "$1 $2")
	text = letterThenWord.ReplaceAllString(text, "$1 $2")
	text = gluedKnownStems.ReplaceAllString(text, "$1 $2")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
