package extract

import (
	"regexp"
	"strings"
)

type state struct {
	abbr        string
	name        string
	abbrPattern *regexp.Regexp
	namePattern *regexp.Regexp
}

// cityPhrase captures a run of capitalized words immediately preceding a
// state reference, optionally comma-separated from it.
const cityPhrase = `((?:[A-Z][a-zA-Z]+\s+)*[A-Z][a-zA-Z]+),?\s*`

// usStates is scanned in fixed order; the first match wins. Abbreviations
// match case-sensitively so that prose words like "in" or "or" cannot pass
// for IN or OR; full names match case-insensitively.
var usStates = buildStates()

func buildStates() []state {
	defs := []struct{ abbr, name string }{
		{"AL", "Alabama"}, {"AK", "Alaska"}, {"AZ", "Arizona"}, {"AR", "Arkansas"},
		{"CA", "California"}, {"CO", "Colorado"}, {"CT", "Connecticut"}, {"DE", "Delaware"},
		{"FL", "Florida"}, {"GA", "Georgia"}, {"HI", "Hawaii"}, {"ID", "Idaho"},
		{"IL", "Illinois"}, {"IN", "Indiana"}, {"IA", "Iowa"}, {"KS", "Kansas"},
		{"KY", "Kentucky"}, {"LA", "Louisiana"}, {"ME", "Maine"}, {"MD", "Maryland"},
		{"MA", "Massachusetts"}, {"MI", "Michigan"}, {"MN", "Minnesota"}, {"MS", "Mississippi"},
		{"MO", "Missouri"}, {"MT", "Montana"}, {"NE", "Nebraska"}, {"NV", "Nevada"},
		{"NH", "New Hampshire"}, {"NJ", "New Jersey"}, {"NM", "New Mexico"}, {"NY", "New York"},
		{"NC", "North Carolina"}, {"ND", "North Dakota"}, {"OH", "Ohio"}, {"OK", "Oklahoma"},
		{"OR", "Oregon"}, {"PA", "Pennsylvania"}, {"RI", "Rhode Island"}, {"SC", "South Carolina"},
		{"SD", "South Dakota"}, {"TN", "Tennessee"}, {"TX", "Texas"}, {"UT", "Utah"},
		{"VT", "Vermont"}, {"VA", "Virginia"}, {"WA", "Washington"}, {"WV", "West Virginia"},
		{"WI", "Wisconsin"}, {"WY", "Wyoming"},
	}

	states := make([]state, 0, len(defs))
	for _, d := range defs {
		namePat := strings.ReplaceAll(d.name, " ", `\s+`)
		states = append(states, state{
			abbr:        d.abbr,
			name:        d.name,
			abbrPattern: regexp.MustCompile(cityPhrase + d.abbr + `\b`),
			namePattern: regexp.MustCompile(cityPhrase + `(?i:` + namePat + `)\b`),
		})
	}
	return states
}
