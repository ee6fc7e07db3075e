package alert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeHeadline_SplitsGluedWords(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"AcmeCoExpandsNewFacility":           "Acme Co Expands New Facility",
		"BigBox  Announces\n$40 MillionPlan": "Big Box Announces $40 Million Plan",
		"Widget CompanyOpens Plant":          "Widget Company Opens Plant",
		"already normal headline":            "already normal headline",
		"  padded   headline  ":              "padded headline",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeHeadline(in), "input %q", in)
	}
}

func TestNormalizeHeadline_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"AcmeCoExpandsNewFacility",
		"ACME ManufacturingAnnounces Expansion",
		"Logistics Firm to Add 250 Jobs",
	}
	for _, in := range inputs {
		once := NormalizeHeadline(in)
		require.Equal(t, once, NormalizeHeadline(once), "input %q", in)
	}
}
