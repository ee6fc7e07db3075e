package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAIExtractor_UnavailableWithoutKey(t *testing.T) {
	t.Parallel()

	e := NewAIExtractor("", "claude-3-haiku-20240307", 300, zap.NewNop())
	require.False(t, e.Available())

	outcome := e.Extract(context.Background(), "some article text", "Some Headline")
	require.Equal(t, OutcomeUnavailable, outcome.Kind)
}

func TestParseModelReply_StrictJSON(t *testing.T) {
	t.Parallel()

	reply := `{"company": "Acme Corp", "address": "100 Main St, Dayton, Ohio", "jobs": "250", "summary": "A 400,000 sq ft facility."}`
	fields, err := parseModelReply(reply, "headline")
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", fields.Company)
	require.Equal(t, "100 Main St, Dayton, Ohio", fields.Address)
	require.Equal(t, "250", fields.Jobs)
	require.Equal(t, "A 400,000 sq ft facility.", fields.Summary)
}

func TestParseModelReply_ToleratesFencesAndProse(t *testing.T) {
	t.Parallel()

	reply := "Here is the extraction you asked for:\n```json\n{\"company\": \"Acme\", \"address\": \"\", \"jobs\": \"\", \"summary\": \"Text with {braces} inside.\"}\n```"
	fields, err := parseModelReply(reply, "headline")
	require.NoError(t, err)
	require.Equal(t, "Acme", fields.Company)
	require.Equal(t, "Text with {braces} inside.", fields.Summary)
}

func TestParseModelReply_SummaryDefaultsToHeadline(t *testing.T) {
	t.Parallel()

	fields, err := parseModelReply(`{"company": "Acme", "address": "", "jobs": "", "summary": ""}`, "Acme Expands Plant")
	require.NoError(t, err)
	require.Equal(t, "Acme Expands Plant", fields.Summary)
}

func TestParseModelReply_NoJSON(t *testing.T) {
	t.Parallel()

	_, err := parseModelReply("I could not find anything useful.", "headline")
	require.Error(t, err)
}

func TestLocateJSON(t *testing.T) {
	t.Parallel()

	require.Equal(t, `{"a": 1}`, locateJSON(`prefix {"a": 1} suffix`))
	require.Equal(t, `{"a": {"b": 2}}`, locateJSON(`{"a": {"b": 2}}`))
	require.Equal(t, `{"a": "}"}`, locateJSON(`{"a": "}"} trailing`))
	require.Empty(t, locateJSON("no braces"))
	require.Empty(t, locateJSON(`{"unbalanced": `))
}
