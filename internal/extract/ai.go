package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// promptContentLimit bounds how much article text goes into the prompt.
const promptContentLimit = 3000

const extractionPrompt = `Analyze this article about industrial expansion and extract the following information:

1. COMPANY NAME: Extract the exact company name (just the company, no description)
2. ADDRESS/LOCATION: Extract the complete address if available, or at minimum the city and state. If a full street address is mentioned, include it.
3. ESTIMATED NEW JOBS: Extract the number of new jobs if mentioned (just the number)
4. SUMMARY: Write a comprehensive paragraph summary about the article that focuses on the facility. ex. sq footage, purpose of the facility, etc...

Article headline: %s
Article content: %s

Respond in this exact JSON format:
{
    "company": "Company Name",
    "address": "Full address or City, State",
    "jobs": "Number or empty string",
    "summary": "Full paragraph summary"
}`

// AIExtractor extracts lead fields with the Anthropic Messages API.
// A zero client means the path is unavailable; callers must check
// Available before relying on it.
type AIExtractor struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	log       *zap.Logger
}

// NewAIExtractor builds an AIExtractor. An empty apiKey yields an
// unavailable extractor rather than an error.
func NewAIExtractor(apiKey, model string, maxTokens int, log *zap.Logger) *AIExtractor {
	e := &AIExtractor{log: log}
	if apiKey == "" {
		return e
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	e.client = &client
	e.model = model
	e.maxTokens = int64(maxTokens)
	return e
}

// Available reports whether a model client is configured.
func (e *AIExtractor) Available() bool {
	return e != nil && e.client != nil
}

// Extract asks the model for all fields at once and parses its strict-JSON
// reply. Every failure mode is folded into the returned Outcome.
func (e *AIExtractor) Extract(ctx context.Context, content, headline string) Outcome {
	if !e.Available() {
		return Outcome{Kind: OutcomeUnavailable}
	}

	if len(content) > promptContentLimit {
		content = content[:promptContentLimit]
	}
	prompt := fmt.Sprintf(extractionPrompt, headline, content)

	msg, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(e.model),
		MaxTokens:   e.maxTokens,
		Temperature: anthropic.Float(0.1),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		e.log.Warn("model call failed", zap.Error(err))
		return Outcome{Kind: OutcomeFailed, Reason: fmt.Sprintf("model call: %v", err)}
	}

	var reply strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}

	fields, err := parseModelReply(reply.String(), headline)
	if err != nil {
		e.log.Warn("model reply parse failed", zap.Error(err))
		return Outcome{Kind: OutcomeFailed, Reason: fmt.Sprintf("parse reply: %v", err)}
	}
	return Outcome{Kind: OutcomeSucceeded, Fields: fields}
}

// parseModelReply decodes the model's JSON, tolerating markdown fences and
// surrounding prose. The headline stands in when the model omits a summary.
func parseModelReply(reply, headline string) (Fields, error) {
	raw := locateJSON(stripFences(reply))
	if raw == "" {
		return Fields{}, errors.New("no JSON object in reply")
	}

	var decoded struct {
		Company string `json:"company"`
		Address string `json:"address"`
		Jobs    string `json:"jobs"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return Fields{}, fmt.Errorf("decode reply JSON: %w", err)
	}

	fields := Fields{
		Company: decoded.Company,
		Address: decoded.Address,
		Jobs:    decoded.Jobs,
		Summary: decoded.Summary,
	}
	if fields.Summary == "" {
		fields.Summary = headline
	}
	return fields, nil
}

// stripFences removes a markdown code fence wrapper if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// locateJSON returns the first balanced brace-delimited object in s,
// ignoring braces inside string literals.
func locateJSON(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
