// Package moderation calls the external content moderator that approves,
// corrects, or rejects submitted question text before it is persisted.
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Severity of a moderation rejection.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// MalformedVerdictReason is used when the moderator answers with something
// that cannot be parsed. The policy is reject-by-default: an unreadable
// verdict must never turn into an approval.
const MalformedVerdictReason = "content analysis failed"

// DefaultTimeout bounds one moderator call. Expiry surfaces as a transient
// error, not a rejection.
const DefaultTimeout = 10 * time.Second

// Verdict is the moderator's decision on one piece of text.
type Verdict struct {
	IsApproved    bool     `json:"isApproved"`
	CorrectedText string   `json:"correctedText,omitempty"`
	Reason        string   `json:"reason,omitempty"`
	Severity      Severity `json:"severity,omitempty"`

	// Malformed marks a verdict synthesized from an unparseable response.
	Malformed bool `json:"-"`
}

const reviewPrompt = `Analyze the following text for a public Q&A session. Decide whether it is appropriate: it must be respectful, free of profanity, harassment, hate speech, spam, and sexual or violent content. If the text is appropriate but contains minor spelling mistakes, provide a corrected version.

Respond with only a JSON object, no explanation and no code fences, in this exact shape:
{"isApproved": true|false, "correctedText": "only when a correction was applied", "reason": "only when rejected", "severity": "LOW"|"MEDIUM"|"HIGH, only when rejected"}

Text to analyze: %q`

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// NewClient creates a moderator client. A timeout of 0 uses DefaultTimeout.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		apiKey:     apiKey,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Review submits text to the moderator and returns its verdict. Transport
// failures, non-2xx statuses, and empty completions are returned as errors
// (transient, retryable); a completion that cannot be parsed as a verdict is
// NOT an error — it resolves to a rejection via ParseVerdict.
func (c *Client) Review(ctx context.Context, text string) (Verdict, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(reviewPrompt, text)}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Verdict{}, fmt.Errorf("moderation: encode request: %w", err)
	}

	url := c.endpoint + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Verdict{}, fmt.Errorf("moderation: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("moderation: call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Verdict{}, fmt.Errorf("moderation: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Verdict{}, fmt.Errorf("moderation: unexpected status %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return Verdict{}, fmt.Errorf("moderation: decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return Verdict{}, fmt.Errorf("moderation: empty completion")
	}

	return ParseVerdict(gr.Candidates[0].Content.Parts[0].Text), nil
}

// ParseVerdict interprets the raw completion text. Anything that does not
// parse as the expected JSON shape becomes a rejection with reason
// "content analysis failed" and MEDIUM severity.
func ParseVerdict(raw string) Verdict {
	raw = stripCodeFences(strings.TrimSpace(raw))

	var v Verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return malformedVerdict()
	}

	if !v.IsApproved {
		v.Severity = normalizeSeverity(v.Severity)
		if v.Reason == "" {
			v.Reason = "inappropriate content"
		}
	} else {
		// An approval carries no reason or severity.
		v.Reason = ""
		v.Severity = ""
	}
	return v
}

func malformedVerdict() Verdict {
	return Verdict{
		IsApproved: false,
		Reason:     MalformedVerdictReason,
		Severity:   SeverityMedium,
		Malformed:  true,
	}
}

func normalizeSeverity(s Severity) Severity {
	switch Severity(strings.ToUpper(string(s))) {
	case SeverityLow:
		return SeverityLow
	case SeverityHigh:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// stripCodeFences removes a markdown fence that models sometimes wrap
// around JSON output despite instructions.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
