package moderation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantApproved  bool
		wantCorrected string
		wantReason    string
		wantSeverity  Severity
		wantMalformed bool
	}{
		{
			name:         "plain approval",
			raw:          `{"isApproved": true}`,
			wantApproved: true,
		},
		{
			name:          "approval with correction",
			raw:           `{"isApproved": true, "correctedText": "Fixed text"}`,
			wantApproved:  true,
			wantCorrected: "Fixed text",
		},
		{
			name:         "rejection with reason and severity",
			raw:          `{"isApproved": false, "reason": "profanity", "severity": "HIGH"}`,
			wantReason:   "profanity",
			wantSeverity: SeverityHigh,
		},
		{
			name:         "rejection with lowercase severity",
			raw:          `{"isApproved": false, "reason": "spam", "severity": "low"}`,
			wantReason:   "spam",
			wantSeverity: SeverityLow,
		},
		{
			name:         "rejection without severity defaults to medium",
			raw:          `{"isApproved": false, "reason": "off-topic"}`,
			wantReason:   "off-topic",
			wantSeverity: SeverityMedium,
		},
		{
			name:         "fenced json still parses",
			raw:          "```json\n{\"isApproved\": true}\n```",
			wantApproved: true,
		},
		{
			name:          "free text is rejected as malformed",
			raw:           "APPROVED",
			wantReason:    MalformedVerdictReason,
			wantSeverity:  SeverityMedium,
			wantMalformed: true,
		},
		{
			name:          "empty response is rejected as malformed",
			raw:           "",
			wantReason:    MalformedVerdictReason,
			wantSeverity:  SeverityMedium,
			wantMalformed: true,
		},
		{
			name:          "broken json is rejected as malformed",
			raw:           `{"isApproved": tru`,
			wantReason:    MalformedVerdictReason,
			wantSeverity:  SeverityMedium,
			wantMalformed: true,
		},
		{
			name:         "approval never carries reason or severity",
			raw:          `{"isApproved": true, "reason": "stale", "severity": "HIGH"}`,
			wantApproved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseVerdict(tt.raw)
			if v.IsApproved != tt.wantApproved {
				t.Errorf("IsApproved = %v, want %v", v.IsApproved, tt.wantApproved)
			}
			if v.CorrectedText != tt.wantCorrected {
				t.Errorf("CorrectedText = %q, want %q", v.CorrectedText, tt.wantCorrected)
			}
			if v.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", v.Reason, tt.wantReason)
			}
			if v.Severity != tt.wantSeverity {
				t.Errorf("Severity = %q, want %q", v.Severity, tt.wantSeverity)
			}
			if v.Malformed != tt.wantMalformed {
				t.Errorf("Malformed = %v, want %v", v.Malformed, tt.wantMalformed)
			}
		})
	}
}

func completionResponse(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(b)
}

func TestReview_Approved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write([]byte(completionResponse(`{"isApproved": true, "correctedText": "Fixed text"}`)))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	v, err := c.Review(context.Background(), "Fixt text")
	if err != nil {
		t.Fatalf("Review() error: %v", err)
	}
	if !v.IsApproved || v.CorrectedText != "Fixed text" {
		t.Errorf("verdict = %+v, want approved with corrected text", v)
	}
}

func TestReview_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	if _, err := c.Review(context.Background(), "anything"); err == nil {
		t.Fatal("Review() error = nil, want transport error for 500")
	}
}

func TestReview_EmptyCompletionIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	if _, err := c.Review(context.Background(), "anything"); err == nil {
		t.Fatal("Review() error = nil, want error for empty completion")
	}
}

func TestReview_UnparseableCompletionRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse("I cannot analyze this")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	v, err := c.Review(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Review() error: %v", err)
	}
	if v.IsApproved {
		t.Fatal("unparseable verdict was approved; must reject by default")
	}
	if v.Reason != MalformedVerdictReason || v.Severity != SeverityMedium {
		t.Errorf("verdict = %+v, want %q / MEDIUM", v, MalformedVerdictReason)
	}
}
