package middleware

import (
	"strings"
	"testing"
)

func TestValidateQuestionText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain text", "What is Go?", "What is Go?", false},
		{"trims whitespace", "  What is Go?  ", "What is Go?", false},
		{"empty", "", "", true},
		{"whitespace only", "   \t\n  ", "", true},
		{"at the limit", strings.Repeat("a", 200), strings.Repeat("a", 200), false},
		{"over the limit", strings.Repeat("a", 201), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateQuestionText(tt.input)
			if (errMsg != "") != tt.wantErr {
				t.Fatalf("ValidateQuestionText(%q) errMsg = %q, wantErr %v", tt.input, errMsg, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateQuestionText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateSubmitterID(t *testing.T) {
	if _, errMsg := ValidateSubmitterID("0123456789abcdef"); errMsg != "" {
		t.Errorf("valid submitter ID rejected: %s", errMsg)
	}
	if _, errMsg := ValidateSubmitterID("not-a-submitter"); errMsg == "" {
		t.Error("malformed submitter ID accepted")
	}
	if _, errMsg := ValidateSubmitterID(""); errMsg == "" {
		t.Error("empty submitter ID accepted")
	}
}

func TestValidateUUID(t *testing.T) {
	if _, errMsg := ValidateUUID("8b3c2a6e-1f3d-4a7b-9c1e-2d5f8a0b4c6d", "roomId"); errMsg != "" {
		t.Errorf("valid UUID rejected: %s", errMsg)
	}
	if _, errMsg := ValidateUUID("12345", "roomId"); errMsg == "" {
		t.Error("malformed UUID accepted")
	}
	if _, errMsg := ValidateUUID("", "roomId"); errMsg == "" {
		t.Error("empty UUID accepted")
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"student@college.edu", "student@college.edu", false},
		{"  Student@College.EDU ", "student@college.edu", false},
		{"no-at-sign", "", true},
		{"@leading.at", "", true},
		{"trailing.at@", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, errMsg := ValidateEmail(tt.input)
		if (errMsg != "") != tt.wantErr {
			t.Errorf("ValidateEmail(%q) errMsg = %q, wantErr %v", tt.input, errMsg, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ValidateEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateRoomName(t *testing.T) {
	if _, errMsg := ValidateRoomName("Intro to Distributed Systems"); errMsg != "" {
		t.Errorf("valid room name rejected: %s", errMsg)
	}
	if _, errMsg := ValidateRoomName("  "); errMsg == "" {
		t.Error("blank room name accepted")
	}
	if _, errMsg := ValidateRoomName(strings.Repeat("x", 129)); errMsg == "" {
		t.Error("oversized room name accepted")
	}
}
