package identity

import "testing"

func TestDerive_Stable(t *testing.T) {
	a := Derive("Mozilla/5.0", "en-US", "1920x1080", "deadbeefcafe0123")
	b := Derive("Mozilla/5.0", "en-US", "1920x1080", "deadbeefcafe0123")
	if a != b {
		t.Errorf("same inputs produced different IDs: %q vs %q", a, b)
	}
	if len(a) != IDLength {
		t.Errorf("ID length = %d, want %d", len(a), IDLength)
	}
}

func TestDerive_SuffixDistinguishesProfiles(t *testing.T) {
	a := Derive("Mozilla/5.0", "en-US", "1920x1080", "suffix-one")
	b := Derive("Mozilla/5.0", "en-US", "1920x1080", "suffix-two")
	if a == b {
		t.Error("different suffixes produced the same ID")
	}
}

func TestNewSuffix(t *testing.T) {
	a, err := NewSuffix()
	if err != nil {
		t.Fatalf("NewSuffix() error: %v", err)
	}
	b, err := NewSuffix()
	if err != nil {
		t.Fatalf("NewSuffix() error: %v", err)
	}
	if a == b {
		t.Error("two suffixes collided")
	}
	if len(a) != 16 {
		t.Errorf("suffix length = %d, want 16", len(a))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid ID", "0123456789abcdef", "0123456789abcdef", false},
		{"uppercase normalized", "0123456789ABCDEF", "0123456789abcdef", false},
		{"surrounding whitespace", "  0123456789abcdef ", "0123456789abcdef", false},
		{"empty", "", "", true},
		{"too short", "abc123", "", true},
		{"too long", "0123456789abcdef00", "", true},
		{"non-hex characters", "0123456789abcdeg", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := Validate(tt.input)
			if (errMsg != "") != tt.wantErr {
				t.Fatalf("Validate(%q) errMsg = %q, wantErr %v", tt.input, errMsg, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Validate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDerive_FingerprintFieldsMatter(t *testing.T) {
	base := Derive("Mozilla/5.0", "en-US", "1920x1080", "s")

	variants := []struct {
		name string
		id   string
	}{
		{"user agent", Derive("Chrome/120", "en-US", "1920x1080", "s")},
		{"locale", Derive("Mozilla/5.0", "fr-FR", "1920x1080", "s")},
		{"geometry", Derive("Mozilla/5.0", "en-US", "2560x1440", "s")},
	}

	for _, v := range variants {
		if v.id == base {
			t.Errorf("changing %s did not change the derived ID", v.name)
		}
	}
}
