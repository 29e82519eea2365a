package service

import (
	"strings"
	"testing"
)

func TestNextCode(t *testing.T) {
	tests := []struct {
		prefix string
		last   string
		want   string
	}{
		{"PO", "", "PO-000001"},
		{"PO", "PO-000001", "PO-000002"},
		{"PO", "PO-000099", "PO-000100"},
		{"SO", "SO-999999", "SO-1000000"},
		{"F", "F-000041", "F-000042"},
		{"PAY", "PAY-000007", "PAY-000008"},
		// The repository scans never return fallback codes; an
		// unparsable input still degrades to the sequence start.
		{"PO", "PO-A1B2C3", "PO-000001"},
	}
	for _, tt := range tests {
		if got := nextCode(tt.prefix, tt.last); got != tt.want {
			t.Errorf("nextCode(%q, %q) = %q, want %q", tt.prefix, tt.last, got, tt.want)
		}
	}
}

func TestFallbackCode(t *testing.T) {
	code := fallbackCode("PO")
	if !strings.HasPrefix(code, "PO-") {
		t.Fatalf("fallback code %q should start with PO-", code)
	}
	if len(code) != len("PO-")+6 {
		t.Errorf("fallback code %q should carry a 6-char suffix", code)
	}
	if code == fallbackCode("PO") {
		t.Error("two fallback codes should not collide")
	}
}
