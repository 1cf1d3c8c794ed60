package utils

import (
	"testing"
	"time"
)

func TestParseQueryDate(t *testing.T) {
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"iso", "2025-03-10", false},
		{"display", "10-03-2025", false},
		{"padded", "  2025-03-10 ", false},
		{"empty", "", true},
		{"slash", "2025/03/10", true},
		{"garbage", "yesterday", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseQueryDate(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseQueryDate(%q) = %v, want error", tc.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQueryDate(%q) error: %v", tc.raw, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseQueryDate(%q) = %v, want %v", tc.raw, got, want)
			}
		})
	}
}

func TestDisplayDate(t *testing.T) {
	d := time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)
	if got := DisplayDate(d); got != "10-03-2025" {
		t.Errorf("DisplayDate = %q, want 10-03-2025", got)
	}
}
