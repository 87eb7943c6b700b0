package jpdate_test

import (
	"testing"
	"time"

	"newsletter-hub/pkg/jpdate"
)

func TestResolve(t *testing.T) {
	// Fixed clock so year fallback is deterministic.
	resolver := jpdate.NewResolverAt(func() time.Time {
		return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	})

	tests := []struct {
		name       string
		raw        string
		issueMonth string
		want       string
		wantOK     bool
	}{
		{
			name:   "Already ISO",
			raw:    "2025-10-15",
			want:   "2025-10-15",
			wantOK: true,
		},
		{
			name:   "Zero-pad month and day",
			raw:    "2025-8-3",
			want:   "2025-08-03",
			wantOK: true,
		},
		{
			name:   "Slash separators",
			raw:    "2025/8/31",
			want:   "2025-08-31",
			wantOK: true,
		},
		{
			name:   "Dot separators",
			raw:    "2025.08.31",
			want:   "2025-08-31",
			wantOK: true,
		},
		{
			name:   "Japanese era-free kanji date",
			raw:    "2025年8月31日",
			want:   "2025-08-31",
			wantOK: true,
		},
		{
			name:   "Kanji date with weekday annotation",
			raw:    "2025年7月15日(火)",
			want:   "2025-07-15",
			wantOK: true,
		},
		{
			name:   "Full-width digits",
			raw:    "２０２５年７月１５日",
			want:   "2025-07-15",
			wantOK: true,
		},
		{
			name:       "Year omitted with issue month",
			raw:        "8-31",
			issueMonth: "2025-08",
			want:       "2025-08-31",
			wantOK:     true,
		},
		{
			name:       "Year omitted kanji with issue month",
			raw:        "8月31日",
			issueMonth: "2025-08",
			want:       "2025-08-31",
			wantOK:     true,
		},
		{
			name:   "Year omitted without issue month uses current year",
			raw:    "8-31",
			want:   "2025-08-31",
			wantOK: true,
		},
		{
			name:       "Year omitted with malformed issue month uses current year",
			raw:        "12/24",
			issueMonth: "december",
			want:       "2025-12-24",
			wantOK:     true,
		},
		{
			name:   "Month out of range",
			raw:    "2025-13-01",
			wantOK: false,
		},
		{
			name:   "Day out of range",
			raw:    "2025-01-32",
			wantOK: false,
		},
		{
			name:   "Free text",
			raw:    "未定",
			wantOK: false,
		},
		{
			name:   "Mixed prose around date",
			raw:    "たぶん8月ごろ",
			wantOK: false,
		},
		{
			name:   "Empty string",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "Lone month",
			raw:    "8月",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolver.Resolve(tt.raw, tt.issueMonth)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q, %q) ok = %v, want %v", tt.raw, tt.issueMonth, ok, tt.wantOK)
			}
			if !ok && got != "" {
				t.Fatalf("Resolve(%q, %q) returned %q on failure, want empty", tt.raw, tt.issueMonth, got)
			}
			if ok && got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.raw, tt.issueMonth, got, tt.want)
			}
		})
	}
}
