package summary

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxChars  int
		want      string
		wantTrunc bool
	}{
		{
			name:      "Short text unmodified",
			text:      "short transcript",
			maxChars:  15000,
			want:      "short transcript",
			wantTrunc: false,
		},
		{
			name:      "Exactly at limit unmodified",
			text:      strings.Repeat("a", 100),
			maxChars:  100,
			want:      strings.Repeat("a", 100),
			wantTrunc: false,
		},
		{
			name:      "Over limit truncated with marker",
			text:      strings.Repeat("a", 101),
			maxChars:  100,
			want:      strings.Repeat("a", 100) + "...",
			wantTrunc: true,
		},
		{
			name:      "Zero budget disables truncation",
			text:      "anything",
			maxChars:  0,
			want:      "anything",
			wantTrunc: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := Truncate(tt.text, tt.maxChars)
			if got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
			if truncated != tt.wantTrunc {
				t.Errorf("truncated = %v, want %v", truncated, tt.wantTrunc)
			}
		})
	}
}

func TestTruncateAtTranscriptBudget(t *testing.T) {
	long := strings.Repeat("x", 20000)

	got, truncated := Truncate(long, 15000)
	if !truncated {
		t.Fatal("expected truncation for a 20000-char transcript")
	}
	if got != long[:15000]+"..." {
		t.Error("truncated text is not the first 15000 characters plus the marker")
	}

	short := strings.Repeat("x", 14999)
	got, truncated = Truncate(short, 15000)
	if truncated || got != short {
		t.Error("transcript under the budget must be submitted unmodified")
	}
}
