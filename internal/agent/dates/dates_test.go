package dates

import (
	"testing"
	"time"
)

func TestInferRange(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		start     string
		end       string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "both absent",
			wantStart: "2026-03-29",
			wantEnd:   "2026-04-05",
		},
		{
			name:      "only start",
			start:     "2026-06-10",
			wantStart: "2026-06-10",
			wantEnd:   "2026-06-17",
		},
		{
			name:      "only end",
			end:       "2026-06-10",
			wantStart: "2026-06-03",
			wantEnd:   "2026-06-10",
		},
		{
			name:      "both present",
			start:     "2026-06-10",
			end:       "2026-06-20",
			wantStart: "2026-06-10",
			wantEnd:   "2026-06-20",
		},
		{
			name:      "month boundary",
			start:     "2026-01-28",
			wantStart: "2026-01-28",
			wantEnd:   "2026-02-04",
		},
		{
			name:      "unparseable start passes through",
			start:     "next tuesday",
			wantStart: "next tuesday",
			wantEnd:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStart, gotEnd := InferRange(now, tt.start, tt.end)
			if gotStart != tt.wantStart || gotEnd != tt.wantEnd {
				t.Errorf("InferRange(%q, %q) = (%q, %q), want (%q, %q)",
					tt.start, tt.end, gotStart, gotEnd, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
