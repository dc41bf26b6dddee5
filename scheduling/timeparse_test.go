package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionStart(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name    string
		date    string
		clock   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "afternoon",
			date:  "2026-03-10",
			clock: "02:15 PM",
			want:  time.Date(2026, 3, 10, 14, 15, 0, 0, loc),
		},
		{
			name:  "noon stays twelve",
			date:  "2026-03-10",
			clock: "12:00 PM",
			want:  time.Date(2026, 3, 10, 12, 0, 0, 0, loc),
		},
		{
			name:  "midnight becomes zero",
			date:  "2026-03-10",
			clock: "12:30 AM",
			want:  time.Date(2026, 3, 10, 0, 30, 0, 0, loc),
		},
		{
			name:  "morning without padding",
			date:  "2026-11-02",
			clock: "9:05 AM",
			want:  time.Date(2026, 11, 2, 9, 5, 0, 0, loc),
		},
		{name: "unknown period", date: "2026-03-10", clock: "13:00 FM", wantErr: true},
		{name: "24-hour hour", date: "2026-03-10", clock: "13:00 PM", wantErr: true},
		{name: "missing period", date: "2026-03-10", clock: "10:00", wantErr: true},
		{name: "bad minute", date: "2026-03-10", clock: "10:75 AM", wantErr: true},
		{name: "bad date", date: "tomorrow", clock: "10:00 AM", wantErr: true},
		{name: "empty", date: "", clock: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SessionStart(tt.date, tt.clock, loc)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
		})
	}
}
