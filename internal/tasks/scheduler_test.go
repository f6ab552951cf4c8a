package tasks

import (
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	now := time.Date(2026, 3, 10, 5, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		spec    string
		want    time.Time
		wantErr bool
	}{
		{
			name: "hourly sweep fires at the top of the next hour",
			spec: "0 * * * *",
			want: time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "twice daily stock check fires at 06:00",
			spec: "0 6,18 * * *",
			want: time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC),
		},
		{
			name:    "malformed expression is rejected",
			spec:    "every hour",
			wantErr: true,
		},
		{
			name:    "too many fields is rejected",
			spec:    "0 0 * * * *",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextRun(tt.spec, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("nextRun(%q) accepted a malformed spec", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("nextRun(%q) error: %v", tt.spec, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("nextRun(%q) = %s, want %s", tt.spec, got, tt.want)
			}
		})
	}
}
