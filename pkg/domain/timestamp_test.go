package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2024-05-01T10:00:00Z"`, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{`"2024-05-01 10:00:00"`, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{`"2024-05-01 10:00:00.123456"`, time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC)},
		{`"2024-05-01T10:00:00"`, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{`"2024-05-01"`, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{`"yesterday"`, time.Time{}},
		{`""`, time.Time{}},
		{`null`, time.Time{}},
		{`1714557600`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.in), &ts); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.in, err)
			}
			if !ts.Equal(tt.want) {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, ts.Time, tt.want)
			}
		})
	}
}

func TestApplicationDecodesWithBadTimestamp(t *testing.T) {
	var app Application
	err := json.Unmarshal([]byte(`{"id": 1, "job_id": 2, "status": "applied", "applied_at": "01/05/2024"}`), &app)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if app.Status != "applied" || !app.AppliedAt.IsZero() {
		t.Errorf("app = %+v", app)
	}
}
