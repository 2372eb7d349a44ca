// internal/core/usecases/announcer_test.go
package usecases

import (
	"testing"

	"openhours/internal/core/domain"
	"openhours/internal/testutil"
)

func TestAnnounce(t *testing.T) {
	tests := []struct {
		name        string
		result      domain.StatusResult
		duration    string
		hasDuration bool
		want        string
	}{
		{
			name:        "open",
			result:      domain.OpenUntil(testutil.At(10, 0)),
			duration:    "1 hours and 30 minutes",
			hasDuration: true,
			want:        "Commons is currently open. However, it will close in 1 hours and 30 minutes.",
		},
		{
			name:        "closed reopening",
			result:      domain.ClosedUntil(testutil.At(11, 0)),
			duration:    "30 minutes",
			hasDuration: true,
			want:        "Commons is currently closed. However, it will reopen in 30 minutes.",
		},
		{
			name:   "closed for the day",
			result: domain.ClosedForDay(),
			want:   "Commons is currently closed. It will remain closed for the remainder of the day.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Announce("Commons", tt.result, tt.duration, tt.hasDuration)
			testutil.AssertEqual(t, got, tt.want, "sentence")
		})
	}
}

func TestAnnounceUnavailable(t *testing.T) {
	testutil.AssertContains(t, AnnounceUnavailable("Commons"), "can't check Commons right now", "generic apology")
}
