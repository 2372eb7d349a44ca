// internal/core/domain/facility_test.go
package domain

import (
	"testing"

	"openhours/internal/testutil"
)

func TestFacility_Validate(t *testing.T) {
	tests := []struct {
		id      string
		wantErr error
	}{
		{"1447", nil},
		{"east-hall_2", nil},
		{"", ErrEmptyFacilityID},
		{"has space", ErrInvalidFacilityID},
		{"../etc", ErrInvalidFacilityID},
		{"id?cafe=1", ErrInvalidFacilityID},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := NewFacility(tt.id, "").Validate()
			if tt.wantErr == nil {
				testutil.AssertNoError(t, err, "should be valid")
				return
			}
			testutil.AssertErrorIs(t, err, tt.wantErr, "validation error")
		})
	}
}

func TestFacility_DisplayName(t *testing.T) {
	testutil.AssertEqual(t, NewFacility(" 1447 ", " Commons Cafe ").DisplayName(), "Commons Cafe", "uses name")
	testutil.AssertEqual(t, NewFacility("1447", "").DisplayName(), "1447", "falls back to id")
}

func TestStatusResult(t *testing.T) {
	testutil.AssertFalse(t, ClosedForDay().HasBoundary(), "closed for day has no boundary")
	testutil.AssertTrue(t, OpenUntil(testutil.At(10, 0)).HasBoundary(), "open has boundary")
	testutil.AssertTrue(t, OpenUntil(testutil.At(10, 0)).IsOpen, "open flag")
	testutil.AssertFalse(t, ClosedUntil(testutil.At(11, 0)).IsOpen, "closed flag")
}
