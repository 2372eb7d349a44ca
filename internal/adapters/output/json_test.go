// internal/adapters/output/json_test.go
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"openhours/internal/core/domain"
	"openhours/internal/testutil"
)

func TestNewReportDTO_Open(t *testing.T) {
	dto := NewReportDTO(openReport(), nil)

	testutil.AssertEqual(t, dto.FacilityID, "1447", "id")
	testutil.AssertEqual(t, dto.Facility, "Commons Cafe", "name")
	testutil.AssertTrue(t, dto.Available, "available")
	testutil.AssertTrue(t, dto.IsOpen, "open")
	require.NotNil(t, dto.Boundary)
	testutil.AssertTimeEqual(t, *dto.Boundary, testutil.At(10, 0), "boundary")
	testutil.AssertEqual(t, dto.Duration, "1 hours and 30 minutes", "duration")
	testutil.AssertEqual(t, dto.DailyStatus, "open", "daily status")
	testutil.AssertLen(t, dto.Windows, 2, "windows")
	testutil.AssertEqual(t, dto.Windows[0], WindowDTO{Start: "07:00", End: "10:00", Label: "Breakfast"}, "first window")
	testutil.AssertEqual(t, dto.Error, "", "no error")
	testutil.AssertEqual(t, dto.Reason, "", "no reason")
}

func TestNewReportDTO_ClosedForDay(t *testing.T) {
	dto := NewReportDTO(closedReport(), nil)

	testutil.AssertFalse(t, dto.IsOpen, "closed")
	testutil.AssertNil(t, dto.Boundary, "no boundary")
	testutil.AssertEqual(t, dto.Duration, "", "no duration")
	testutil.AssertEqual(t, dto.DailyStatus, "closed", "daily status")
}

func TestNewReportDTO_Unavailable(t *testing.T) {
	dto := NewReportDTO(unavailableReport())

	testutil.AssertFalse(t, dto.Available, "not available")
	testutil.AssertEqual(t, dto.Reason, "unavailable", "reason")
	testutil.AssertContains(t, dto.Message, "can't check North Market", "message")
	testutil.AssertContains(t, dto.Error, "upstream 503", "error")
	testutil.AssertNil(t, dto.Windows, "no windows")
}

func TestNewReportDTO_NilReport(t *testing.T) {
	dto := NewReportDTO(nil, domain.ErrEmptyFacilityID)

	testutil.AssertEqual(t, dto.Reason, "invalid", "reason")
	testutil.AssertEqual(t, dto.FacilityID, "", "no id")
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("cafe 1447 daypart 0: %w", domain.ErrMalformedWindow), "malformed"},
		{fmt.Errorf("%w: timeout", domain.ErrScheduleUnavailable), "unavailable"},
		{domain.ErrInvalidFacilityID, "invalid"},
		{domain.ErrUnknownFacility, "invalid"},
		{errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		testutil.AssertEqual(t, Reason(tt.err), tt.want, fmt.Sprint(tt.err))
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, openReport(), nil, false))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	testutil.AssertEqual(t, decoded["facility_id"], "1447", "facility_id")
	testutil.AssertEqual(t, decoded["is_open"], true, "is_open")
	testutil.AssertEqual(t, decoded["duration"], "1 hours and 30 minutes", "duration")
	_, hasErr := decoded["error"]
	testutil.AssertFalse(t, hasErr, "error omitted")
}

func TestWriteBoardJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBoardJSON(&buf, sampleBoard(), true))

	var board BoardDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &board))

	testutil.AssertLen(t, board.Facilities, 3, "facilities")
	testutil.AssertEqual(t, board.Open, 1, "open")
	testutil.AssertEqual(t, board.Failed, 1, "failed")
	testutil.AssertEqual(t, board.Facilities[2].Reason, "unavailable", "order kept")
	testutil.AssertTimeEqual(t, board.CheckedAt, testutil.At(8, 30), "checked at")
}
