// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"openhours/internal/core/domain"
	"openhours/internal/core/usecases"
)

// WindowDTO es una ventana horaria serializable.
type WindowDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label,omitempty"`
}

// ReportDTO es la forma JSON de un domain.StatusReport. La comparten la CLI
// y el front-end HTTP.
type ReportDTO struct {
	FacilityID  string      `json:"facility_id"`
	Facility    string      `json:"facility"`
	Available   bool        `json:"available"`
	IsOpen      bool        `json:"is_open"`
	Boundary    *time.Time  `json:"boundary,omitempty"`
	Duration    string      `json:"duration,omitempty"`
	Message     string      `json:"message"`
	CheckedAt   time.Time   `json:"checked_at"`
	DailyStatus string      `json:"daily_status,omitempty"`
	Windows     []WindowDTO `json:"windows,omitempty"`
	Error       string      `json:"error,omitempty"`
	Reason      string      `json:"reason,omitempty"` // unavailable | malformed | invalid
}

// BoardDTO agrupa los reportes de --all.
type BoardDTO struct {
	CheckedAt  time.Time   `json:"checked_at"`
	Facilities []ReportDTO `json:"facilities"`
	Open       int         `json:"open"`
	Failed     int         `json:"failed"`
}

// NewReportDTO convierte un reporte (posiblemente parcial) y el error de la
// consulta. report puede ser nil si la facility era inválida.
func NewReportDTO(report *domain.StatusReport, err error) ReportDTO {
	var dto ReportDTO
	if err != nil {
		dto.Error = err.Error()
		dto.Reason = Reason(err)
	}
	if report == nil {
		return dto
	}

	dto.FacilityID = report.Facility.ID
	dto.Facility = report.Facility.DisplayName()
	dto.Available = report.Available()
	dto.IsOpen = report.Result.IsOpen
	dto.Message = report.Message
	dto.CheckedAt = report.CheckedAt

	if report.Result.HasBoundary() {
		b := report.Result.Boundary
		dto.Boundary = &b
	}
	if report.HasDuration {
		dto.Duration = report.Duration
	}
	if s := report.Schedule; s != nil {
		dto.DailyStatus = s.Status.String()
		dto.Windows = make([]WindowDTO, 0, len(s.Windows))
		for _, w := range s.Windows {
			dto.Windows = append(dto.Windows, WindowDTO{
				Start: w.Start.String(),
				End:   w.End.String(),
				Label: w.Label,
			})
		}
	}
	return dto
}

// Reason clasifica el error de una consulta para los clientes.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMalformedWindow):
		return "malformed"
	case errors.Is(err, domain.ErrScheduleUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrEmptyFacilityID),
		errors.Is(err, domain.ErrInvalidFacilityID),
		errors.Is(err, domain.ErrUnknownFacility):
		return "invalid"
	default:
		return "error"
	}
}

// NewBoardDTO convierte las entradas del board.
func NewBoardDTO(entries []usecases.BoardEntry) BoardDTO {
	board := BoardDTO{Facilities: make([]ReportDTO, 0, len(entries))}
	for _, e := range entries {
		dto := NewReportDTO(e.Report, e.Err)
		if board.CheckedAt.IsZero() && !dto.CheckedAt.IsZero() {
			board.CheckedAt = dto.CheckedAt
		}
		if e.Err != nil {
			board.Failed++
		} else if dto.IsOpen {
			board.Open++
		}
		board.Facilities = append(board.Facilities, dto)
	}
	return board
}

// WriteJSON escribe un reporte como JSON.
func WriteJSON(w io.Writer, report *domain.StatusReport, err error, pretty bool) error {
	return encode(w, NewReportDTO(report, err), pretty)
}

// WriteBoardJSON escribe el board como JSON.
func WriteBoardJSON(w io.Writer, entries []usecases.BoardEntry, pretty bool) error {
	return encode(w, NewBoardDTO(entries), pretty)
}

func encode(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
