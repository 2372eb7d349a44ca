// internal/adapters/output/pretty.go
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"openhours/internal/core/domain"
	"openhours/internal/core/usecases"
)

// WritePretty dibuja el reporte con pterm: cabecera, panel de estado y tabla
// de ventanas del día.
func WritePretty(w io.Writer, report *domain.StatusReport, err error) error {
	dto := NewReportDTO(report, err)

	header := pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(headerBackground(dto))).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprint(headerTitle(dto))
	fmt.Fprintln(w, header)

	panel := pterm.DefaultBox.
		WithTitle(dash(dto.Facility)).
		WithTitleTopCenter().
		WithLeftPadding(2).
		WithRightPadding(2).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(panelContent(dto))
	fmt.Fprintln(w, panel)

	if len(dto.Windows) == 0 {
		return nil
	}

	data := pterm.TableData{{"Window", "Start", "End"}}
	for _, win := range dto.Windows {
		data = append(data, []string{dash(win.Label), win.Start, win.End})
	}
	table, rerr := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(data).
		Srender()
	if rerr != nil {
		return fmt.Errorf("failed to render windows table: %w", rerr)
	}
	fmt.Fprintln(w, table)
	return nil
}

// WriteBoardPretty dibuja el board como tabla pterm con estados coloreados.
func WriteBoardPretty(w io.Writer, entries []usecases.BoardEntry) error {
	board := NewBoardDTO(entries)

	data := pterm.TableData{{"ID", "Facility", "Status", "Until", "In"}}
	for _, f := range board.Facilities {
		data = append(data, []string{
			dash(f.FacilityID),
			dash(f.Facility),
			colorStatus(f),
			untilLabel(f),
			dash(f.Duration),
		})
	}

	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}
	fmt.Fprintln(w, table)
	fmt.Fprintf(w, "%s open, %s unavailable, %d total\n",
		pterm.Green(board.Open), pterm.Red(board.Failed), len(board.Facilities))
	return nil
}

func headerTitle(dto ReportDTO) string {
	switch {
	case dto.Reason != "":
		return strings.ToUpper(dto.Reason)
	case dto.IsOpen:
		return "OPEN"
	default:
		return "CLOSED"
	}
}

func headerBackground(dto ReportDTO) pterm.Color {
	switch {
	case dto.Reason != "":
		return pterm.BgRed
	case dto.IsOpen:
		return pterm.BgGreen
	default:
		return pterm.BgYellow
	}
}

func panelContent(dto ReportDTO) string {
	var b strings.Builder
	b.WriteString(dto.Message)
	if dto.Message == "" {
		b.WriteString(dto.Error)
	}
	if dto.DailyStatus != "" {
		fmt.Fprintf(&b, "\nDaily status: %s", pterm.Cyan(dto.DailyStatus))
	}
	if dto.Boundary != nil {
		label := "Reopens at"
		if dto.IsOpen {
			label = "Closes at"
		}
		fmt.Fprintf(&b, "\n%s: %s", label, pterm.Yellow(dto.Boundary.Format("15:04")))
	}
	if !dto.CheckedAt.IsZero() {
		fmt.Fprintf(&b, "\nChecked at: %s", dto.CheckedAt.Format("2006-01-02 15:04 MST"))
	}
	return b.String()
}

func colorStatus(f ReportDTO) string {
	label := statusLabel(f)
	switch {
	case f.Reason != "":
		return pterm.Red(label)
	case f.IsOpen:
		return pterm.Green(label)
	default:
		return pterm.Yellow(label)
	}
}
