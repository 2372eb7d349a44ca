// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"openhours/internal/core/usecases"
)

// WriteTable imprime el board como tabla alineada.
func WriteTable(out io.Writer, entries []usecases.BoardEntry) error {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tFACILITY\tSTATUS\tUNTIL\tIN")
	fmt.Fprintln(w, "--\t--------\t------\t-----\t--")

	board := NewBoardDTO(entries)
	for _, f := range board.Facilities {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			f.FacilityID,
			f.Facility,
			statusLabel(f),
			untilLabel(f),
			dash(f.Duration),
		)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	fmt.Fprintf(out, "\n%d facilities, %d open, %d unavailable\n",
		len(board.Facilities), board.Open, board.Failed)

	for _, f := range board.Facilities {
		if f.Error != "" {
			fmt.Fprintf(out, "  [%s] %s\n", dash(f.FacilityID), f.Error)
		}
	}
	return nil
}

func statusLabel(f ReportDTO) string {
	switch {
	case f.Reason != "":
		return f.Reason
	case f.IsOpen:
		return "open"
	default:
		return "closed"
	}
}

func untilLabel(f ReportDTO) string {
	if f.Boundary == nil {
		if f.Available && !f.IsOpen {
			return "rest of day"
		}
		return "-"
	}
	return f.Boundary.Format("15:04")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
