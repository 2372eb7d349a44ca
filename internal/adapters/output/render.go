// internal/adapters/output/render.go
package output

import (
	"fmt"
	"io"

	"openhours/internal/core/domain"
	"openhours/internal/core/usecases"
)

// Render escribe un reporte en el formato pedido. "table" equivale a
// "pretty" para una sola facility.
func Render(w io.Writer, format string, report *domain.StatusReport, err error) error {
	switch format {
	case "", "text":
		return WriteText(w, report, err)
	case "json":
		return WriteJSON(w, report, err, true)
	case "pretty", "table":
		return WritePretty(w, report, err)
	default:
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidConfig, format)
	}
}

// RenderBoard escribe el board de --all en el formato pedido.
func RenderBoard(w io.Writer, format string, entries []usecases.BoardEntry) error {
	switch format {
	case "", "table":
		return WriteTable(w, entries)
	case "text":
		return WriteBoardText(w, entries)
	case "json":
		return WriteBoardJSON(w, entries, true)
	case "pretty":
		return WriteBoardPretty(w, entries)
	default:
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidConfig, format)
	}
}
