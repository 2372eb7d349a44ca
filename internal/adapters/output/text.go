// internal/adapters/output/text.go
package output

import (
	"fmt"
	"io"

	"openhours/internal/core/domain"
	"openhours/internal/core/usecases"
)

// WriteText imprime solo la frase, tal como la diría el asistente de voz.
func WriteText(w io.Writer, report *domain.StatusReport, err error) error {
	if report == nil || report.Message == "" {
		if err == nil {
			return nil
		}
		_, werr := fmt.Fprintln(w, err.Error())
		return werr
	}
	_, werr := fmt.Fprintln(w, report.Message)
	return werr
}

// WriteBoardText imprime una frase por facility.
func WriteBoardText(w io.Writer, entries []usecases.BoardEntry) error {
	for _, e := range entries {
		if err := WriteText(w, e.Report, e.Err); err != nil {
			return err
		}
	}
	return nil
}
