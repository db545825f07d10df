package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV renders one row per finding, in first-seen order.
func (r *Report) WriteCSV(w io.Writer) error {
	out := csv.NewWriter(w)

	header := []string{"file", "line", "column", "severity", "check", "message"}
	if err := out.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, diag := range r.Collection.Diagnostics() {
		row := []string{
			r.DisplayPath(diag.File),
			strconv.Itoa(diag.Line),
			strconv.Itoa(diag.Column),
			diag.Severity.String(),
			diag.Check,
			diag.Message,
		}

		if err := out.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	out.Flush()

	if err := out.Error(); err != nil {
		return fmt.Errorf("flushing CSV report: %w", err)
	}

	return nil
}
