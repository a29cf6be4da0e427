package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the header and rows of t as CSV.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(t.Header))
	for i, row := range t.Rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, cellText(cell))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
