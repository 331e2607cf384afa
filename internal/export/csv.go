package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes rows with standard quoting: fields holding a comma, a quote
// or a line break are quoted and inner quotes doubled.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// CSVString renders rows as one CSV document.
func CSVString(rows []Row) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}
