package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Dataset defines tabular export content. Rows are keyed by header; missing keys render empty.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter streams a Dataset as CSV.
type CSVExporter struct {
	// EscapeFormulas prefixes cells that a spreadsheet would evaluate with a single quote.
	EscapeFormulas bool
}

// NewCSVExporter builds a CSV exporter that escapes formula-like cells.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{EscapeFormulas: true}
}

// Render returns the CSV document as bytes.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the header line followed by one line per row into w.
func (e *CSVExporter) Write(w io.Writer, data Dataset) error {
	if len(data.Headers) == 0 {
		return fmt.Errorf("csv requires at least one header")
	}
	seen := make(map[string]struct{}, len(data.Headers))
	for _, h := range data.Headers {
		if _, dup := seen[h]; dup {
			return fmt.Errorf("csv header %q repeated", h)
		}
		seen[h] = struct{}{}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(data.Headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	record := make([]string, len(data.Headers))
	for n, row := range data.Rows {
		for i, h := range data.Headers {
			record[i] = e.cell(row[h])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", n, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func (e *CSVExporter) cell(v string) string {
	if e.EscapeFormulas && v != "" && strings.ContainsRune("=+-@", rune(v[0])) {
		return "'" + v
	}
	return v
}
