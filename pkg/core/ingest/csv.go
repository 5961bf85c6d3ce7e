// Package ingest decodes uploaded documents into the two shapes the
// extraction router accepts: row-oriented records (CSV) or a text blob
// (PDF, HTML, plain text). It is deliberately forgiving: a garbled document
// becomes a best-effort text blob, never an abort.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"dealscope/pkg/models"
)

// DecodeCSV reads a CSV stream into raw records keyed by the header row.
// Column headers are kept verbatim; normalization is the extractor's job.
func DecodeCSV(r io.Reader) ([]models.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows []models.RawRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip the malformed row and keep going.
			continue
		}

		row := make(models.RawRecord, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// DecodeCSVFile reads a CSV document from disk.
func DecodeCSVFile(path string) ([]models.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeCSV(f)
}
