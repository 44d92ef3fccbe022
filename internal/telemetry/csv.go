package telemetry

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// CSVWriter appends frame records, writing the header before the first one.
type CSVWriter struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// CreateCSV truncates or creates the file at path.
func CreateCSV(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &CSVWriter{w: f, closer: f}, nil
}

func (cw *CSVWriter) Write(rec FrameRecord) error {
	records := []FrameRecord{rec}
	if !cw.headerWritten {
		if err := gocsv.Marshal(records, cw.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		cw.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, cw.w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

func (cw *CSVWriter) Close() error {
	if cw == nil || cw.closer == nil {
		return nil
	}
	return cw.closer.Close()
}

// ReadCSV parses records previously written by a CSVWriter.
func ReadCSV(r io.Reader) ([]FrameRecord, error) {
	var recs []FrameRecord
	if err := gocsv.Unmarshal(r, &recs); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return recs, nil
}
