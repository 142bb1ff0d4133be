package buildlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"
)

// csvHeader is the fixed column layout for CSV export.
var csvHeader = []string{"build_id", "script", "stage", "severity", "message", "timestamp"}

// WriteCSV writes the log as CSV with a header row.
func WriteCSV(w io.Writer, l *Log) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range l.Events {
		record := []string{
			e.BuildID,
			e.Script,
			e.Stage,
			e.Severity,
			e.Message,
			e.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing event %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the log to a CSV file.
func SaveCSV(filename string, l *Log) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, l); err != nil {
		return err
	}
	return f.Close()
}

// ParseCSVReader parses a build log from a CSV stream produced by
// WriteCSV. The header row is required.
func ParseCSVReader(r io.Reader) (*Log, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected header with %d columns", len(header))
	}

	l := NewLog()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, record[5])
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", record[5], err)
		}
		l.Events = append(l.Events, Event{
			BuildID:   record[0],
			Script:    record[1],
			Stage:     record[2],
			Severity:  record[3],
			Message:   record[4],
			Timestamp: ts,
		})
	}
	return l, nil
}
