package buildlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSONL writes the log as JSON Lines: one event object per line.
func WriteJSONL(w io.Writer, l *Log) error {
	enc := json.NewEncoder(w)
	for i, e := range l.Events {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encoding event %d: %w", i, err)
		}
	}
	return nil
}

// SaveJSONL writes the log to a JSONL file.
func SaveJSONL(filename string, l *Log) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := WriteJSONL(f, l); err != nil {
		return err
	}
	return f.Close()
}

// ParseJSONL parses a build log from a JSONL file.
func ParseJSONL(filename string) (*Log, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ParseJSONLReader(f)
}

// ParseJSONLReader parses a build log from a JSONL stream.
// Blank lines are skipped; a malformed line is an error naming its
// line number.
func ParseJSONLReader(r io.Reader) (*Log, error) {
	l := NewLog()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		l.Events = append(l.Events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	return l, nil
}
