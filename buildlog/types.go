// Package buildlog records compile/build events and exports them as
// JSONL or CSV so build history can be inspected and mined offline.
package buildlog

import (
	"sort"
	"time"
)

// Event is a single record in a build log: one thing that happened to
// one script during one build run.
type Event struct {
	BuildID   string    `json:"build_id"`
	Script    string    `json:"script"`
	Stage     string    `json:"stage"`    // validate, compile, assemble
	Severity  string    `json:"severity"` // info, warning, notice, error
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is an append-only collection of build events.
type Log struct {
	Events []Event
}

// NewLog creates an empty build log.
func NewLog() *Log {
	return &Log{Events: make([]Event, 0)}
}

// Add appends an event, stamping the current time if unset.
func (l *Log) Add(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	l.Events = append(l.Events, e)
}

// CountBySeverity returns the number of events per severity.
func (l *Log) CountBySeverity() map[string]int {
	counts := make(map[string]int)
	for _, e := range l.Events {
		counts[e.Severity]++
	}
	return counts
}

// Scripts returns the sorted list of distinct script names in the log.
func (l *Log) Scripts() []string {
	seen := make(map[string]bool)
	for _, e := range l.Events {
		if e.Script != "" {
			seen[e.Script] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// FilterSeverity returns the events with the given severity, in order.
func (l *Log) FilterSeverity(severity string) []Event {
	var out []Event
	for _, e := range l.Events {
		if e.Severity == severity {
			out = append(out, e)
		}
	}
	return out
}
