package compiler

import "strings"

// indentUnit is one level of indentation in emitted code.
const indentUnit = "    "

// emitter accumulates generated code lines with indentation tracking.
// It is single-use compiler state, created fresh for each Compile call.
type emitter struct {
	lines []string
	level int
}

func newEmitter() *emitter {
	return &emitter{lines: make([]string, 0, 64)}
}

// emit appends a line prefixed by the current indentation level.
// Empty lines are emitted without trailing indentation.
func (e *emitter) emit(line string) {
	if line == "" {
		e.lines = append(e.lines, "")
		return
	}
	e.lines = append(e.lines, strings.Repeat(indentUnit, e.level)+line)
}

// indent increases the indentation level by one.
func (e *emitter) indent() {
	e.level++
}

// dedent decreases the indentation level by one. Dedenting below zero
// indicates a dispatch bug; the level is clamped so output stays readable.
func (e *emitter) dedent() {
	if e.level > 0 {
		e.level--
	}
}

// finalize joins all emitted lines into the final code text.
func (e *emitter) finalize() string {
	return strings.Join(e.lines, "\n")
}
