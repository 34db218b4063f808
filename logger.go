package main

import (
	"strings"
)

// Logger is a scrollback buffer shown in the on-screen log panel.
type Logger struct {
	// buf contains each line of logged text.
	buf []string

	// pos is the current user read position within the log.
	pos int
}

var (
	// Output is the log panel buffer.
	Output = &Logger{buf: make([]string, 0, 100)}
)

// Log outputs a new line to the log panel.
func Log(s ...string) {
	Output.Log(s...)
}

// Logln outputs a new line to the log panel, with an empty line
// prefixed.
func Logln(s ...string) {
	Output.Logln(s...)
}

// Log outputs a new line to the log.
func (log *Logger) Log(s ...string) {
	scroll := log.pos == len(log.buf)

	// add the new line
	log.buf = append(log.buf, strings.Join(s, " "))

	if scroll {
		log.pos = len(log.buf)
	}
}

// Logln outputs a new line to the log, with an empty line prefixed.
func (log *Logger) Logln(s ...string) {
	scroll := log.pos == len(log.buf)

	// append the lines
	log.buf = append(log.buf, "", strings.Join(s, " "))

	if scroll {
		log.pos = len(log.buf)
	}
}

// Window returns the n lines ending at the read position, or the first
// n lines when the read position is within the first window.
func (log *Logger) Window(n int) []string {
	start := log.pos - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	if start+n >= len(log.buf) {
		return log.buf[start:]
	}

	return log.buf[start : start+n]
}

// Home scrolls the log to the beginning.
func (log *Logger) Home() {
	log.pos = 0
}

// End scrolls the log to the end.
func (log *Logger) End() {
	log.pos = len(log.buf)
}

// ScrollUp scrolls the log back one position.
func (log *Logger) ScrollUp() {
	log.pos -= 1

	// clamp to home
	if log.pos < 0 {
		log.Home()
	}
}

// ScrollDown scrolls the log forward one position.
func (log *Logger) ScrollDown(windowSize int) {
	log.pos += 1

	// if within the first window, move just past it
	if log.pos <= windowSize {
		log.pos = windowSize + 1
	}

	// clamp to the end
	if log.pos >= len(log.buf) {
		log.End()
	}
}
