package message

import (
	"fmt"
	"strings"
	"sync"
)

type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelTitle   Level = "title"
	LevelPlain   Level = "plain"
)

type Entry struct {
	Level Level
	Text  string
}

// Recorder is a Sink that keeps every line in memory.
type Recorder struct {
	mu      sync.Mutex
	Entries []Entry
}

func (r *Recorder) add(level Level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, Entry{Level: level, Text: fmt.Sprintf(format, args...)})
}

func (r *Recorder) Debug(format string, args ...any)   { r.add(LevelDebug, format, args...) }
func (r *Recorder) Info(format string, args ...any)    { r.add(LevelInfo, format, args...) }
func (r *Recorder) Warning(format string, args ...any) { r.add(LevelWarning, format, args...) }
func (r *Recorder) Success(format string, args ...any) { r.add(LevelSuccess, format, args...) }
func (r *Recorder) Error(format string, args ...any)   { r.add(LevelError, format, args...) }
func (r *Recorder) Title(format string, args ...any)   { r.add(LevelTitle, format, args...) }
func (r *Recorder) Plain(format string, args ...any)   { r.add(LevelPlain, format, args...) }

// Lines returns the text of every entry recorded at level.
func (r *Recorder) Lines(level Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var lines []string
	for _, e := range r.Entries {
		if e.Level == level {
			lines = append(lines, e.Text)
		}
	}
	return lines
}

// Contains reports whether any entry at level contains substr.
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, line := range r.Lines(level) {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
