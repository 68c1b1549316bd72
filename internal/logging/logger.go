package logging

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Logger serializes leveled log lines from concurrent album workers.
type Logger struct {
	mu      sync.Mutex
	l       *log.Logger
	verbose bool
}

// New creates a logger writing to w. Debug lines are dropped unless verbose.
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{
		l:       log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds),
		verbose: verbose,
	}
}

// Debugf writes a diagnostic message when verbose logging is on.
func (lg *Logger) Debugf(format string, args ...any) {
	if !lg.verbose {
		return
	}
	lg.logf("DEBUG", format, args...)
}

// Infof writes an informational message.
func (lg *Logger) Infof(format string, args ...any) {
	lg.logf("INFO ", format, args...)
}

// Warnf writes a warning message.
func (lg *Logger) Warnf(format string, args ...any) {
	lg.logf("WARN ", format, args...)
}

// Errorf writes an error message.
func (lg *Logger) Errorf(format string, args ...any) {
	lg.logf("ERROR", format, args...)
}

func (lg *Logger) logf(level, format string, args ...any) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.l.Printf("%s %s", level, fmt.Sprintf(format, args...))
}
