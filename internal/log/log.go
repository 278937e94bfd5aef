package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level represents the debug verbosity.
type Level int

const (
	// Off disables all debug output.
	Off Level = iota
	// Basic shows request-level events.
	Basic
	// Detailed shows session and routing decisions.
	Detailed
	// Trace shows individual rule hits.
	Trace
	// Wire shows raw payloads.
	Wire
)

var (
	mu     sync.RWMutex
	level  = Off
	output io.Writer = os.Stderr
)

// LevelFromInt converts an int to a Level, clamping to the known range.
func LevelFromInt(i int) Level {
	switch {
	case i <= 0:
		return Off
	case i == 1:
		return Basic
	case i == 2:
		return Detailed
	case i == 3:
		return Trace
	default:
		return Wire
	}
}

// SetLevel sets the global debug level.
func SetLevel(l Level) {
	mu.Lock()
	level = l
	mu.Unlock()
}

// GetLevel returns the current debug level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetOutput redirects debug output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	if w == nil {
		w = os.Stderr
	}
	output = w
	mu.Unlock()
}

// Debug writes a formatted message when the current level is at least l.
func Debug(l Level, format string, a ...interface{}) {
	mu.RLock()
	current, w := level, output
	mu.RUnlock()
	if current >= l && l > Off {
		fmt.Fprintf(w, "DEBUG: "+format, a...)
	}
}

// Log writes a formatted message unconditionally.
func Log(format string, a ...interface{}) {
	mu.RLock()
	w := output
	mu.RUnlock()
	fmt.Fprintf(w, format, a...)
}

func (l Level) String() string {
	switch l {
	case Off:
		return "off"
	case Basic:
		return "basic"
	case Detailed:
		return "detailed"
	case Trace:
		return "trace"
	case Wire:
		return "wire"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}
