package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	out     io.Writer
	closer  io.Closer
	mu      sync.Mutex
	enabled bool

	counters = make(map[string]int)
)

// DefaultPath returns ~/.config/go-pianoroll/debug.log
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "debug.log"
	}
	return filepath.Join(home, ".config", "go-pianoroll", "debug.log")
}

// Enable starts debug logging to path (truncated). Empty path means DefaultPath.
func Enable(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	out, closer, enabled = f, f, true
	writeLocked("debug", "=== debug logging started ===")
	return nil
}

// SetOutput logs to w instead of a file (tests, stderr). nil disables.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	out, enabled = w, w != nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	enabled = false
}

// Enabled reports whether Log writes anywhere
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a category-tagged line: "[15:04:05.000] mode       text"
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled || out == nil {
		return
	}
	writeLocked(category, fmt.Sprintf(format, args...))
}

// LogEvery logs only every n-th call for a given category+format
// (pointer motion, frame ticks)
func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if n > 0 && count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}

func writeLocked(category, msg string) {
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(out, "[%s] %-10s %s\n", ts, category, msg)
	if f, ok := out.(*os.File); ok {
		f.Sync() // flush so lines survive a crash
	}
}

func closeLocked() {
	if closer != nil {
		closer.Close()
		closer = nil
	}
	out = nil
}
