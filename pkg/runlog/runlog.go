// Package runlog maintains the append-only ledger of harvester day attempts.
// One line per attempted day, timestamped, tagged Success or Failure; the
// file is the operational record of which days have been backfilled.
package runlog

import (
	"fmt"
	"os"
	"time"
)

// Status tags written to the ledger.
const (
	StatusSuccess = "Success"
	StatusFailure = "Failure"
)

// Logger appends day-status lines to a log file. The file is opened per
// write so an external process kill never loses previously flushed lines.
type Logger struct {
	path string
	now  func() time.Time
}

// New creates a logger writing to the given path.
func New(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

// Record appends one status line for the given target date (YYYY-MM-DD).
func (l *Logger) Record(targetDate, status string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log %s: %w", l.path, err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s - Date: %s - Status: %s\n",
		l.now().Format("2006-01-02 15:04:05"), targetDate, status)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append to run log %s: %w", l.path, err)
	}
	return nil
}
