// Package runlog appends one audit record per invocation to a persistent
// CSV log. The log is append-only; prior entries are never rewritten.
package runlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Run statuses recorded in the log.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// DefaultPath is the well-known log location relative to the working
// directory.
var DefaultPath = filepath.Join("logs", "query_runner_log.csv")

var header = []string{"date", "start_time", "end_time", "elapsed_seconds", "status", "script"}

const timestampLayout = "2006-01-02 15:04:05"

// Entry is one invocation's outcome.
type Entry struct {
	Start  time.Time
	End    time.Time
	Status string
	Script string
}

// Append writes one record to the log at DefaultPath, creating the file
// and its header on first use.
func Append(e Entry) error {
	return AppendTo(DefaultPath, e)
}

// AppendTo is Append against an explicit path.
func AppendTo(path string, e Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat run log %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write run log header: %w", err)
		}
	}

	record := []string{
		e.Start.Format("2006-01-02"),
		e.Start.Format(timestampLayout),
		e.End.Format(timestampLayout),
		fmt.Sprintf("%.2f", e.End.Sub(e.Start).Seconds()),
		e.Status,
		e.Script,
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write run log record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush run log: %w", err)
	}
	return nil
}
