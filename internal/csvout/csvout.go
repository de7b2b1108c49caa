// Package csvout serializes result sets to CSV files.
package csvout

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
)

// EnsureDir creates the output directory if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return nil
}

// Write serializes a header and rows to path. A nil or empty header means
// the statement produced no result set at all; nothing is written and
// Write reports written=false with no error. A legitimate empty result
// still gets a file with just the header row, so "zero rows" and "no
// result set" stay distinguishable on disk.
func Write(path string, header []string, rows [][]string) (written bool, err error) {
	if len(header) == 0 {
		return false, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return false, fmt.Errorf("write header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return false, fmt.Errorf("write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return false, fmt.Errorf("flush %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		return false, fmt.Errorf("flush %s: %w", path, err)
	}
	return true, nil
}
