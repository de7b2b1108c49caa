// Package runner executes script statements against the database and
// spools the results to CSV. It has two modes: single-pass, where every
// statement runs once, and chunked, where a date-ranged script is replayed
// once per calendar day with the range markers rewritten to that day.
package runner

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"queryrunner/internal/chunk"
	"queryrunner/internal/csvout"
	"queryrunner/internal/script"
)

// ResultSet accumulates rows across chunks. Columns are captured from the
// first statement that describes any and are never re-validated; the
// script is assumed to be schema-stable across days.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

// Executor runs statements over a single long-lived connection pool.
// Execution is strictly sequential; one statement is in flight at a time.
type Executor struct {
	db     *sql.DB
	outDir string
}

func New(db *sql.DB, outDir string) *Executor {
	return &Executor{db: db, outDir: outDir}
}

// RunSingle executes each statement once. A failing statement is logged
// and counted but does not stop the remaining statements. Every statement
// that returns a result set gets its own CSV file.
func (e *Executor) RunSingle(ctx context.Context, stmts []script.Statement) (succeeded, failed int) {
	for i, stmt := range stmts {
		logrus.Infof("[%d/%d] Executing statement...", i+1, len(stmts))

		cols, rows, err := e.runStatement(ctx, stmt)
		if err != nil {
			logrus.Errorf("✗ Statement %d failed: %v (statement: %s)", i+1, err, truncate(stmt))
			failed++
			continue
		}
		if len(cols) == 0 {
			logrus.Infof("✓ Statement %d executed, no result set", i+1)
			succeeded++
			continue
		}

		outFile := filepath.Join(e.outDir, fmt.Sprintf("query_%d_%s.csv", i+1, timestamp()))
		if _, err := csvout.Write(outFile, cols, rows); err != nil {
			logrus.Errorf("✗ Statement %d: %v", i+1, err)
			failed++
			continue
		}
		logrus.Infof("✓ Statement %d: %d rows written to %s", i+1, len(rows), outFile)
		succeeded++
	}
	return succeeded, failed
}

// RunChunked replays the statement sequence once per day in the range,
// rewriting the date marker assignments to that day's bounds on every
// iteration, and combines all returned rows into one CSV. Any database
// error aborts the whole run and no partial file is written.
//
// All rows are held in memory until the range is done, which caps the
// practical range size; the trade is bounded per-query result sets in
// exchange for one round trip per day.
func (e *Executor) RunChunked(ctx context.Context, stmts []script.Statement, r script.DateRange) (csvPath string, rowCount int, err error) {
	days := chunk.Daily(r)
	total := len(days)
	logrus.Infof("Chunked mode: %s → %s, %d day(s)", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), total)

	var acc ResultSet
	for i, day := range days {
		for _, stmt := range stmts {
			if script.IsAssignment(stmt) {
				rewritten := script.RewriteForDay(stmt, day)
				if _, _, err := e.runStatement(ctx, rewritten); err != nil {
					return "", 0, fmt.Errorf("day %s: assignment failed: %w (statement: %s)", day.Format("2006-01-02"), err, truncate(rewritten))
				}
				continue
			}

			cols, rows, err := e.runStatement(ctx, stmt)
			if err != nil {
				return "", 0, fmt.Errorf("day %s: statement failed: %w (statement: %s)", day.Format("2006-01-02"), err, truncate(stmt))
			}
			if acc.Columns == nil && len(cols) > 0 {
				acc.Columns = cols
			}
			acc.Rows = append(acc.Rows, rows...)
		}

		if (i+1)%10 == 0 || i+1 == total {
			logrus.Infof("Processed %d/%d chunks, %d rows accumulated", i+1, total, len(acc.Rows))
		}
	}

	if acc.Columns == nil {
		logrus.Info("Chunked run produced no result set")
		return "", 0, nil
	}

	outFile := filepath.Join(e.outDir, fmt.Sprintf("query_combined_%s.csv", timestamp()))
	if _, err := csvout.Write(outFile, acc.Columns, acc.Rows); err != nil {
		return "", 0, err
	}
	logrus.Infof("📝 Wrote combined file: %s (%d rows)", outFile, len(acc.Rows))
	return outFile, len(acc.Rows), nil
}

// runStatement executes one statement and drains its result. A statement
// with no describable result (an assignment, DDL and the like) returns
// nil columns; NULL values render as empty strings.
func (e *Executor) runStatement(ctx context.Context, stmt script.Statement) ([]string, [][]string, error) {
	rows, err := e.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	if len(cols) == 0 {
		return nil, nil, nil
	}

	var out [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		scanArgs := make([]interface{}, len(cols))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, nil, err
		}
		strValues := make([]string, len(values))
		for i, v := range values {
			if v.Valid {
				strValues[i] = v.String
			}
		}
		out = append(out, strValues)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return cols, out, nil
}

func timestamp() string {
	return time.Now().Format("20060102_150405")
}

func truncate(stmt script.Statement) string {
	const max = 100
	if len(stmt) <= max {
		return stmt
	}
	return stmt[:max] + "..."
}
