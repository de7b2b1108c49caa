// Command queryrunner executes SQL statements from a script file against
// a MySQL database and saves result sets to CSV. Scripts that assign the
// @start_date and @end_date session variables are replayed day by day
// across that range to keep individual result sets small.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"queryrunner/internal/config"
	"queryrunner/internal/csvout"
	"queryrunner/internal/runlog"
	"queryrunner/internal/runner"
	"queryrunner/internal/script"
)

var (
	scriptFile string
	outputDir  string
)

var rootCmd = &cobra.Command{
	Use:   "queryrunner",
	Short: "Execute SQL statements from a file and save results to CSV",
	Long: `queryrunner reads a semicolon-separated SQL script, runs it against a
MySQL database and writes every result set to a CSV file.

When the script assigns both @start_date and @end_date to ISO dates, the
whole statement sequence is re-run once per calendar day in that range
with the two assignments rewritten to the current day, and all rows are
combined into a single CSV. Connection parameters come from the
environment (or a .env file): DB_HOST, DB_PORT, DB_USER, DB_PASSWORD,
DB_NAME.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&scriptFile, "file", "f", "", "path to SQL script (auto-detects the first *.sql in the working directory if omitted)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "output", "output directory for CSV files")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("✗ %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path, err := resolveScript(scriptFile)
	if err != nil {
		return err
	}

	logrus.Infof("Reading SQL script: %s", path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script %s: %w", path, err)
	}
	scriptText := string(raw)

	stmts := script.Split(scriptText)
	logrus.Infof("✓ Found %d statement(s)", len(stmts))

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect to database %s: %w", cfg.Database, err)
	}
	logrus.Infof("✓ Connected to database: %s", cfg.Database)

	if err := csvout.EnsureDir(outputDir); err != nil {
		return err
	}

	exec := runner.New(db, outputDir)
	start := time.Now()
	status := runlog.StatusSuccess
	var runErr error

	if r, ok := script.ExtractDateRange(stmts); ok {
		if _, _, err := exec.RunChunked(ctx, stmts, r); err != nil {
			status = runlog.StatusFailure
			runErr = err
		}
	} else {
		warnPartialMarkers(stmts)
		succeeded, failed := exec.RunSingle(ctx, stmts)
		logrus.Infof("Summary: %d/%d statement(s) executed successfully", succeeded, len(stmts))
		if failed > 0 {
			status = runlog.StatusFailure
		}
	}

	entry := runlog.Entry{
		Start:  start,
		End:    time.Now(),
		Status: status,
		Script: scriptText,
	}
	// A broken run log must not overturn the outcome of the run itself.
	if err := runlog.Append(entry); err != nil {
		logrus.Warnf("Run log not written: %v", err)
	}

	logrus.Infof("🎯 Done in %s, status: %s", time.Since(start).Round(10*time.Millisecond), status)
	return runErr
}

// resolveScript returns the explicit script path when given, otherwise
// the first *.sql file (by name) in the working directory. When several
// candidates exist the full list is printed along with the chosen one.
func resolveScript(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("script file not found: %s", explicit)
		}
		return explicit, nil
	}

	matches, err := filepath.Glob("*.sql")
	if err != nil {
		return "", fmt.Errorf("scan working directory: %w", err)
	}
	sort.Strings(matches)

	if len(matches) == 0 {
		return "", fmt.Errorf("no .sql files found in current directory (create one or pass -f)")
	}
	if len(matches) > 1 {
		logrus.Infof("Found %d SQL files:", len(matches))
		for i, m := range matches {
			logrus.Infof("  %d. %s", i+1, m)
		}
		logrus.Infof("Using: %s (pass -f to pick another)", matches[0])
	}
	return matches[0], nil
}

// warnPartialMarkers flags scripts that assign only one of the two date
// markers: the author probably wanted chunked mode, but it needs both.
func warnPartialMarkers(stmts []script.Statement) {
	start, end := script.FoundMarkers(stmts)
	if start == end {
		return
	}
	found := "@start_date"
	if end {
		found = "@end_date"
	}
	logrus.Warnf("Only the %s marker was found; both @start_date and @end_date are needed for day chunking, running statements as-is", found)
}
