// Package script turns raw SQL text into executable statements and pulls
// the chunking date range out of session-variable assignments.
package script

import (
	"regexp"
	"strings"
	"time"
)

// Statement is one semicolon-delimited unit of the input script.
type Statement = string

// DateRange is the inclusive [Start, End] window taken from the script.
// Both bounds are date-only values at UTC midnight.
type DateRange struct {
	Start time.Time
	End   time.Time
}

const dateLayout = "2006-01-02"

// Splitting is purely lexical. A semicolon inside a string literal splits
// the statement too; scripts that need embedded semicolons are not
// supported.
var (
	startAssignRe = regexp.MustCompile(`(?i)set\s+@start_date\s*=\s*['"](\d{4}-\d{2}-\d{2})['"]`)
	endAssignRe   = regexp.MustCompile(`(?i)set\s+@end_date\s*=\s*['"](\d{4}-\d{2}-\d{2})['"]`)

	startRewriteRe = regexp.MustCompile(`(?i)(@start_date\s*=\s*)(['"])\d{4}-\d{2}-\d{2}(['"])`)
	endRewriteRe   = regexp.MustCompile(`(?i)(@end_date\s*=\s*)(['"])\d{4}-\d{2}-\d{2}(['"])`)
)

// Split breaks raw script text into trimmed, non-empty statements, in
// order. Empty fragments between semicolons are dropped.
func Split(text string) []Statement {
	var stmts []Statement
	for _, frag := range strings.Split(text, ";") {
		if stmt := strings.TrimSpace(frag); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// ExtractDateRange scans the statements for assignments of both date
// markers. The last assignment per marker wins. It reports ok=false when
// fewer than both markers are present or a matched date does not parse;
// it never fails otherwise.
func ExtractDateRange(stmts []Statement) (DateRange, bool) {
	var startText, endText string
	for _, stmt := range stmts {
		if m := startAssignRe.FindStringSubmatch(stmt); m != nil {
			startText = m[1]
		}
		if m := endAssignRe.FindStringSubmatch(stmt); m != nil {
			endText = m[1]
		}
	}
	if startText == "" || endText == "" {
		return DateRange{}, false
	}
	start, err := time.Parse(dateLayout, startText)
	if err != nil {
		return DateRange{}, false
	}
	end, err := time.Parse(dateLayout, endText)
	if err != nil {
		return DateRange{}, false
	}
	return DateRange{Start: start, End: end}, true
}

// FoundMarkers reports which of the two markers appear anywhere in the
// statements, so callers can warn when only one is present.
func FoundMarkers(stmts []Statement) (start, end bool) {
	for _, stmt := range stmts {
		if startAssignRe.MatchString(stmt) {
			start = true
		}
		if endAssignRe.MatchString(stmt) {
			end = true
		}
	}
	return start, end
}

// IsAssignment reports whether the statement assigns either date marker.
func IsAssignment(stmt Statement) bool {
	return startAssignRe.MatchString(stmt) || endAssignRe.MatchString(stmt)
}

// RewriteForDay replaces the quoted date literal in any start or end
// marker assignment with the given day, keeping the quote style and the
// rest of the statement untouched. Statements without a marker come back
// unchanged.
func RewriteForDay(stmt Statement, day time.Time) Statement {
	repl := "${1}${2}" + day.Format(dateLayout) + "${3}"
	stmt = startRewriteRe.ReplaceAllString(stmt, repl)
	stmt = endRewriteRe.ReplaceAllString(stmt, repl)
	return stmt
}
