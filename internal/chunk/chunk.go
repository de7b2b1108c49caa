// Package chunk expands a date range into the per-day slices a chunked
// run iterates over.
package chunk

import (
	"time"

	"queryrunner/internal/script"
)

// Daily returns every calendar day in [r.Start, r.End], ascending, both
// endpoints included. An inverted range yields nil rather than an error
// so a backwards script simply processes zero chunks.
func Daily(r script.DateRange) []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
