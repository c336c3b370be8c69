// Package request holds query parameter parsing shared by the handlers.
package request

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

// DefaultWindow is the range used when no start_date is given.
const DefaultWindow = 30 * 24 * time.Hour

// DateRange reads the inclusive start_date and end_date query parameters
// (YYYY-MM-DD). end_date defaults to today and start_date to DefaultWindow
// before end_date.
func DateRange(r *http.Request, now time.Time) (time.Time, time.Time, error) {
	end := transaction.Day(now)

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date: %w", err)
		}

		end = t
	}

	start := end.Add(-DefaultWindow)

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date: %w", err)
		}

		start = t
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end_date must not be before start_date")
	}

	return start, end, nil
}
