package cutoff

import (
	"net/http"
	"time"

	"go-payroll/internal/shared/apperror"
)

// The employer settles payroll on a fixed 28th-to-27th cycle instead of
// calendar months: the window for (month, year) runs from the 28th of the
// previous month through the 27th of the requested month, inclusive.

var ErrInvalidPeriod = apperror.New(
	apperror.CodeInvalidPeriod,
	"invalid period, expected month 1-12 and a four-digit year",
	http.StatusBadRequest,
)

// Window is a derived value, never persisted; both bounds are inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Resolve maps (month, year) to its settlement window in UTC.
// January wraps to December of the previous year.
func Resolve(month, year int) (Window, error) {
	if month < 1 || month > 12 || year < 1000 || year > 9999 {
		return Window{}, ErrInvalidPeriod
	}

	startMonth := month - 1
	startYear := year
	if startMonth == 0 {
		startMonth = 12
		startYear = year - 1
	}

	return Window{
		Start: time.Date(startYear, time.Month(startMonth), 28, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.Month(month), 27, 23, 59, 59, 999_000_000, time.UTC),
	}, nil
}
