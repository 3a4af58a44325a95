package cutoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolve_MidYear(t *testing.T) {
	w, err := Resolve(3, 2026)

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 3, 27, 23, 59, 59, 999_000_000, time.UTC), w.End)
}

func TestResolve_JanuaryWrapsToPreviousYear(t *testing.T) {
	w, err := Resolve(1, 2026)

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 1, 27, 23, 59, 59, 999_000_000, time.UTC), w.End)
}

func TestResolve_AllMonthsStartOn28th(t *testing.T) {
	for month := 2; month <= 12; month++ {
		w, err := Resolve(month, 2026)

		assert.NoError(t, err)
		assert.Equal(t, 28, w.Start.Day())
		assert.Equal(t, time.Month(month-1), w.Start.Month())
		assert.Equal(t, 2026, w.Start.Year())
		assert.Equal(t, 27, w.End.Day())
		assert.Equal(t, time.Month(month), w.End.Month())
	}
}

func TestResolve_InvalidPeriod(t *testing.T) {
	for _, tc := range []struct{ month, year int }{
		{0, 2026},
		{13, 2026},
		{-1, 2026},
		{5, 0},
		{5, 10000},
	} {
		_, err := Resolve(tc.month, tc.year)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	}
}

func TestWindow_ContainsIsInclusive(t *testing.T) {
	w, err := Resolve(1, 2026)
	assert.NoError(t, err)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.True(t, w.Contains(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(w.Start.Add(-time.Millisecond)))
	assert.False(t, w.Contains(time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)))
}
