package lease

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeEndMonths(t *testing.T) {
	end, ok := ComputeEnd(date(2025, 1, 1), DurationMonths, 12)
	require.True(t, ok)
	require.Equal(t, date(2026, 1, 1), end)
}

func TestComputeEndDays(t *testing.T) {
	end, ok := ComputeEnd(date(2025, 1, 1), DurationDays, 90)
	require.True(t, ok)
	require.Equal(t, date(2025, 4, 1), end)
}

func TestComputeEndMissingInputs(t *testing.T) {
	_, ok := ComputeEnd(time.Time{}, DurationMonths, 12)
	require.False(t, ok)

	_, ok = ComputeEnd(date(2025, 1, 1), DurationMonths, 0)
	require.False(t, ok)

	_, ok = ComputeEnd(date(2025, 1, 1), DurationMonths, -3)
	require.False(t, ok)

	_, ok = ComputeEnd(date(2025, 1, 1), DurationKind("years"), 1)
	require.False(t, ok)
}

// For any valid start and month count, deriving the month count back from
// the computed end date must return the original value.
func TestDurationMonthsRoundTrip(t *testing.T) {
	starts := []time.Time{
		date(2025, 1, 1),
		date(2025, 1, 10),
		date(2025, 3, 15),
		date(2024, 2, 29),
		date(2025, 8, 31),
	}
	for _, start := range starts {
		for _, n := range []int{1, 2, 3, 6, 12, 24} {
			end, ok := ComputeEnd(start, DurationMonths, n)
			require.True(t, ok)
			require.Equal(t, n, ComputeDurationMonths(start, end),
				"start=%s n=%d end=%s", start.Format("2006-01-02"), n, end.Format("2006-01-02"))
		}
	}
}

func TestDurationMonthsNotReady(t *testing.T) {
	require.Equal(t, 0, ComputeDurationMonths(time.Time{}, date(2025, 6, 1)))
	require.Equal(t, 0, ComputeDurationMonths(date(2025, 6, 1), time.Time{}))
	require.Equal(t, 0, ComputeDurationMonths(date(2025, 6, 1), date(2025, 6, 1)))
	require.Equal(t, 0, ComputeDurationMonths(date(2025, 6, 1), date(2025, 5, 1)))
}

func TestDurationMonthsFloorOfOne(t *testing.T) {
	// Any positive interval resolves to at least one month.
	require.Equal(t, 1, ComputeDurationMonths(date(2025, 6, 1), date(2025, 6, 2)))
	require.Equal(t, 1, ComputeDurationMonths(date(2025, 6, 1), date(2025, 6, 15)))
}

func TestDurationMonthsDayApproximation(t *testing.T) {
	// 45 days / 30 rounds to 2, 44 days rounds to 1.
	require.Equal(t, 2, ComputeDurationMonths(date(2025, 1, 1), date(2025, 2, 15)))
	require.Equal(t, 1, ComputeDurationMonths(date(2025, 1, 1), date(2025, 2, 14)))
}

func TestPeriodMonths(t *testing.T) {
	p := Period{Start: date(2025, 1, 1), Kind: DurationMonths, Value: 12}
	require.Equal(t, 12, p.Months())

	require.Equal(t, 0, Period{}.Months())
	require.Equal(t, 0, Period{Start: date(2025, 1, 1), Kind: DurationMonths}.Months())
}
