package lease

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResizeGrowAppendsDefaults(t *testing.T) {
	s := NewScheduler(dec("300"))
	s.Resize(3)
	require.Len(t, s.Instruments, 3)
	for _, ins := range s.Instruments {
		require.Empty(t, ins.Number)
		require.True(t, ins.ValueDate.IsZero())
		require.Equal(t, "300", ins.Amount.String())
		require.Equal(t, InstrumentPending, ins.Status)
	}
}

func TestResizePreservesByPosition(t *testing.T) {
	s := NewScheduler(dec("300"))
	s.Resize(2)
	num := "CHQ-001"
	d := date(2025, 1, 10)
	require.NoError(t, s.Update(0, InstrumentPatch{Number: &num, ValueDate: &d}))

	s.Resize(5)
	require.Len(t, s.Instruments, 5)
	require.Equal(t, "CHQ-001", s.Instruments[0].Number)
	require.Equal(t, d, s.Instruments[0].ValueDate)
	require.Empty(t, s.Instruments[4].Number)

	s.Resize(1)
	require.Len(t, s.Instruments, 1)
	require.Equal(t, "CHQ-001", s.Instruments[0].Number)
}

func TestUpdateOutOfRange(t *testing.T) {
	s := NewScheduler(dec("300"))
	s.Resize(2)
	num := "x"
	require.Error(t, s.Update(-1, InstrumentPatch{Number: &num}))
	require.Error(t, s.Update(2, InstrumentPatch{Number: &num}))
}

func TestIncrementTrailingNumber(t *testing.T) {
	cases := []struct {
		code string
		i    int
		want string
	}{
		{"CHQ-2025-001", 3, "CHQ-2025-004"},
		{"ABC", 2, "ABC-3"},
		{"CHQ-001", 1, "CHQ-002"},
		{"CHQ-099", 1, "CHQ-100"},
		{"7", 5, "12"},
		{"A12B", 1, "A13B"},
		{"001122", 1, "001123"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, IncrementTrailingNumber(tc.code, tc.i), "code=%q i=%d", tc.code, tc.i)
	}
}

func TestUnifyFromFirst(t *testing.T) {
	s := NewScheduler(dec("300"))
	s.Resize(3)
	num := "CHQ-001"
	d := date(2025, 1, 10)
	require.NoError(t, s.Update(0, InstrumentPatch{Number: &num, ValueDate: &d}))

	require.NoError(t, s.UnifyFromFirst())
	require.Equal(t, Unified, s.State())

	require.Equal(t, "CHQ-002", s.Instruments[1].Number)
	require.Equal(t, date(2025, 2, 10), s.Instruments[1].ValueDate)
	require.Equal(t, "CHQ-003", s.Instruments[2].Number)
	require.Equal(t, date(2025, 3, 10), s.Instruments[2].ValueDate)
}

func TestUnifyRequiresAnchor(t *testing.T) {
	s := NewScheduler(dec("300"))
	require.Error(t, s.UnifyFromFirst())

	s.Resize(2)
	require.Error(t, s.UnifyFromFirst())

	num := "CHQ-001"
	require.NoError(t, s.Update(0, InstrumentPatch{Number: &num}))
	require.Error(t, s.UnifyFromFirst(), "date still missing")
}

func TestUnifyPromptFiresOncePerSession(t *testing.T) {
	s := NewScheduler(dec("300"))
	s.Resize(3)
	num := "CHQ-001"
	d := date(2025, 1, 10)
	require.NoError(t, s.Update(0, InstrumentPatch{Number: &num, ValueDate: &d}))

	s.Focus(1)
	require.Equal(t, PendingUnifyPrompt, s.State())

	s.DeclineUnify()
	require.Equal(t, Collecting, s.State())

	// Declined once: the nudge never fires again, whatever gets edited.
	s.Focus(1)
	require.Equal(t, Collecting, s.State())
}

func TestUnifyPromptNeedsFilledFirstInstrument(t *testing.T) {
	s := NewScheduler(dec("300"))
	s.Resize(3)

	// First cheque still empty: focusing the second must not prompt,
	// and must not burn the one-shot flag either.
	s.Focus(1)
	require.Equal(t, Collecting, s.State())

	num := "CHQ-001"
	d := date(2025, 1, 10)
	require.NoError(t, s.Update(0, InstrumentPatch{Number: &num, ValueDate: &d}))

	s.Focus(0)
	require.Equal(t, Collecting, s.State())
	s.Focus(1)
	require.Equal(t, PendingUnifyPrompt, s.State())

	require.NoError(t, s.AcceptUnify())
	require.Equal(t, Unified, s.State())
	require.Equal(t, "CHQ-002", s.Instruments[1].Number)
}

func TestAcceptUnifyWithoutPrompt(t *testing.T) {
	s := NewScheduler(dec("300"))
	s.Resize(2)
	require.Error(t, s.AcceptUnify())
}

func TestFirstIncomplete(t *testing.T) {
	s := NewScheduler(dec("300"))
	s.Resize(2)
	require.Equal(t, 0, s.FirstIncomplete())

	num := "CHQ-001"
	d := date(2025, 1, 10)
	require.NoError(t, s.Update(0, InstrumentPatch{Number: &num, ValueDate: &d}))
	require.Equal(t, 1, s.FirstIncomplete())

	num2 := "CHQ-002"
	d2 := date(2025, 2, 10)
	require.NoError(t, s.Update(1, InstrumentPatch{Number: &num2, ValueDate: &d2}))
	require.Equal(t, -1, s.FirstIncomplete())

	zero := dec("0")
	require.NoError(t, s.Update(1, InstrumentPatch{Amount: &zero}))
	require.Equal(t, 1, s.FirstIncomplete(), "non-positive amount is incomplete")
}

func TestResizeAfterRentChange(t *testing.T) {
	s := NewScheduler(dec("300"))
	s.Resize(1)
	s.SetMonthlyRent(dec("350"))
	s.Resize(2)

	require.Equal(t, "300", s.Instruments[0].Amount.String())
	require.Equal(t, "350", s.Instruments[1].Amount.String())
	require.True(t, s.Instruments[1].ValueDate.Equal(time.Time{}))
}
