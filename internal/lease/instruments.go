// internal/lease/instruments.go
package lease

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentStatus is the lifecycle state of one post-dated cheque.
type InstrumentStatus string

const (
	InstrumentPending  InstrumentStatus = "pending"
	InstrumentCleared  InstrumentStatus = "cleared"
	InstrumentReturned InstrumentStatus = "returned"
	InstrumentRefunded InstrumentStatus = "refunded"
)

// Instrument is one post-dated payment instrument (cheque) in the schedule.
// ImageRef is an opaque reference produced by the host's upload layer; the
// engine only cares whether it is present.
type Instrument struct {
	Number    string           `json:"number"`
	ValueDate time.Time        `json:"valueDate"`
	Amount    decimal.Decimal  `json:"amount"`
	Status    InstrumentStatus `json:"status"`
	ImageRef  string           `json:"imageRef,omitempty"`
}

// InstrumentPatch carries a partial edit to one instrument.
type InstrumentPatch struct {
	Number    *string
	ValueDate *time.Time
	Amount    *decimal.Decimal
	Status    *InstrumentStatus
	ImageRef  *string
}

// SchedulerState names the per-session state of the cheque schedule.
// The unify prompt is a one-shot nudge: once it has fired, declining it
// returns the schedule to Collecting for good.
type SchedulerState string

const (
	// Collecting: the schedule length tracks the contract term and the user
	// is filling cheques in one by one.
	Collecting SchedulerState = "collecting"
	// PendingUnifyPrompt: the host should ask the user whether to derive the
	// remaining cheques from the first one.
	PendingUnifyPrompt SchedulerState = "pending_unify_prompt"
	// Unified: every cheque after the first was regenerated from the anchor.
	Unified SchedulerState = "unified"
)

// Scheduler maintains the ordered cheque collection for one lease-editing
// session. Its length is pinned to the contract term in months; the host must
// apply Resize after every term change before accepting further cheque edits.
type Scheduler struct {
	Instruments []Instrument

	monthlyRent decimal.Decimal
	state       SchedulerState
	askedOnce   bool
}

// NewScheduler creates an empty schedule. monthlyRent is the default amount
// newly appended cheques are created with.
func NewScheduler(monthlyRent decimal.Decimal) *Scheduler {
	return &Scheduler{monthlyRent: monthlyRent, state: Collecting}
}

// State exposes the current session state for the host UI.
func (s *Scheduler) State() SchedulerState { return s.state }

// SetMonthlyRent updates the default amount used for cheques appended by
// future Resize calls. Already-created cheques keep their amounts.
func (s *Scheduler) SetMonthlyRent(rent decimal.Decimal) { s.monthlyRent = rent }

// Resize pins the schedule length to n. Growing appends default cheques
// (no number, no date, amount = current monthly rent, status pending);
// shrinking truncates from the tail, discarding whatever was entered there.
// Existing entries are preserved by position.
func (s *Scheduler) Resize(n int) {
	if n < 0 {
		n = 0
	}
	for len(s.Instruments) < n {
		s.Instruments = append(s.Instruments, Instrument{
			Amount: s.monthlyRent,
			Status: InstrumentPending,
		})
	}
	if len(s.Instruments) > n {
		s.Instruments = s.Instruments[:n]
	}
}

var errInstrumentIndex = errors.New("instrument index out of range")

// Update applies a patch to the cheque at index i.
func (s *Scheduler) Update(i int, patch InstrumentPatch) error {
	if i < 0 || i >= len(s.Instruments) {
		return errInstrumentIndex
	}
	ins := &s.Instruments[i]
	if patch.Number != nil {
		ins.Number = *patch.Number
	}
	if patch.ValueDate != nil {
		ins.ValueDate = *patch.ValueDate
	}
	if patch.Amount != nil {
		ins.Amount = *patch.Amount
	}
	if patch.Status != nil {
		ins.Status = *patch.Status
	}
	if patch.ImageRef != nil {
		ins.ImageRef = *patch.ImageRef
	}
	return nil
}

// Focus is the "instrument received input focus" event. The unify prompt
// fires exactly once per session: when the second cheque is focused for the
// first time and the first cheque already has both a number and a date.
func (s *Scheduler) Focus(i int) {
	if s.state != Collecting || s.askedOnce {
		return
	}
	if i != 1 || len(s.Instruments) < 2 {
		return
	}
	first := s.Instruments[0]
	if first.Number == "" || first.ValueDate.IsZero() {
		return
	}
	s.state = PendingUnifyPrompt
	s.askedOnce = true
}

// AcceptUnify confirms the prompt and runs the unification.
func (s *Scheduler) AcceptUnify() error {
	if s.state != PendingUnifyPrompt {
		return errors.New("no unify prompt is pending")
	}
	return s.UnifyFromFirst()
}

// DeclineUnify dismisses the prompt; it will not fire again this session.
func (s *Scheduler) DeclineUnify() {
	if s.state == PendingUnifyPrompt {
		s.state = Collecting
	}
}

// UnifyFromFirst takes the first cheque's date and number as the anchor and
// rewrites every subsequent cheque: the i-th (1-based from the second) gets
// valueDate = anchor date + i calendar months and the anchor number with its
// trailing digit run incremented by i.
func (s *Scheduler) UnifyFromFirst() error {
	if len(s.Instruments) == 0 {
		return errors.New("schedule is empty")
	}
	anchor := s.Instruments[0]
	if anchor.Number == "" || anchor.ValueDate.IsZero() {
		return errors.New("first cheque must have a number and a date")
	}
	for i := 1; i < len(s.Instruments); i++ {
		s.Instruments[i].ValueDate = anchor.ValueDate.AddDate(0, i, 0)
		s.Instruments[i].Number = IncrementTrailingNumber(anchor.Number, i)
	}
	s.state = Unified
	return nil
}

// FirstIncomplete returns the index of the first cheque missing a number, a
// date or a positive amount, or -1 when the schedule is complete. Checked at
// submission time, not eagerly.
func (s *Scheduler) FirstIncomplete() int {
	for i, ins := range s.Instruments {
		if ins.Number == "" || ins.ValueDate.IsZero() || !ins.Amount.IsPositive() {
			return i
		}
	}
	return -1
}

var trailingDigits = regexp.MustCompile(`\d+`)

// IncrementTrailingNumber locates the last contiguous run of digits in code
// and increments its numeric value by i, re-padding with leading zeros to the
// original width. Text around the digit run is preserved unchanged. When code
// contains no digits at all, "-{i+1}" is appended as a fallback suffix.
func IncrementTrailingNumber(code string, i int) string {
	runs := trailingDigits.FindAllStringIndex(code, -1)
	if len(runs) == 0 {
		return fmt.Sprintf("%s-%d", code, i+1)
	}
	lo, hi := runs[len(runs)-1][0], runs[len(runs)-1][1]
	n, err := strconv.ParseInt(code[lo:hi], 10, 64)
	if err != nil {
		// Digit run too long to parse as a number; leave the code alone.
		return fmt.Sprintf("%s-%d", code, i+1)
	}
	width := hi - lo
	return code[:lo] + fmt.Sprintf("%0*d", width, n+int64(i)) + code[hi:]
}
