// internal/lease/surcharge.go
package lease

import (
	"errors"

	"github.com/shopspring/decimal"
)

// SurchargeMode tells what base a surcharge rate is applied against.
type SurchargeMode string

const (
	// ModeTotal applies the rate against the base total rent exactly once.
	ModeTotal SurchargeMode = "total"
	// ModeMonthly applies the rate against the monthly rent, once per month.
	ModeMonthly SurchargeMode = "monthly"
)

// Monetary precision. Displayed amounts use two decimals; the submitted
// payload uses three, the minor-unit precision of the Omani rial.
const (
	displayPrecision = 2
	payloadPrecision = 3
)

// municipalFeeRate is the fixed municipality registration fee, 3% of the
// total contract value.
var municipalFeeRate = decimal.NewFromInt(3)

var hundred = decimal.NewFromInt(100)

// Surcharge is one named percentage fee on the contract. A surcharge has no
// identity beyond its position in the ledger; the order is display order only.
type Surcharge struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"` // percent, 0..100+
	Mode SurchargeMode   `json:"mode"`
}

// SurchargePatch carries a partial update to one surcharge; nil fields are
// left untouched.
type SurchargePatch struct {
	Name *string
	Rate *decimal.Decimal
	Mode *SurchargeMode
}

// Ledger holds the mutable, ordered surcharge list for one lease-editing
// session.
type Ledger struct {
	Surcharges []Surcharge
}

var errSurchargeIndex = errors.New("surcharge index out of range")

// Add appends a surcharge to the ledger.
func (l *Ledger) Add(s Surcharge) {
	l.Surcharges = append(l.Surcharges, s)
}

// Update applies a patch to the surcharge at index i.
func (l *Ledger) Update(i int, patch SurchargePatch) error {
	if i < 0 || i >= len(l.Surcharges) {
		return errSurchargeIndex
	}
	if patch.Name != nil {
		l.Surcharges[i].Name = *patch.Name
	}
	if patch.Rate != nil {
		l.Surcharges[i].Rate = *patch.Rate
	}
	if patch.Mode != nil {
		l.Surcharges[i].Mode = *patch.Mode
	}
	return nil
}

// Remove deletes the surcharge at index i, shifting the rest down.
func (l *Ledger) Remove(i int) error {
	if i < 0 || i >= len(l.Surcharges) {
		return errSurchargeIndex
	}
	l.Surcharges = append(l.Surcharges[:i], l.Surcharges[i+1:]...)
	return nil
}

// rateSum sums the rates of all surcharges with the given mode. Rates of the
// same mode are added together, never compounded.
func (l *Ledger) rateSum(mode SurchargeMode) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range l.Surcharges {
		if s.Mode == mode {
			sum = sum.Add(s.Rate)
		}
	}
	return sum
}

// HasMonthly reports whether at least one monthly-mode surcharge exists.
func (l *Ledger) HasMonthly() bool {
	for _, s := range l.Surcharges {
		if s.Mode == ModeMonthly {
			return true
		}
	}
	return false
}

// TotalRent is the flat contract value: monthly rent times the term,
// at payload precision.
func TotalRent(monthlyRent decimal.Decimal, durationMonths int) decimal.Decimal {
	return monthlyRent.Mul(decimal.NewFromInt(int64(durationMonths))).Round(payloadPrecision)
}

// MunicipalFee is the fixed 3% municipality fee on the total rent, rounded
// to two decimals for display.
func MunicipalFee(totalRent decimal.Decimal) decimal.Decimal {
	return totalRent.Mul(municipalFeeRate).Div(hundred).Round(displayPrecision)
}

// TotalWithSurcharges computes the final contract value: the base total rent,
// plus total-mode surcharges applied once against it, plus monthly-mode
// surcharges applied against the monthly rent once per month. Rounded to the
// payload precision; decimal.Round rounds half away from zero, which for the
// non-negative amounts here is round-half-up, the same policy the breakdown
// uses.
func (l *Ledger) TotalWithSurcharges(monthlyRent decimal.Decimal, durationMonths int) decimal.Decimal {
	if durationMonths <= 0 {
		return decimal.Zero
	}
	base := TotalRent(monthlyRent, durationMonths)
	months := decimal.NewFromInt(int64(durationMonths))

	total := base
	total = total.Add(base.Mul(l.rateSum(ModeTotal)).Div(hundred))
	total = total.Add(monthlyRent.Mul(l.rateSum(ModeMonthly)).Div(hundred).Mul(months))
	return total.Round(payloadPrecision)
}

// BreakdownRow is one month of the rent breakdown. Derived and read-only;
// regenerated whenever the term, the rent or the monthly surcharges change.
type BreakdownRow struct {
	Month     int             `json:"month"` // 1..durationMonths
	BaseRent  decimal.Decimal `json:"baseRent"`
	Surcharge decimal.Decimal `json:"surcharge"`
	Total     decimal.Decimal `json:"total"`
}

// MonthlyBreakdown materializes the month-by-month table. It is only produced
// when at least one monthly-mode surcharge exists; a flat contract gets an
// empty sequence so the UI has nothing meaningless to show.
func (l *Ledger) MonthlyBreakdown(durationMonths int, monthlyRent decimal.Decimal) []BreakdownRow {
	if durationMonths <= 0 || !l.HasMonthly() {
		return nil
	}
	extra := monthlyRent.Mul(l.rateSum(ModeMonthly)).Div(hundred).Round(displayPrecision)
	rows := make([]BreakdownRow, 0, durationMonths)
	for m := 1; m <= durationMonths; m++ {
		rows = append(rows, BreakdownRow{
			Month:     m,
			BaseRent:  monthlyRent.Round(displayPrecision),
			Surcharge: extra,
			Total:     monthlyRent.Add(extra).Round(displayPrecision),
		})
	}
	return rows
}
