package lease

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTotalRentFlat(t *testing.T) {
	require.Equal(t, "3600.000", TotalRent(dec("300"), 12).StringFixed(3))
	require.Equal(t, "450.500", TotalRent(dec("225.25"), 2).StringFixed(3))
}

func TestMunicipalFee(t *testing.T) {
	require.Equal(t, "108.00", MunicipalFee(dec("3600")).StringFixed(2))
	// Half cents round up.
	require.Equal(t, "0.11", MunicipalFee(dec("3.5")).StringFixed(2))
}

func TestTotalWithoutSurcharges(t *testing.T) {
	l := &Ledger{}
	require.Equal(t, "3600.000", l.TotalWithSurcharges(dec("300"), 12).StringFixed(3))
	require.Equal(t, "0.000", l.TotalWithSurcharges(dec("300"), 0).StringFixed(3))
}

func TestTotalModeSurchargeAppliesOnce(t *testing.T) {
	l := &Ledger{}
	l.Add(Surcharge{Name: "تأمين", Rate: dec("5"), Mode: ModeTotal})

	// base 3600 + 5% of 3600 = 3780, independent of the month count.
	require.Equal(t, "3780.000", l.TotalWithSurcharges(dec("300"), 12).StringFixed(3))
	// base 600 + 5% = 630 for a two-month term.
	require.Equal(t, "630.000", l.TotalWithSurcharges(dec("300"), 2).StringFixed(3))
}

func TestMonthlyModeSurchargeAppliesPerMonth(t *testing.T) {
	l := &Ledger{}
	l.Add(Surcharge{Name: "بلدية", Rate: dec("3"), Mode: ModeMonthly})

	// 300*12 + 300*0.03*12 = 3708.000.
	require.Equal(t, "3708.000", l.TotalWithSurcharges(dec("300"), 12).StringFixed(3))

	rows := l.MonthlyBreakdown(12, dec("300"))
	require.Len(t, rows, 12)
	for i, row := range rows {
		require.Equal(t, i+1, row.Month)
		require.Equal(t, "300.00", row.BaseRent.StringFixed(2))
		require.Equal(t, "9.00", row.Surcharge.StringFixed(2))
		require.Equal(t, "309.00", row.Total.StringFixed(2))
	}
}

func TestSameModeRatesSumNotCompound(t *testing.T) {
	l := &Ledger{}
	l.Add(Surcharge{Name: "أ", Rate: dec("3"), Mode: ModeMonthly})
	l.Add(Surcharge{Name: "ب", Rate: dec("2"), Mode: ModeMonthly})

	// 100*10 + 100*(3+2)/100*10 = 1050, not 100*1.03*1.02*10.
	require.Equal(t, "1050.000", l.TotalWithSurcharges(dec("100"), 10).StringFixed(3))

	rows := l.MonthlyBreakdown(10, dec("100"))
	require.Len(t, rows, 10)
	require.Equal(t, "5.00", rows[0].Surcharge.StringFixed(2))
}

func TestBreakdownEmptyWithoutMonthlySurcharge(t *testing.T) {
	l := &Ledger{}
	require.Empty(t, l.MonthlyBreakdown(12, dec("300")))

	l.Add(Surcharge{Name: "تأمين", Rate: dec("5"), Mode: ModeTotal})
	require.Empty(t, l.MonthlyBreakdown(12, dec("300")))
}

func TestMixedModes(t *testing.T) {
	l := &Ledger{}
	l.Add(Surcharge{Name: "بلدية", Rate: dec("3"), Mode: ModeMonthly})
	l.Add(Surcharge{Name: "تأمين", Rate: dec("5"), Mode: ModeTotal})

	// 3600 + 3600*0.05 + 300*0.03*12 = 3888.
	require.Equal(t, "3888.000", l.TotalWithSurcharges(dec("300"), 12).StringFixed(3))
}

func TestLedgerEditing(t *testing.T) {
	l := &Ledger{}
	l.Add(Surcharge{Name: "أ", Rate: dec("3"), Mode: ModeMonthly})
	l.Add(Surcharge{Name: "ب", Rate: dec("5"), Mode: ModeTotal})

	newRate := dec("4")
	require.NoError(t, l.Update(0, SurchargePatch{Rate: &newRate}))
	require.Equal(t, "4", l.Surcharges[0].Rate.String())
	require.Equal(t, "أ", l.Surcharges[0].Name)

	require.Error(t, l.Update(5, SurchargePatch{}))

	require.NoError(t, l.Remove(0))
	require.Len(t, l.Surcharges, 1)
	require.Equal(t, "ب", l.Surcharges[0].Name)
	require.Error(t, l.Remove(1))
}
