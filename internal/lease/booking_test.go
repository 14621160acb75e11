package lease

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validInput() BookingInput {
	sched := NewScheduler(dec("300"))
	sched.Resize(12)
	num := "CHQ-001"
	d := date(2025, 1, 10)
	_ = sched.Update(0, InstrumentPatch{Number: &num, ValueDate: &d})
	_ = sched.UnifyFromFirst()

	ledger := &Ledger{}
	ledger.Add(Surcharge{Name: "بلدية", Rate: dec("3"), Mode: ModeMonthly})

	water := &MeterReading{Reading: "120", ImageRef: "water.jpg"}
	return BookingInput{
		Unit: UnitInfo{
			UnitID:        7,
			BuildingID:    2,
			MonthlyRent:   dec("300"),
			Currency:      "OMR",
			HasWaterMeter: true,
		},
		Period:    Period{Start: date(2025, 1, 1), Kind: DurationMonths, Value: 12},
		Ledger:    ledger,
		Scheduler: sched,
		Tenant: TenantInfo{
			Name:        "سالم الحارثي",
			CountryCode: "+968",
			Phone:       "9912 3456",
			Email:       "salim@example.com",
		},
		Meters: MeterEvidence{
			Power: MeterReading{Reading: "4521", ImageRef: "power.jpg"},
			Water: water,
		},
		Deposit: DepositInfo{Amount: dec("300")},
		Method:  PaymentCheques,
	}
}

func TestValidateAndBuildHappyPath(t *testing.T) {
	req, v := ValidateAndBuild(validInput())
	require.Nil(t, v)
	require.NotNil(t, req)

	require.Equal(t, uint(7), req.UnitID)
	require.Equal(t, 12, req.DurationMonths)
	// 300*12 + 300*0.03*12 = 3708.000 OMR.
	require.Equal(t, "3708.000", req.TotalRent.StringFixed(3))
	require.Equal(t, "OMR", req.Currency)
	require.Equal(t, "+96899123456", req.TenantPhone)
	require.Len(t, req.Instruments, 12)
	require.NotNil(t, req.Meters.Water)
	require.Equal(t, "water.jpg", req.Meters.Water.ImageRef)
}

func TestRuleOrderFirstFailureWins(t *testing.T) {
	in := validInput()
	in.Unit.UnitID = 0
	in.Tenant.Name = ""
	_, v := ValidateAndBuild(in)
	require.NotNil(t, v)
	require.Equal(t, RuleUnitRequired, v.Rule)
}

func TestTenantNameRequired(t *testing.T) {
	in := validInput()
	in.Tenant.Name = "   "
	_, v := ValidateAndBuild(in)
	require.NotNil(t, v)
	require.Equal(t, RuleTenantNameRequired, v.Rule)
}

func TestOmaniPhonePattern(t *testing.T) {
	in := validInput()

	in.Tenant.Phone = "12345678" // must start with 7 or 9
	_, v := ValidateAndBuild(in)
	require.NotNil(t, v)
	require.Equal(t, RuleTenantPhoneInvalid, v.Rule)

	in.Tenant.Phone = "991234" // too short
	_, v = ValidateAndBuild(in)
	require.NotNil(t, v)
	require.Equal(t, RuleTenantPhoneInvalid, v.Rule)

	in.Tenant.Phone = "79123456"
	req, v := ValidateAndBuild(in)
	require.Nil(t, v)
	require.Equal(t, "+96879123456", req.TenantPhone)
}

func TestForeignPhoneGenericCheck(t *testing.T) {
	in := validInput()
	in.Tenant.CountryCode = "+971"
	in.Tenant.Phone = "50 123 4567"
	req, v := ValidateAndBuild(in)
	require.Nil(t, v)
	require.Equal(t, "+971501234567", req.TenantPhone)

	in.Tenant.Phone = "12345" // below the 6-digit floor
	_, v = ValidateAndBuild(in)
	require.NotNil(t, v)
	require.Equal(t, RuleTenantPhoneInvalid, v.Rule)
}

func TestEmailOptional(t *testing.T) {
	in := validInput()
	in.Tenant.Email = ""
	_, v := ValidateAndBuild(in)
	require.Nil(t, v)

	in.Tenant.Email = "not-an-email"
	_, v = ValidateAndBuild(in)
	require.NotNil(t, v)
	require.Equal(t, RuleTenantEmailInvalid, v.Rule)
}

func TestPeriodMustBeResolved(t *testing.T) {
	in := validInput()
	in.Period = Period{}
	_, v := ValidateAndBuild(in)
	require.NotNil(t, v)
	require.Equal(t, RulePeriodRequired, v.Rule)
}

func TestPowerPhotoAlwaysRequired(t *testing.T) {
	in := validInput()
	in.Unit.HasWaterMeter = false
	in.Meters.Power.ImageRef = ""
	_, v := ValidateAndBuild(in)
	require.NotNil(t, v)
	require.Equal(t, RulePowerPhotoRequired, v.Rule)
}

func TestWaterPhotoConditional(t *testing.T) {
	in := validInput()
	in.Meters.Water = nil
	_, v := ValidateAndBuild(in)
	require.NotNil(t, v)
	require.Equal(t, RuleWaterPhotoRequired, v.Rule)

	// No water meter on the unit: the rule is skipped and the payload omits
	// the water section even when a photo was uploaded anyway.
	in = validInput()
	in.Unit.HasWaterMeter = false
	in.Meters.Water = &MeterReading{Reading: "120", ImageRef: "water.jpg"}
	req, v := ValidateAndBuild(in)
	require.Nil(t, v)
	require.Nil(t, req.Meters.Water)
}

func TestInstrumentCompleteness(t *testing.T) {
	in := validInput()
	empty := ""
	require.NoError(t, in.Scheduler.Update(4, InstrumentPatch{Number: &empty}))

	_, v := ValidateAndBuild(in)
	require.NotNil(t, v)
	require.Equal(t, RuleInstrumentIncomplete, v.Rule)
	require.Equal(t, 4, v.InstrumentIndex)
}

func TestInstrumentsIgnoredForCash(t *testing.T) {
	in := validInput()
	in.Method = PaymentCash
	in.Scheduler = nil

	req, v := ValidateAndBuild(in)
	require.Nil(t, v)
	require.Empty(t, req.Instruments)
}
