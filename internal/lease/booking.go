// internal/lease/booking.go
package lease

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the tenant pays the contract.
type PaymentMethod string

const (
	PaymentCheques      PaymentMethod = "cheques"
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// InstrumentBased reports whether the method requires a cheque schedule.
func (m PaymentMethod) InstrumentBased() bool { return m == PaymentCheques }

// DefaultCountryCode is the dialing code the strict local phone pattern
// applies to. Any other code falls back to a generic length check.
const DefaultCountryCode = "+968"

var (
	// Omani mobile numbers: eight digits starting with 7 or 9.
	omaniPhonePattern   = regexp.MustCompile(`^[79]\d{7}$`)
	genericPhonePattern = regexp.MustCompile(`^\d{6,15}$`)
	emailPattern        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	nonDigits           = regexp.MustCompile(`\D`)
)

// UnitInfo is the read-only unit snapshot the engine consumes from the
// collaborator. The engine never loads it itself.
type UnitInfo struct {
	UnitID        uint
	BuildingID    uint
	MonthlyRent   decimal.Decimal
	Currency      string
	HasWaterMeter bool
}

// TenantInfo is the tenant identity section of the booking form.
type TenantInfo struct {
	Name        string
	CountryCode string // dialing code, e.g. "+968"
	Phone       string // local part, free-form user input
	Email       string // optional
	CivilID     string
}

// MeterReading is a meter value plus the photo reference proving it.
type MeterReading struct {
	Reading  string
	ImageRef string
}

// MeterEvidence groups the meter readings supplied at contract start.
// Water is nil when the unit is not provisioned with a water meter.
type MeterEvidence struct {
	Power MeterReading
	Water *MeterReading
}

// DepositInfo describes the security deposit handed over with the contract.
type DepositInfo struct {
	Amount decimal.Decimal
	Notes  string
}

// RuleCode identifies exactly one validation rule, so the host can render a
// targeted message instead of a generic rejection.
type RuleCode string

const (
	RuleUnitRequired         RuleCode = "unit_required"
	RuleTenantNameRequired   RuleCode = "tenant_name_required"
	RuleTenantPhoneInvalid   RuleCode = "tenant_phone_invalid"
	RuleTenantEmailInvalid   RuleCode = "tenant_email_invalid"
	RulePeriodRequired       RuleCode = "period_required"
	RulePowerPhotoRequired   RuleCode = "power_meter_photo_required"
	RuleWaterPhotoRequired   RuleCode = "water_meter_photo_required"
	RuleInstrumentIncomplete RuleCode = "instrument_incomplete"
)

// RuleViolation is a structured validation failure. InstrumentIndex is only
// meaningful for RuleInstrumentIncomplete.
type RuleViolation struct {
	Rule            RuleCode `json:"rule"`
	Message         string   `json:"message"`
	InstrumentIndex int      `json:"instrumentIndex,omitempty"`
}

func (v *RuleViolation) Error() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Message)
}

func violation(rule RuleCode, message string) *RuleViolation {
	return &RuleViolation{Rule: rule, Message: message, InstrumentIndex: -1}
}

// BookingInput is the immutable snapshot the ordered rule list is evaluated
// against.
type BookingInput struct {
	Unit      UnitInfo
	Period    Period
	Ledger    *Ledger
	Scheduler *Scheduler
	Tenant    TenantInfo
	Meters    MeterEvidence
	Deposit   DepositInfo
	Method    PaymentMethod
}

// MeterReadingPayload mirrors MeterReading in the outgoing payload.
type MeterReadingPayload struct {
	Reading  string `json:"reading"`
	ImageRef string `json:"imageRef"`
}

// MeterReadingsPayload carries the meter section of the booking payload.
// Water is omitted entirely when the unit has no water meter.
type MeterReadingsPayload struct {
	Power MeterReadingPayload  `json:"power"`
	Water *MeterReadingPayload `json:"water,omitempty"`
}

// BookingRequest is the engine's output: handed to the external booking API
// once and never mutated by the engine afterwards.
type BookingRequest struct {
	UnitID         uint                 `json:"unitId"`
	BuildingID     uint                 `json:"buildingId"`
	StartDate      time.Time            `json:"startDate"`
	DurationMonths int                  `json:"durationMonths"`
	TotalRent      decimal.Decimal      `json:"totalRent"` // with surcharges, 3 dp
	Currency       string               `json:"currency"`
	Deposit        DepositInfo          `json:"deposit"`
	PaymentMethod  PaymentMethod        `json:"paymentMethod"`
	Instruments    []Instrument         `json:"instruments,omitempty"`
	Meters         MeterReadingsPayload `json:"meterReadings"`
	TenantName     string               `json:"tenantName"`
	TenantPhone    string               `json:"tenantPhone"` // international format
	TenantEmail    string               `json:"tenantEmail,omitempty"`
	TenantCivilID  string               `json:"tenantCivilId,omitempty"`
}

// ValidateAndBuild runs the ordered rule list over the snapshot; the first
// failing rule wins. On success it assembles the final booking payload with
// the total computed through the surcharge ledger. No partial payload is ever
// returned alongside a violation.
func ValidateAndBuild(in BookingInput) (*BookingRequest, *RuleViolation) {
	// 1. Unit and building identifiers.
	if in.Unit.UnitID == 0 || in.Unit.BuildingID == 0 {
		return nil, violation(RuleUnitRequired, "يجب تحديد الوحدة والمبنى")
	}

	// 2. Tenant name.
	if strings.TrimSpace(in.Tenant.Name) == "" {
		return nil, violation(RuleTenantNameRequired, "اسم المستأجر مطلوب")
	}

	// 3. Tenant phone, against the country-specific shape.
	localDigits := nonDigits.ReplaceAllString(in.Tenant.Phone, "")
	cc := in.Tenant.CountryCode
	if cc == "" {
		cc = DefaultCountryCode
	}
	if cc == DefaultCountryCode {
		if !omaniPhonePattern.MatchString(localDigits) {
			return nil, violation(RuleTenantPhoneInvalid, "رقم هاتف المستأجر غير صالح")
		}
	} else if !genericPhonePattern.MatchString(localDigits) {
		return nil, violation(RuleTenantPhoneInvalid, "رقم هاتف المستأجر غير صالح")
	}

	// 4. Tenant email is optional but must look like an email when present.
	email := strings.TrimSpace(in.Tenant.Email)
	if email != "" && !emailPattern.MatchString(email) {
		return nil, violation(RuleTenantEmailInvalid, "البريد الإلكتروني غير صالح")
	}

	// 5. Contract period must be resolved.
	months := in.Period.Months()
	if in.Period.Start.IsZero() || months < 1 {
		return nil, violation(RulePeriodRequired, "تاريخ بداية العقد ومدته مطلوبان")
	}

	// 6. Power meter photo, always required.
	if in.Meters.Power.ImageRef == "" {
		return nil, violation(RulePowerPhotoRequired, "صورة عداد الكهرباء مطلوبة")
	}

	// 7. Water meter photo, only when the unit is provisioned with one.
	if in.Unit.HasWaterMeter && (in.Meters.Water == nil || in.Meters.Water.ImageRef == "") {
		return nil, violation(RuleWaterPhotoRequired, "صورة عداد المياه مطلوبة")
	}

	// 8. Cheque completeness, for instrument-based payment only.
	var instruments []Instrument
	if in.Method.InstrumentBased() {
		if in.Scheduler == nil || len(in.Scheduler.Instruments) == 0 {
			return nil, &RuleViolation{
				Rule:            RuleInstrumentIncomplete,
				Message:         "بيانات الشيكات غير مكتملة",
				InstrumentIndex: 0,
			}
		}
		if i := in.Scheduler.FirstIncomplete(); i >= 0 {
			return nil, &RuleViolation{
				Rule:            RuleInstrumentIncomplete,
				Message:         fmt.Sprintf("بيانات الشيك رقم %d غير مكتملة", i+1),
				InstrumentIndex: i,
			}
		}
		instruments = append(instruments, in.Scheduler.Instruments...)
	}

	meters := MeterReadingsPayload{
		Power: MeterReadingPayload{Reading: in.Meters.Power.Reading, ImageRef: in.Meters.Power.ImageRef},
	}
	if in.Unit.HasWaterMeter && in.Meters.Water != nil {
		meters.Water = &MeterReadingPayload{Reading: in.Meters.Water.Reading, ImageRef: in.Meters.Water.ImageRef}
	}

	ledger := in.Ledger
	if ledger == nil {
		ledger = &Ledger{}
	}

	return &BookingRequest{
		UnitID:         in.Unit.UnitID,
		BuildingID:     in.Unit.BuildingID,
		StartDate:      in.Period.Start,
		DurationMonths: months,
		TotalRent:      ledger.TotalWithSurcharges(in.Unit.MonthlyRent, months),
		Currency:       in.Unit.Currency,
		Deposit:        in.Deposit,
		PaymentMethod:  in.Method,
		Instruments:    instruments,
		Meters:         meters,
		TenantName:     strings.TrimSpace(in.Tenant.Name),
		TenantPhone:    cc + localDigits,
		TenantEmail:    email,
		TenantCivilID:  strings.TrimSpace(in.Tenant.CivilID),
	}, nil
}
