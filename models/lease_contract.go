package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Lease contract statuses.
const (
	ContractActive    = "active"
	ContractExpired   = "expired"
	ContractCancelled = "cancelled"
)

// LeaseContract is the persisted result of a successful booking submission.
// The amounts are what the engine computed at submission time and are not
// recomputed afterwards.
type LeaseContract struct {
	gorm.Model
	ContractNumber string `gorm:"column:contract_number;uniqueIndex" json:"contractNumber"`

	UnitID uint  `json:"unitId" gorm:"index;not null"`
	Unit   *Unit `json:"unit,omitempty" gorm:"foreignKey:UnitID"`

	TenantID uint    `json:"tenantId" gorm:"index;not null"`
	Tenant   *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`

	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	DurationMonths int       `json:"durationMonths"`

	MonthlyRent   decimal.Decimal `json:"monthlyRent" gorm:"type:numeric(12,3)"`
	TotalRent     decimal.Decimal `json:"totalRent" gorm:"type:numeric(12,3)"` // with surcharges
	MunicipalFee  decimal.Decimal `json:"municipalFee" gorm:"type:numeric(12,3)"`
	DepositAmount decimal.Decimal `json:"depositAmount" gorm:"type:numeric(12,3)"`
	Currency      string          `json:"currency" gorm:"default:'OMR'"`

	PaymentMethod string `json:"paymentMethod"` // cheques, cash, bank_transfer
	Status        string `json:"status" gorm:"default:'active'"`
	Comment       string `json:"comment"`

	// Meter evidence captured at contract start. The water fields stay NULL
	// for units without a water meter.
	PowerMeterReading string  `json:"powerMeterReading"`
	PowerMeterImage   string  `json:"powerMeterImage"`
	WaterMeterReading *string `json:"waterMeterReading,omitempty"`
	WaterMeterImage   *string `json:"waterMeterImage,omitempty"`

	Surcharges  []ContractSurcharge `json:"surcharges,omitempty" gorm:"foreignKey:ContractID"`
	Instruments []PaymentInstrument `json:"instruments,omitempty" gorm:"foreignKey:ContractID"`
}

func (LeaseContract) TableName() string { return "lease_contracts" }
