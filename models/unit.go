package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Unit statuses as shown on the listings screen.
const (
	UnitVacant      = "vacant"
	UnitRented      = "rented"
	UnitMaintenance = "maintenance"
)

// Unit is one rentable unit. MonthlyRent and Currency feed the lease engine;
// HasWaterMeter decides whether a water-meter photo is required at booking.
type Unit struct {
	gorm.Model
	BuildingID uint      `json:"buildingId" gorm:"index;not null"`
	Building   *Building `json:"building,omitempty" gorm:"foreignKey:BuildingID"`

	UnitNumber string `json:"unitNumber" gorm:"not null"`
	Floor      string `json:"floor"`
	Bedrooms   int    `json:"bedrooms"`
	UnitType   string `json:"unitType"` // apartment, shop, office...

	MonthlyRent decimal.Decimal `json:"monthlyRent" gorm:"type:numeric(12,3)"`
	Currency    string          `json:"currency" gorm:"default:'OMR'"`

	// Every unit has a power meter; the water meter is optional and gates
	// the booking validation rule for the water-meter photo.
	PowerMeterNumber string `json:"powerMeterNumber"`
	HasWaterMeter    bool   `json:"hasWaterMeter"`
	WaterMeterNumber string `json:"waterMeterNumber"`

	Status string `json:"status" gorm:"default:'vacant'"`
}

func (Unit) TableName() string { return "units" }
