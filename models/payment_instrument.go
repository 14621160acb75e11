package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentInstrument is one persisted post-dated cheque from a lease schedule.
type PaymentInstrument struct {
	gorm.Model
	ContractID uint           `json:"contractId" gorm:"index;not null"`
	Contract   *LeaseContract `json:"-" gorm:"foreignKey:ContractID"`

	Position  int             `json:"position"` // 1-based order within the schedule
	Number    string          `json:"number"`
	ValueDate time.Time       `json:"valueDate"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(12,3)"`
	Status    string          `json:"status" gorm:"default:'pending'"` // pending, cleared, returned, refunded
	ImagePath string          `json:"imagePath"`
	Comment   string          `json:"comment"`
}

func (PaymentInstrument) TableName() string { return "payment_instruments" }
