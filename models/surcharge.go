package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContractSurcharge is one surcharge row frozen into a signed contract.
type ContractSurcharge struct {
	gorm.Model
	ContractID uint            `json:"contractId" gorm:"index;not null"`
	Name       string          `json:"name"`
	Rate       decimal.Decimal `json:"rate" gorm:"type:numeric(7,3)"` // percent
	Mode       string          `json:"mode"`                          // total or monthly
}

func (ContractSurcharge) TableName() string { return "contract_surcharges" }

// SurchargeTemplate is a reusable named surcharge managers pick from when
// editing a lease. Formula, when set, overrides the flat rate: it is a
// govaluate expression over the variables rent, months and total, evaluated
// by the preview endpoint.
type SurchargeTemplate struct {
	gorm.Model
	Name    string          `json:"name" gorm:"unique;not null"`
	Rate    decimal.Decimal `json:"rate" gorm:"type:numeric(7,3)"`
	Mode    string          `json:"mode" gorm:"default:'total'"`
	Formula string          `json:"formula"`
}

func (SurchargeTemplate) TableName() string { return "surcharge_templates" }
