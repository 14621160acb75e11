package models

import "gorm.io/gorm"

// Tenant holds the identity details collected on the booking form.
// Phone is stored already normalized to international format.
type Tenant struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	CountryCode string `json:"countryCode" gorm:"default:'+968'"`
	Phone       string `json:"phone" gorm:"index"`
	Email       string `json:"email"`
	CivilID     string `json:"civilId" gorm:"index"`
	Nationality string `json:"nationality"`
	Comment     string `json:"comment"`
}

func (Tenant) TableName() string { return "tenants" }
