package models

import "gorm.io/gorm"

// Building groups rental units under one address.
type Building struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Address  string `json:"address"`
	Wilayat  string `json:"wilayat"` // administrative district
	Comment  string `json:"comment"`
	OwnerRef string `json:"ownerRef"` // external owner/landlord identifier

	Units []Unit `json:"units,omitempty" gorm:"foreignKey:BuildingID"`
}

func (Building) TableName() string { return "buildings" }
