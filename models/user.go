package models

import "gorm.io/gorm"

// User is a staff account (manager, accountant, admin).
type User struct {
	gorm.Model
	Login        string `json:"login" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`

	Roles []Role `json:"roles,omitempty" gorm:"many2many:user_roles;"`
}

func (User) TableName() string { return "users" }
