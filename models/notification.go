package models

import "gorm.io/gorm"

// Notification kinds pushed over the websocket hub.
const (
	NotifyLeaseCreated    = "lease_created"
	NotifyChequeDueSoon   = "cheque_due_soon"
	NotifyChequeReturned  = "cheque_returned"
	NotifyContractExpired = "contract_expired"
)

// Notification is one dashboard notification for a staff user.
type Notification struct {
	gorm.Model
	UserID uint   `json:"userId" gorm:"index;not null"`
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Read   bool   `json:"read" gorm:"default:false"`
}

func (Notification) TableName() string { return "notifications" }
