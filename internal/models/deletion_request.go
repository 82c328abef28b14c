package models

import "time"

// DeletionRequestStatus is the lifecycle state of an account deletion request.
type DeletionRequestStatus string

const (
	DeletionPending  DeletionRequestStatus = "pending"
	DeletionApproved DeletionRequestStatus = "approved"
	DeletionDenied   DeletionRequestStatus = "denied"
)

// DeletionRequest is a user-initiated, owner-approved request to erase the
// user's account and all per-user records. Name and email are denormalized so
// the request remains readable after the user row is purged.
type DeletionRequest struct {
	Base
	UserID      uint                  `gorm:"not null;index" json:"user_id"`
	UserName    string                `gorm:"not null" json:"user_name"`
	UserEmail   string                `gorm:"not null" json:"user_email"`
	Reason      string                `gorm:"not null" json:"reason"`
	RequestDate time.Time             `gorm:"not null" json:"request_date"`
	Status      DeletionRequestStatus `gorm:"not null;default:'pending'" json:"status"`
}
