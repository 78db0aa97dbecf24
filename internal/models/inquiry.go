// Package models contains data structures for the application's domain models.
package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Inquiry statuses. New is the only status the system ever sets itself;
// the rest are operator-driven.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQuoted    = "quoted"
	StatusBooked    = "booked"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Statuses lists every valid inquiry status, in lifecycle order.
var Statuses = []string{
	StatusNew,
	StatusContacted,
	StatusQuoted,
	StatusBooked,
	StatusCompleted,
	StatusCancelled,
}

// ValidStatus reports whether s is one of the defined inquiry statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// EventTypes are the event categories offered in the inquiry form.
// Free-text values outside this list are accepted.
var EventTypes = []string{
	"Wedding",
	"Bridal Shower",
	"Baby Shower",
	"Birthday",
	"Quinceañera",
	"Graduation",
	"Corporate Event",
	"Other",
}

// ServiceLocations are the cities we serve. Free-text values outside this
// list are accepted.
var ServiceLocations = []string{
	"Austin",
	"San Antonio",
	"Houston",
	"Dallas",
}

// BudgetRanges are the budget brackets offered in the inquiry form.
var BudgetRanges = []string{
	"Under $500",
	"$500 - $1,000",
	"$1,000 - $2,500",
	"$2,500 - $5,000",
	"$5,000+",
}

// Placeholder values persisted for the short callback-request intake, which
// only collects a name and phone number.
const (
	CallbackEmail     = "callback-request@placeholder.com"
	CallbackEventType = "Callback Request"
	CallbackLocation  = "TBD"
	CallbackVision    = "Customer requested a callback"
)

// Inquiry represents a visitor-submitted request for event floral services.
type Inquiry struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Email          string     `gorm:"not null" json:"email"`
	Phone          string     `gorm:"not null" json:"phone"`
	EventType      string     `gorm:"not null" json:"event_type"`
	EventDate      *time.Time `json:"event_date"`
	Location       string     `gorm:"not null" json:"location"`
	Vision         string     `gorm:"type:text;not null" json:"vision"`
	BudgetRange    *string    `json:"budget_range"`
	ReferralSource *string    `json:"referral_source"`
	Status         string     `gorm:"default:'new';index" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Inquiry.
func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeCreate forces the initial status and creation timestamp and rejects
// records the validator should never have let through.
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.Name == "" || i.Phone == "" || i.Vision == "" {
		return errors.New("inquiry requires name, phone, and vision")
	}
	i.Status = StatusNew
	i.CreatedAt = time.Now()
	return nil
}
