// Package validation checks untrusted form input before it reaches storage.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"tpecflowers/internal/models"
)

// Variant selects which intake form's required-field set applies.
type Variant string

const (
	// VariantFull is the full inquiry form with event details.
	VariantFull Variant = "full"
	// VariantCallback is the short callback-request form (name and phone only).
	VariantCallback Variant = "callback"
)

// Field length limits. The callback form caps the name shorter than the
// full form does.
const (
	maxNameFull     = 100
	maxNameCallback = 50
	maxEmail        = 255
	maxPhone        = 20
	maxVision       = 2000
	maxReferral     = 200
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// FieldError identifies the first violated constraint of a submission.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// InquiryInput is the raw, untrusted form payload. Every field is an
// optional string as it arrives off the wire.
type InquiryInput struct {
	Name           string
	Email          string
	Phone          string
	EventType      string
	EventDate      string
	Location       string
	Vision         string
	BudgetRange    string
	ReferralSource string
}

// ValidateInquiry checks input against the rules of the given variant and,
// on success, returns an Inquiry ready for persistence. It is a pure check:
// no side effects, first broken rule wins, in data-model field order.
func ValidateInquiry(in InquiryInput, variant Variant) (*models.Inquiry, *FieldError) {
	name := strings.TrimSpace(in.Name)
	maxName := maxNameFull
	if variant == VariantCallback {
		maxName = maxNameCallback
	}
	if name == "" {
		return nil, &FieldError{Field: "name", Message: "Name is required"}
	}
	if utf8.RuneCountInString(name) > maxName {
		return nil, &FieldError{Field: "name", Message: fmt.Sprintf("Name must be less than %d characters", maxName)}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if variant == VariantFull {
		if email == "" {
			return nil, &FieldError{Field: "email", Message: "Email is required"}
		}
		if utf8.RuneCountInString(email) > maxEmail {
			return nil, &FieldError{Field: "email", Message: fmt.Sprintf("Email must be less than %d characters", maxEmail)}
		}
		if !emailRegex.MatchString(email) {
			return nil, &FieldError{Field: "email", Message: "Please enter a valid email address"}
		}
	}

	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return nil, &FieldError{Field: "phone", Message: "Phone number is required"}
	}
	if utf8.RuneCountInString(phone) > maxPhone {
		return nil, &FieldError{Field: "phone", Message: fmt.Sprintf("Phone must be less than %d characters", maxPhone)}
	}

	eventType := strings.TrimSpace(in.EventType)
	if variant == VariantFull && eventType == "" {
		return nil, &FieldError{Field: "event_type", Message: "Event type is required"}
	}

	var eventDate *time.Time
	if raw := strings.TrimSpace(in.EventDate); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, &FieldError{Field: "event_date", Message: "Event date must be in YYYY-MM-DD format"}
		}
		eventDate = &parsed
	}

	location := strings.TrimSpace(in.Location)
	if variant == VariantFull && location == "" {
		return nil, &FieldError{Field: "location", Message: "Location is required"}
	}

	vision := strings.TrimSpace(in.Vision)
	if variant == VariantFull {
		if vision == "" {
			return nil, &FieldError{Field: "vision", Message: "Vision is required"}
		}
		if utf8.RuneCountInString(vision) > maxVision {
			return nil, &FieldError{Field: "vision", Message: fmt.Sprintf("Vision must be less than %d characters", maxVision)}
		}
	}

	referral := strings.TrimSpace(in.ReferralSource)
	if utf8.RuneCountInString(referral) > maxReferral {
		return nil, &FieldError{Field: "referral_source", Message: fmt.Sprintf("Referral source must be less than %d characters", maxReferral)}
	}

	inquiry := &models.Inquiry{
		Name:      name,
		Email:     email,
		Phone:     phone,
		EventType: eventType,
		EventDate: eventDate,
		Location:  location,
		Vision:    vision,
		Status:    models.StatusNew,
	}

	if budget := strings.TrimSpace(in.BudgetRange); budget != "" {
		inquiry.BudgetRange = &budget
	}
	if referral != "" {
		inquiry.ReferralSource = &referral
	}

	// The callback variant is a degraded-information mode of the same
	// entity: fixed placeholders stand in for the fields it never asks for.
	if variant == VariantCallback {
		inquiry.Email = models.CallbackEmail
		inquiry.EventType = models.CallbackEventType
		inquiry.Location = models.CallbackLocation
		inquiry.Vision = models.CallbackVision
	}

	return inquiry, nil
}
