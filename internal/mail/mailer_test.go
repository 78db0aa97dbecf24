package mail

import (
	"strings"
	"testing"
	"time"

	"tpecflowers/internal/config"
	"tpecflowers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInquiry() *models.Inquiry {
	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	budget := "$1,000 - $2,500"
	return &models.Inquiry{
		ID:          12,
		Name:        "Maria Lopez",
		Email:       "maria@example.com",
		Phone:       "512-555-0134",
		EventType:   "Quinceañera",
		EventDate:   &date,
		Location:    "Austin",
		Vision:      "Pink and gold backdrop with fresh roses",
		BudgetRange: &budget,
		Status:      models.StatusNew,
	}
}

func TestInquiryNotificationText(t *testing.T) {
	t.Parallel()

	body := inquiryNotificationText(sampleInquiry())
	assert.Contains(t, body, "Maria Lopez")
	assert.Contains(t, body, "maria@example.com")
	assert.Contains(t, body, "512-555-0134")
	assert.Contains(t, body, "Quinceañera")
	assert.Contains(t, body, "2026-10-14")
	assert.Contains(t, body, "$1,000 - $2,500")
	assert.Contains(t, body, "Pink and gold backdrop with fresh roses")
	// Absent referral source renders as the marker, not as empty.
	assert.Contains(t, body, "How They Found Us: Not specified")
}

func TestInquiryNotificationText_AbsentOptionals(t *testing.T) {
	t.Parallel()

	inquiry := sampleInquiry()
	inquiry.EventDate = nil
	inquiry.BudgetRange = nil

	body := inquiryNotificationText(inquiry)
	assert.Contains(t, body, "Event Date: Not specified")
	assert.Contains(t, body, "Budget Range: Not specified")
}

func TestInquiryNotificationHTML_EscapesInput(t *testing.T) {
	t.Parallel()

	inquiry := sampleInquiry()
	inquiry.Name = `<script>alert("x")</script>`
	inquiry.Vision = "Roses & peonies <3"

	body := inquiryNotificationHTML(inquiry)
	assert.NotContains(t, body, `<script>alert`)
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "Roses &amp; peonies")
}

func TestSMTPMailer_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	m := NewSMTPMailer(&config.Config{
		SMTPEnabled: false,
		NotifyEmail: "operator@example.com",
	})
	assert.False(t, m.IsEnabled())
	require.NoError(t, m.SendInquiryNotification(sampleInquiry()))
}

func TestSMTPMailer_EnabledWithoutCredentialsFails(t *testing.T) {
	t.Parallel()

	m := NewSMTPMailer(&config.Config{
		SMTPEnabled: true,
		SMTPHost:    "smtp.example.com",
		SMTPPort:    587,
		NotifyEmail: "operator@example.com",
	})
	err := m.SendInquiryNotification(sampleInquiry())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not properly configured"))
}

func TestInquirySubject(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "New Inquiry: Quinceañera - Maria Lopez", inquirySubject(sampleInquiry()))
}
