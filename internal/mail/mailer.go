// Package mail sends operator-facing email for new inquiries.
package mail

import (
	"fmt"
	"html"
	"net/smtp"

	"tpecflowers/internal/config"
	"tpecflowers/internal/models"
)

// Mailer delivers inquiry notification email.
type Mailer interface {
	SendInquiryNotification(inquiry *models.Inquiry) error
}

// SMTPMailer sends email through a plain SMTP relay.
type SMTPMailer struct {
	enabled   bool
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
	notifyTo  string
}

// NewSMTPMailer creates a mailer from application configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		enabled:   cfg.SMTPEnabled,
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromName:  cfg.MailFromName,
		fromEmail: cfg.MailFromEmail,
		notifyTo:  cfg.NotifyEmail,
	}
}

// IsEnabled returns whether outbound mail is enabled.
func (m *SMTPMailer) IsEnabled() bool {
	return m.enabled
}

// SendInquiryNotification composes and sends the new-inquiry alert to the
// operator mailbox.
func (m *SMTPMailer) SendInquiryNotification(inquiry *models.Inquiry) error {
	subject := inquirySubject(inquiry)
	htmlBody := inquiryNotificationHTML(inquiry)
	textBody := inquiryNotificationText(inquiry)
	return m.sendHTMLEmail(m.notifyTo, subject, htmlBody, textBody)
}

// inquirySubject builds the fixed subject line operators filter on.
func inquirySubject(inquiry *models.Inquiry) string {
	return fmt.Sprintf("New Inquiry: %s - %s", inquiry.EventType, inquiry.Name)
}

// notSpecified substitutes the display marker for absent optional fields.
func notSpecified(v *string) string {
	if v == nil || *v == "" {
		return "Not specified"
	}
	return *v
}

func eventDateDisplay(inquiry *models.Inquiry) string {
	if inquiry.EventDate == nil {
		return "Not specified"
	}
	return inquiry.EventDate.Format("2006-01-02")
}

func inquiryNotificationHTML(inquiry *models.Inquiry) string {
	rows := [][2]string{
		{"Name", inquiry.Name},
		{"Email", inquiry.Email},
		{"Phone", inquiry.Phone},
		{"Event Type", inquiry.EventType},
		{"Event Date", eventDateDisplay(inquiry)},
		{"Location", inquiry.Location},
		{"Budget Range", notSpecified(inquiry.BudgetRange)},
		{"How They Found Us", notSpecified(inquiry.ReferralSource)},
	}

	table := ""
	for _, row := range rows {
		table += fmt.Sprintf(
			`<tr><td style="padding: 8px 16px 8px 0; font-weight: 600; color: #3D2C29; white-space: nowrap; vertical-align: top;">%s</td><td style="padding: 8px 0; color: #5A4A45;">%s</td></tr>`,
			html.EscapeString(row[0]), html.EscapeString(row[1]),
		) + "\n"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>New Inquiry</title>
</head>
<body style="margin: 0; padding: 0; background-color: #FAF6F2; font-family: Georgia, 'Times New Roman', serif;">
    <table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%" style="background-color: #FAF6F2;">
        <tr>
            <td style="padding: 40px 20px;">
                <table role="presentation" cellspacing="0" cellpadding="0" border="0" width="600" style="margin: 0 auto; background-color: #FFFFFF; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 16px rgba(61, 44, 41, 0.08);">
                    <tr>
                        <td style="padding: 32px 40px; background-color: #8B5E5A; text-align: center;">
                            <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #FFFFFF;">New Inquiry Received</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 32px 40px;">
                            <table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%">
%s                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 0 40px 32px;">
                            <p style="margin: 0 0 8px; font-size: 15px; font-weight: 600; color: #3D2C29;">Their Vision</p>
                            <p style="margin: 0; padding: 16px; background-color: #FAF6F2; border-radius: 8px; font-size: 15px; line-height: 1.6; color: #5A4A45;">%s</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 24px 40px; background-color: #FAF6F2; text-align: center;">
                            <p style="margin: 0; font-size: 12px; color: #A08985;">This is an automated notification from the inquiry form.</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>`, table, html.EscapeString(inquiry.Vision))
}

func inquiryNotificationText(inquiry *models.Inquiry) string {
	return fmt.Sprintf(`New inquiry received.

Name: %s
Email: %s
Phone: %s
Event Type: %s
Event Date: %s
Location: %s
Budget Range: %s
How They Found Us: %s

Their Vision:
%s
`,
		inquiry.Name,
		inquiry.Email,
		inquiry.Phone,
		inquiry.EventType,
		eventDateDisplay(inquiry),
		inquiry.Location,
		notSpecified(inquiry.BudgetRange),
		notSpecified(inquiry.ReferralSource),
		inquiry.Vision,
	)
}

// sendHTMLEmail sends an HTML email with a plain text fallback.
func (m *SMTPMailer) sendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if !m.enabled {
		fmt.Printf("[EMAIL] Would send to %s: %s\n", to, subject)
		return nil
	}

	if m.host == "" || m.username == "" || m.password == "" {
		return fmt.Errorf("mail service not properly configured")
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	from := m.fromEmail
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	boundary := "----=_NextPart_1234567890"

	headers := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n"

	message := headers +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		textBody + "\r\n"

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"Content-Transfer-Encoding: quoted-printable\r\n" +
			"\r\n" +
			htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.fromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
