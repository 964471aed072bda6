package email

import (
	"bytes"
	"fmt"
	"html/template"

	"urswat-backend/config"

	"gopkg.in/gomail.v2"
)

// Sender dispatches transactional registration emails over SMTP.
// All dispatch is best-effort: callers log failures and move on.
type Sender struct {
	dialer    *gomail.Dialer
	fromEmail string
	host      string
	username  string
}

// NewSender creates an SMTP sender from config. Construct once at process
// start and pass it down; there is no package-level state.
func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		fromEmail: cfg.SMTPFromEmail,
		host:      cfg.SMTPHost,
		username:  cfg.SMTPUsername,
	}
}

type talentWelcomeData struct {
	FullName string
}

type companyWelcomeData struct {
	CompanyName   string
	ContactPerson string
}

const talentWelcomeTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #000;">Welcome to Urswat!</h1>
  <p>Dear {{.FullName}},</p>
  <p>Thank you for registering with Urswat. We're excited to have you join our talent pool!</p>
  <p>Our team will review your profile and CV, and we'll be in touch with relevant opportunities that match your skills and experience.</p>
  <p>In the meantime, if you have any questions, feel free to reach out to us.</p>
  <div style="margin-top: 30px;">
    <p>Best regards,</p>
    <p>The Urswat Team</p>
  </div>
</div>`

const companyWelcomeTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #000;">Welcome to Urswat!</h1>
  <p>Dear {{.ContactPerson}},</p>
  <p>Thank you for registering {{.CompanyName}} with Urswat. We're excited to help you find exceptional talent!</p>
  <p>Our team will review your company profile and will be in touch shortly to discuss your hiring needs and how we can best assist you.</p>
  <p>If you have any immediate questions or requirements, please don't hesitate to contact us.</p>
  <div style="margin-top: 30px;">
    <p>Best regards,</p>
    <p>The Urswat Team</p>
  </div>
</div>`

// SendTalentWelcome sends the registration confirmation to a new talent.
func (s *Sender) SendTalentWelcome(fullName, to string) error {
	body, err := render("talent_welcome", talentWelcomeTemplate, talentWelcomeData{FullName: fullName})
	if err != nil {
		return err
	}
	return s.send(to, "Welcome to Urswat - Registration Confirmation", body)
}

// SendCompanyWelcome sends the registration confirmation to a new company
// contact person.
func (s *Sender) SendCompanyWelcome(companyName, contactPerson, to string) error {
	body, err := render("company_welcome", companyWelcomeTemplate, companyWelcomeData{
		CompanyName:   companyName,
		ContactPerson: contactPerson,
	})
	if err != nil {
		return err
	}
	return s.send(to, "Welcome to Urswat - Company Registration Confirmation", body)
}

// IsConfigured checks whether SMTP credentials are present. When they are
// not, registration still succeeds and dispatch is skipped.
func (s *Sender) IsConfigured() bool {
	return s.host != "" && s.username != ""
}

func (s *Sender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.fromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func render(name, tpl string, data interface{}) (string, error) {
	t, err := template.New(name).Parse(tpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}
