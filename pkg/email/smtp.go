// Package email sends transactional mail (verification, password reset)
// over SMTP. Failures are reported to the caller, who decides whether they
// may abort the surrounding flow; signup never fails on a mail error.
package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type Mailer struct {
	config *Config
}

func NewMailer(config *Config) *Mailer {
	return &Mailer{config: config}
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	if m.config.Host == "" {
		return fmt.Errorf("smtp not configured")
	}

	from := m.config.FromEmail
	if m.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.config.FromName, m.config.FromEmail)
	}

	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	return smtp.SendMail(addr, auth, m.config.FromEmail, []string{to}, []byte(msg.String()))
}

func (m *Mailer) SendVerificationEmail(to, name, link string) error {
	body := fmt.Sprintf(`
		<h2>Welcome to MacroBox, %s!</h2>
		<p>Please verify your email to activate your account:</p>
		<a href="%s"
		   style="background:#22c55e;padding:12px 20px;color:white;
		   border-radius:6px;text-decoration:none;font-weight:bold;">
			Verify Email
		</a>
	`, name, link)

	return m.Send(to, "Verify your MacroBox account", body)
}

func (m *Mailer) SendPasswordResetEmail(to, name, link string) error {
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>We received a request to reset your password. The link below is
		valid for one hour:</p>
		<a href="%s"
		   style="background:#22c55e;padding:12px 20px;color:white;
		   border-radius:6px;text-decoration:none;font-weight:bold;">
			Reset Password
		</a>
		<p>If you did not request this, you can ignore this email.</p>
	`, name, link)

	return m.Send(to, "Reset your MacroBox password", body)
}
