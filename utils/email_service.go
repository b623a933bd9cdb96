// utils/email_service.go
package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendTicketNotification emails the support inbox about a new ticket or
// reply. Callers treat failures as best-effort.
func SendTicketNotification(storeID, subject, message string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	fromEmail := os.Getenv("SMTP_FROM")
	toEmail := os.Getenv("SUPPORT_EMAIL")

	if smtpHost == "" || toEmail == "" {
		return fmt.Errorf("SMTP not configured")
	}

	smtpPort := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			smtpPort = port
		}
	}
	if fromEmail == "" {
		fromEmail = smtpUser
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Support ticket update</h2>
			<p><strong>Store:</strong> %s</p>
			<p><strong>Subject:</strong> %s</p>
			<p>%s</p>
		</body>
		</html>
	`, storeID, subject, message)

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "[Ticket] "+subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
