package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"flexspace/config"
)

// emailEnabled reports whether an SMTP relay is configured. A blank host
// disables the channel (useful in development).
func emailEnabled() bool {
	return config.AppConfig.SMTPHost != ""
}

// sendEmail delivers a plain-text message over the configured SMTP relay.
func sendEmail(to, subject, body string) error {
	cfg := config.AppConfig
	if !emailEnabled() {
		return nil
	}

	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}

	var msg strings.Builder
	msg.WriteString("From: FlexSpace Pro <" + from + ">\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp delivery to %s failed: %w", to, err)
	}
	return nil
}
