package mail

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
)

// Config holds the SMTP settings for outgoing mail.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

// Sender delivers notification mail over SMTP.
type Sender struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSender builds a mail sender from SMTP settings.
func NewSender(cfg Config) *Sender {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
		to:     cfg.To,
	}
}

// SendReminderDigest mails the list of due reminders as one HTML digest.
func (s *Sender) SendReminderDigest(reminders []models.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	var rows strings.Builder
	for _, r := range reminders {
		target := ""
		switch {
		case r.Colony != nil:
			target = r.Colony.Name
		case r.Apiary != nil:
			target = r.Apiary.Name
		}
		fmt.Fprintf(&rows, `
			<tr>
				<td style="padding: 6px 12px; border-bottom: 1px solid #ddd;">%s</td>
				<td style="padding: 6px 12px; border-bottom: 1px solid #ddd;">%s</td>
				<td style="padding: 6px 12px; border-bottom: 1px solid #ddd;">%s</td>
				<td style="padding: 6px 12px; border-bottom: 1px solid #ddd;">%s</td>
			</tr>`,
			r.Date.Format("2006-01-02"), r.Title, r.Category, target)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", s.to)
	message.SetHeader("Subject", fmt.Sprintf("Påminnelser: %d att göra", len(reminders)))
	message.SetBody("text/html", `
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px; background-color: #f5f5f5;">
			<h2 style="color: #333; text-align: center;">Kommande påminnelser</h2>
			<table style="width: 100%; border-collapse: collapse; background-color: #fff;">
				<tr>
					<th style="padding: 6px 12px; text-align: left;">Datum</th>
					<th style="padding: 6px 12px; text-align: left;">Titel</th>
					<th style="padding: 6px 12px; text-align: left;">Kategori</th>
					<th style="padding: 6px 12px; text-align: left;">Gäller</th>
				</tr>`+rows.String()+`
			</table>
		</div>
	`)
	return s.dialer.DialAndSend(message)
}
