package mailer

import (
	"errors"
	"strings"

	"github.com/oksasatya/saas-landing-api/pkg/mailer/templates"
)

var ErrNoRecipient = errors.New("email job has no recipient")

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (with Data) or Subject plus Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome", "contact_notification"
	Data     map[string]any `json:"data,omitempty"`
}

// Prepare fills Subject/Text/HTML from the job's template, if any.
// Rendered values only replace fields that are still empty.
func (j *EmailJob) Prepare() error {
	if strings.TrimSpace(j.To) == "" {
		if v, ok := j.Data["RecipientEmail"].(string); ok && v != "" {
			j.To = v
		} else {
			return ErrNoRecipient
		}
	}
	if j.Template == "" {
		return nil
	}
	subject, text, html, err := templates.Render(j.Template, j.Data)
	if err != nil {
		return err
	}
	if j.Subject == "" {
		j.Subject = subject
	}
	if j.Text == "" {
		j.Text = text
	}
	if j.HTML == "" {
		j.HTML = html
	}
	return nil
}
