package mailer

// TemplateVerifyEmail is the only template this service enqueues.
const TemplateVerifyEmail = "verify_email"

// EmailJob is the JSON payload put on the RabbitMQ queue. Either Template
// plus Data, or a raw Subject with Text/HTML.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
