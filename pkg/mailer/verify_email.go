package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const verifySubject = "Email verification"

var verifyHTML = template.Must(template.New("verify_email").Parse(
	`<p>Please verify your email by clicking the link below:</p><p><a href="{{.VerifyURL}}">{{.VerifyURL}}</a></p>`))

// RenderVerifyEmail renders the verification email from job data. Data must
// carry a VerifyURL entry pointing at the API verification endpoint.
func RenderVerifyEmail(data map[string]any) (subject, text, html string, err error) {
	verifyURL, _ := data["VerifyURL"].(string)
	if verifyURL == "" {
		return "", "", "", fmt.Errorf("verify_email: missing VerifyURL")
	}
	var buf bytes.Buffer
	if err := verifyHTML.Execute(&buf, map[string]string{"VerifyURL": verifyURL}); err != nil {
		return "", "", "", err
	}
	text = "Please verify your email by visiting: " + verifyURL
	return verifySubject, text, buf.String(), nil
}
