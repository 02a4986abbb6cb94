package mail

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"
)

type template struct {
	subject string
	text    *texttemplate.Template
	html    *htmltemplate.Template
}

func newTemplate(subject, text, html string) template {
	return template{
		subject: subject,
		text:    texttemplate.Must(texttemplate.New(subject).Parse(text)),
		html:    htmltemplate.Must(htmltemplate.New(subject).Parse(html)),
	}
}

func (t template) render(to string, data any) (*Message, error) {
	var text, html bytes.Buffer
	if err := t.text.Execute(&text, data); err != nil {
		return nil, err
	}
	if err := t.html.Execute(&html, data); err != nil {
		return nil, err
	}
	return &Message{To: to, Subject: t.subject, Text: text.String(), HTML: html.String()}, nil
}

var (
	verificationTemplate = newTemplate(
		"Verify your volunteer account",
		"Hi {{.Name}},\n\nThanks for signing up as a volunteer. Confirm your email address by visiting:\n{{.Link}}\n",
		`<p>Hi {{.Name}},</p><p>Thanks for signing up as a volunteer. <a href="{{.Link}}">Confirm your email address</a>.</p>`,
	)
	passwordResetTemplate = newTemplate(
		"Reset your password",
		"Hi {{.Name}},\n\nA password reset was requested for {{.Username}}. Choose a new password here:\n{{.Link}}\n\nIf this was not you, ignore this email.\n",
		`<p>Hi {{.Name}},</p><p>A password reset was requested for {{.Username}}. <a href="{{.Link}}">Choose a new password</a>.</p><p>If this was not you, ignore this email.</p>`,
	)
	contactUsTemplate = newTemplate(
		"Contact us",
		"From: {{.Name}} <{{.Email}}>\nSubject: {{.Subject}}\n\n{{.Body}}\n",
		`<p>From: {{.Name}} &lt;{{.Email}}&gt;</p><p>Subject: {{.Subject}}</p><p>{{.Body}}</p>`,
	)
)

// LinkData feeds the verification and password reset templates.
type LinkData struct {
	Name     string
	Username string
	Link     string
}

func VerificationEmail(to string, d LinkData) (*Message, error) {
	return verificationTemplate.render(to, d)
}

func PasswordResetEmail(to string, d LinkData) (*Message, error) {
	return passwordResetTemplate.render(to, d)
}

// ContactUsData is a contact form submission.
type ContactUsData struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// ContactUsEmail renders a submission addressed to the team inbox. The
// subject reads "Contact us: <submitted subject>".
func ContactUsEmail(inbox string, d ContactUsData) (*Message, error) {
	msg, err := contactUsTemplate.render(inbox, d)
	if err != nil {
		return nil, err
	}
	msg.Subject = msg.Subject + ": " + d.Subject
	return msg, nil
}
