package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var subjects = map[string]string{
	TemplatePaymentReminderFirst:  "Your letter request #{{.requestId}} is waiting for payment",
	TemplatePaymentReminderSecond: "Reminder: letter request #{{.requestId}} is still unpaid",
	TemplatePaymentReminderFinal:  "Final reminder for letter request #{{.requestId}}",
	TemplateAdminPaymentReceived:  "Payment {{.transactionId}} received for request #{{.requestId}}",
}

// Renderer turns a template id plus args into a subject and HTML body.
type Renderer struct {
	bodies   *template.Template
	subjects map[string]*texttemplate.Template
}

func NewRenderer() (*Renderer, error) {
	bodies, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}
	r := &Renderer{bodies: bodies, subjects: make(map[string]*texttemplate.Template, len(subjects))}
	for id, text := range subjects {
		t, err := texttemplate.New(id).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse subject %s: %w", id, err)
		}
		r.subjects[id] = t
	}
	return r, nil
}

func (r *Renderer) Render(templateID string, args map[string]any) (subject string, body string, err error) {
	st, ok := r.subjects[templateID]
	if !ok {
		return "", "", fmt.Errorf("unknown mail template %q", templateID)
	}
	var sb, bb bytes.Buffer
	if err := st.Execute(&sb, args); err != nil {
		return "", "", fmt.Errorf("failed to render subject: %w", err)
	}
	if err := r.bodies.ExecuteTemplate(&bb, templateID+".html", args); err != nil {
		return "", "", fmt.Errorf("failed to render body: %w", err)
	}
	return strings.TrimSpace(sb.String()), bb.String(), nil
}
