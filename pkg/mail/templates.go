package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*
var templatesFS embed.FS

// MessageType selects the template set used to render a message.
type MessageType string

const (
	MessageTypeVerifyEmail   MessageType = "verify_email"
	MessageTypeResetPassword MessageType = "reset_password"
)

// TemplateResolver loads and executes the embedded email templates.
type TemplateResolver struct {
	subjectTemplates map[MessageType]*texttemplate.Template
	htmlTemplates    map[MessageType]*template.Template
}

// NewTemplateResolver preloads templates for every message type.
func NewTemplateResolver() (*TemplateResolver, error) {
	resolver := &TemplateResolver{
		subjectTemplates: make(map[MessageType]*texttemplate.Template),
		htmlTemplates:    make(map[MessageType]*template.Template),
	}

	for _, msgType := range []MessageType{
		MessageTypeVerifyEmail,
		MessageTypeResetPassword,
	} {
		if err := resolver.loadTemplates(msgType); err != nil {
			return nil, fmt.Errorf("failed to load templates for %s: %w", msgType, err)
		}
	}

	return resolver, nil
}

// loadTemplates loads the subject and HTML body templates for a message type.
func (tr *TemplateResolver) loadTemplates(msgType MessageType) error {
	baseDir := path.Join("templates", string(msgType))

	subjectData, err := templatesFS.ReadFile(path.Join(baseDir, "subject.tmpl"))
	if err != nil {
		return fmt.Errorf("failed to read subject template: %w", err)
	}
	subjectTmpl, err := texttemplate.New(string(msgType) + "_subject").
		Parse(string(subjectData))
	if err != nil {
		return fmt.Errorf("failed to parse subject template: %w", err)
	}
	tr.subjectTemplates[msgType] = subjectTmpl

	// html/template for auto-escaping
	htmlData, err := templatesFS.ReadFile(path.Join(baseDir, "body.html.tmpl"))
	if err != nil {
		return fmt.Errorf("failed to read HTML template: %w", err)
	}
	htmlTmpl, err := template.New(string(msgType) + "_html").
		Parse(string(htmlData))
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}
	tr.htmlTemplates[msgType] = htmlTmpl

	return nil
}

// ResolvedContent holds the rendered template output.
type ResolvedContent struct {
	Subject  string
	BodyHTML string
}

// Resolve renders the subject and body templates with the given context.
func (tr *TemplateResolver) Resolve(msgType MessageType, context map[string]any) (*ResolvedContent, error) {
	subjectTmpl, ok := tr.subjectTemplates[msgType]
	if !ok {
		return nil, fmt.Errorf("no subject template found for message type: %s", msgType)
	}
	var subjectBuf bytes.Buffer
	if err := subjectTmpl.Execute(&subjectBuf, context); err != nil {
		return nil, fmt.Errorf("failed to execute subject template: %w", err)
	}

	htmlTmpl, ok := tr.htmlTemplates[msgType]
	if !ok {
		return nil, fmt.Errorf("no HTML template found for message type: %s", msgType)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, context); err != nil {
		return nil, fmt.Errorf("failed to execute HTML template: %w", err)
	}

	return &ResolvedContent{
		Subject:  strings.TrimSpace(subjectBuf.String()),
		BodyHTML: htmlBuf.String(),
	}, nil
}
