package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"eventflow/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer implements domain.EmailTemplateRenderer using embedded template files.
type templateRenderer struct{}

// NewTemplateRenderer returns an EmailTemplateRenderer that loads templates from the embedded templates folder.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{}
}

// Render executes the named template (e.g. "speaker_invite") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(_ context.Context, templateName string, data any) (subject, htmlBody, textBody string, err error) {
	subject, err = r.renderFile(templateName+"_subject.txt", data, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = r.renderFile(templateName+".html", data, true)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = r.renderFile(templateName+".txt", data, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *templateRenderer) renderFile(name string, data any, html bool) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	if html {
		return executeHTML(name, string(raw), data)
	}
	return executeText(name, string(raw), data)
}

func executeHTML(name, tmpl string, data any) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func executeText(name, tmpl string, data any) (string, error) {
	t, err := texttemplate.New(name).Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// storeRenderer prefers an EMAILS table row (TEMPLATE_KEY, SUBJECT, BODY) over the fallback.
type storeRenderer struct {
	store    domain.TableStore
	fallback domain.EmailTemplateRenderer
}

// NewStoreRenderer returns a renderer that uses operator-edited templates from the EMAILS
// table when a row matches the template name, and fallback otherwise. The BODY cell is a
// text template; the HTML part escapes it and keeps its line breaks.
func NewStoreRenderer(store domain.TableStore, fallback domain.EmailTemplateRenderer) domain.EmailTemplateRenderer {
	return &storeRenderer{store: store, fallback: fallback}
}

func (r *storeRenderer) Render(ctx context.Context, templateName string, data any) (subject, htmlBody, textBody string, err error) {
	rows, err := r.store.Read(ctx, domain.TableEmails)
	if err != nil {
		return "", "", "", fmt.Errorf("read email templates: %w", err)
	}
	for _, row := range rows {
		if strings.TrimSpace(row.Cell(domain.EmailColTemplateKey)) != templateName {
			continue
		}
		subject, err = executeText(templateName+"_subject", row.Cell(domain.EmailColSubject), data)
		if err != nil {
			return "", "", "", fmt.Errorf("render subject: %w", err)
		}
		textBody, err = executeText(templateName, row.Cell(domain.EmailColBody), data)
		if err != nil {
			return "", "", "", fmt.Errorf("render text: %w", err)
		}
		htmlBody = strings.ReplaceAll(template.HTMLEscapeString(textBody), "\n", "<br>\n")
		return strings.TrimSpace(subject), htmlBody, textBody, nil
	}
	return r.fallback.Render(ctx, templateName, data)
}
