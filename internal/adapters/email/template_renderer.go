package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"strings"
	texttemplate "text/template"

	"talkschedule/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer implements domain.EmailTemplateRenderer using embedded template files
// parsed once at construction.
type templateRenderer struct {
	html map[string]*htmltemplate.Template
	text map[string]*texttemplate.Template
}

// NewTemplateRenderer parses every embedded template. Files ending in .html are parsed
// with html/template, everything else with text/template.
func NewTemplateRenderer() (domain.EmailTemplateRenderer, error) {
	return newTemplateRenderer(templateFS, "templates")
}

func newTemplateRenderer(fsys fs.FS, dir string) (*templateRenderer, error) {
	r := &templateRenderer{
		html: map[string]*htmltemplate.Template{},
		text: map[string]*texttemplate.Template{},
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		raw, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, err
		}
		if strings.HasSuffix(name, ".html") {
			t, err := htmltemplate.New(name).Option("missingkey=error").Parse(string(raw))
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
			r.html[name] = t
			continue
		}
		t, err := texttemplate.New(name).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.text[name] = t
	}
	return r, nil
}

// Render executes the named template (e.g. "talk_booked") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	subject, err = r.renderText(templateName+"_subject.txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = r.renderHTML(templateName+".html", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = r.renderText(templateName+".txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *templateRenderer) renderHTML(name string, data any) (string, error) {
	t, ok := r.html[name]
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *templateRenderer) renderText(name string, data any) (string, error) {
	t, ok := r.text[name]
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
