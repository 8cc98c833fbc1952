package notificationsrv

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"

	"github.com/Abraxas-365/backoffice/backoffice/notification"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.md templates/layout.html
var templateFS embed.FS

// Brand is the sender identity shown in every email
type Brand struct {
	CompanyName   string
	ContactPerson string
	AppURL        string
}

// Rendered is a ready-to-send subject and body
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// Renderer turns Markdown templates into HTML email. Template values are
// Markdown-escaped and raw HTML is never passed through.
type Renderer struct {
	brand     Brand
	templates map[notification.Kind]*template.Template
	layout    *htmltemplate.Template
	md        goldmark.Markdown
}

var templateKinds = []notification.Kind{
	notification.KindBookingConfirmation,
	notification.KindBookingAdminCopy,
	notification.KindApplicationStatus,
	notification.KindContactReply,
}

// NewRenderer parses the embedded templates
func NewRenderer(brand Brand) (*Renderer, error) {
	brand.AppURL = strings.TrimRight(brand.AppURL, "/")

	r := &Renderer{
		brand:     brand,
		templates: make(map[notification.Kind]*template.Template, len(templateKinds)),
		md: goldmark.New(
			goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()),
		),
	}

	funcs := template.FuncMap{"md": escapeMarkdown, "line": singleLine}
	for _, kind := range templateKinds {
		name := "templates/" + string(kind) + ".md"
		tmpl, err := template.New(string(kind)).Funcs(funcs).ParseFS(templateFS, name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		r.templates[kind] = tmpl.Lookup(string(kind) + ".md")
	}

	layout, err := htmltemplate.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	r.layout = layout

	return r, nil
}

// Render executes the template for kind with data. The first line of a
// template is "Subject: ..."; the rest is the Markdown body.
func (r *Renderer) Render(kind notification.Kind, data any) (Rendered, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return Rendered{}, fmt.Errorf("no template for %s", kind)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, map[string]any{"Brand": r.brand, "Data": data}); err != nil {
		return Rendered{}, fmt.Errorf("executing %s: %w", kind, err)
	}

	head, body, _ := strings.Cut(out.String(), "\n")
	subject := strings.TrimSpace(strings.TrimPrefix(head, "Subject:"))
	body = strings.TrimSpace(body)

	var html bytes.Buffer
	if err := r.md.Convert([]byte(body), &html); err != nil {
		return Rendered{}, fmt.Errorf("converting %s: %w", kind, err)
	}

	var page bytes.Buffer
	if err := r.layout.Execute(&page, map[string]any{
		"Subject": subject,
		"Body":    htmltemplate.HTML(html.String()),
		"Brand":   r.brand,
	}); err != nil {
		return Rendered{}, fmt.Errorf("wrapping %s: %w", kind, err)
	}

	return Rendered{
		Subject: subject,
		HTML:    page.String(),
		Text:    body,
	}, nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
	"#", `\#`, "|", `\|`, "!", `\!`,
)

// escapeMarkdown keeps user-supplied values from being read as Markdown
func escapeMarkdown(v any) string {
	s := strings.TrimSpace(fmt.Sprint(v))
	return markdownEscaper.Replace(s)
}

// singleLine folds a value onto one line for use in a subject
func singleLine(v any) string {
	return strings.Join(strings.Fields(fmt.Sprint(v)), " ")
}
