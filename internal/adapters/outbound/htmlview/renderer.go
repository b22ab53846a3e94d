// Package htmlview renders display blocks and the upload page as HTML.
package htmlview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data behind the upload page.
type Page struct {
	FileName     string
	Preview      *domain.Preview
	PreviewError string
	Error        string
	Report       template.HTML
}

// Renderer turns blocks into HTML. Plain blocks go through goldmark, which
// drops raw HTML from the service's text.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{md: goldmark.New()}

	tmpl, err := template.New("").
		Funcs(template.FuncMap{"markdown": r.markdown}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// RenderReport draws blocks in order as an HTML fragment.
func (r *Renderer) RenderReport(blocks []domain.Block) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "report", blocks); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// WritePage writes the full upload page.
func (r *Renderer) WritePage(w io.Writer, p Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "page.html", p); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

func (r *Renderer) markdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
