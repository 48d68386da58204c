package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"cv-generator/internal/domain"
	"cv-generator/templates"
)

// Renderer executes the preview template. It is safe for concurrent use.
type Renderer struct {
	tpl *template.Template
	css template.CSS
}

// NewRenderer parses the embedded template and stylesheet.
func NewRenderer() (*Renderer, error) {
	return NewRendererFS(templates.FS)
}

// NewRendererFS parses the template and stylesheet from fsys, which must hold
// the files named in package templates.
func NewRendererFS(fsys fs.FS) (*Renderer, error) {
	tpl, err := template.ParseFS(fsys, templates.PreviewFile)
	if err != nil {
		return nil, fmt.Errorf("parse preview template: %w", err)
	}
	css, err := fs.ReadFile(fsys, templates.StyleFile)
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	return &Renderer{tpl: tpl, css: template.CSS(css)}, nil
}

// RenderPreview writes the preview fragment of cv.
func (r *Renderer) RenderPreview(w io.Writer, cv domain.CV) error {
	return r.tpl.ExecuteTemplate(w, "preview", Build(cv))
}

// RenderDocument writes a standalone page with the stylesheet inlined, so the
// output can be saved or printed without any other asset.
func (r *Renderer) RenderDocument(w io.Writer, cv domain.CV) error {
	data := struct {
		Title string
		CSS   template.CSS
		View  View
	}{
		Title: domain.ExportTitle(cv),
		CSS:   r.css,
		View:  Build(cv),
	}
	return r.tpl.ExecuteTemplate(w, "document", data)
}

// Document is RenderDocument into a string.
func (r *Renderer) Document(cv domain.CV) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderDocument(&buf, cv); err != nil {
		return "", err
	}
	return buf.String(), nil
}
