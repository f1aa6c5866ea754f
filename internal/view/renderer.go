package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"cow-registry/internal/domain/activity"
	"cow-registry/internal/domain/cows"
	"cow-registry/internal/domain/status"
)

//go:embed templates/*.html
var templatesFS embed.FS

// DateLayout es el formato de fecha de nacimiento en las tarjetas (UTC).
const DateLayout = "2006-01-02"

// Fragment es una tarjeta ya renderizada.
type Fragment struct {
	CowNumber uint64
	HTML      template.HTML
}

type PageData struct {
	Account    string
	AccountErr string
	Status     status.Message
	Cards      []Fragment
	Activity   []activity.Entry
}

// Renderer es proyección pura: cow -> HTML. No guarda estado.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("view").Funcs(template.FuncMap{
		"date": formatDate,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustRenderer es para main y tests; los templates vienen embebidos.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Card(c cows.Cow) (Fragment, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "card", c); err != nil {
		return Fragment{}, fmt.Errorf("render cow %d: %w", c.Number, err)
	}
	return Fragment{CowNumber: c.Number, HTML: template.HTML(buf.String())}, nil
}

func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(DateLayout)
}
