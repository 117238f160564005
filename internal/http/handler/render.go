package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// Renderer executes the application's HTML templates. Templates are parsed
// once at startup; html/template's contextual escaping covers filenames used
// in URLs and text.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer parses every *.html template under dir.
func NewRenderer(dir string) (*Renderer, error) {
	tpl, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render executes the named template and sends it as the HTML response body.
func (r *Renderer) Render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
