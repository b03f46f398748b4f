// Package view renders the server-side HTML pages of the self-service form.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

const (
	LoginPage = "login.html"
	FormPage  = "form.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoginData feeds the login page
type LoginData struct {
	CompanyName string
	Invalid     bool
	Username    string
}

// Renderer implements echo.Renderer over the embedded templates
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
