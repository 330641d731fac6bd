package api

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/rryowa/bookstore/internal/notify"
)

//go:embed templates/*.html
var templatesFS embed.FS

type pageData struct {
	Title         string
	Page          string
	UserID        int64
	Next          string
	Username      string
	Notifications []notify.Notification
}

type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() *templateRenderer {
	return &templateRenderer{
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
