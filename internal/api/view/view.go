// Package view renders portal screens with html/template. Every screen is a
// "content" block executed inside the shared layout.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/screens"
)

// ViewError is the template of error pages.
const ViewError = "error"

//go:embed templates/*.html
var files embed.FS

// Page is the data every template receives.
type Page struct {
	Path     string
	Identity *domain.BasicUserInfo
	Data     any
	Notices  []domain.Notice
	// Form holds submitted values when a form is re-rendered.
	Form   map[string]string
	Errors map[string]string
	CSRF   string

	Status  int
	Message string
}

// Value returns the submitted value of a form field.
func (p Page) Value(field string) string { return p.Form[field] }

// Error returns the validation message of a form field.
func (p Page) Error(field string) string { return p.Errors[field] }

var vnd = message.NewPrinter(language.Vietnamese)

// Money formats an amount of đồng with Vietnamese digit grouping.
func Money(amount int64) string {
	return vnd.Sprintf("%v ₫", number.Decimal(amount))
}

var funcs = template.FuncMap{
	"money": Money,
	"menu":  screens.MenuFor,
}

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the layout together with every screen template.
func New() (*Renderer, error) {
	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, file := range names {
		name := strings.TrimSuffix(path.Base(file), ".html")
		if name == "layout" || name == "partials" {
			continue
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/partials.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Has reports whether a view exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
