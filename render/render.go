package render

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Views the handlers render. Every name must resolve when the engine
// is built; an unknown view is a configuration error surfaced at
// startup, never a per-request condition.
var requiredViews = []string{
	ViewTasks,
	ViewTaskItem,
	ViewTaskEdit,
	ViewStatus,
}

// View names shared with the web package.
const (
	ViewTasks    = "tasks"
	ViewTaskItem = "task_item"
	ViewTaskEdit = "task_edit"
	ViewStatus   = "status"
)

// Engine renders named views from the embedded template set. It is
// stateless after construction and safe for concurrent use.
type Engine struct {
	tmpl *template.Template
}

// New parses the embedded views and pre-resolves every required view
// name.
func New() (*Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range requiredViews {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("view %q not defined", name)
		}
	}
	return &Engine{tmpl: tmpl}, nil
}

// Render produces the HTML for one named view. It is deterministic for
// a given view and data and does not mutate data.
func (e *Engine) Render(view string, data any) (string, error) {
	var sb strings.Builder
	if err := e.tmpl.ExecuteTemplate(&sb, view, data); err != nil {
		return "", fmt.Errorf("render %s: %w", view, err)
	}
	return sb.String(), nil
}
