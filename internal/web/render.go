package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed all:templates
var templatesFS embed.FS

// renderer holds the parsed page templates. Templates are addressed by
// their path under templates/, e.g. "posts/index.html" or "core/404.html".
type renderer struct {
	tmpl *template.Template
}

func newRenderer() (*renderer, error) {
	// User-submitted text goes through the UGC policy before it is marked
	// safe for the template engine.
	ugc := bluemonday.UGCPolicy()
	funcs := template.FuncMap{
		"ugc": func(s string) template.HTML {
			return template.HTML(ugc.Sanitize(s))
		},
	}

	root := template.New("").Funcs(funcs)
	err := fs.WalkDir(templatesFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		byts, err := templatesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("error reading template %s: %w", path, err)
		}
		name := strings.TrimPrefix(path, "templates/")
		if _, err := root.New(name).Parse(string(byts)); err != nil {
			return fmt.Errorf("error parsing template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &renderer{tmpl: root}, nil
}

// renderBytes executes the named template into a buffer so callers can
// cache or inspect the output before anything hits the wire.
func (rd *renderer) renderBytes(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := rd.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("error executing template %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

func (rd *renderer) render(w http.ResponseWriter, status int, name string, data any) error {
	byts, err := rd.renderBytes(name, data)
	if err != nil {
		return err
	}
	writeHTML(w, status, byts)

	return nil
}

func writeHTML(w http.ResponseWriter, status int, byts []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(byts)
}
