package core

import (
	"bufio"
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/Masterminds/sprig/v3"
	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
)

const layoutDirectivePrefix = "<!-- layout:"

// Renderer turns page templates from an fs.FS into HTML. A page may name a
// layout on its first line with <!-- layout: layout.html -->; the layout
// must define "layout" and pull the page in with {{ template "content" . }}.
// Every *.html file under components/ is parsed alongside the page.
type Renderer struct {
	fsys  fs.FS
	env   string
	funcs template.FuncMap
	m     *minify.M

	cache sync.Map
}

type parsedPage struct {
	tmpl  *template.Template
	entry string
}

func NewRenderer(fsys fs.FS, env string, extra template.FuncMap) *Renderer {
	funcs := sprig.HtmlFuncMap()
	funcs["liveReload"] = func() template.HTML {
		if env != "dev" {
			return ""
		}
		return LiveReloadScript
	}
	for name, fn := range extra {
		funcs[name] = fn
	}

	m := minify.New()
	m.Add("text/html", &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})

	return &Renderer{fsys: fsys, env: env, funcs: funcs, m: m}
}

// Render executes the named page with data. Templates are cached and the
// output minified outside dev.
func (r *Renderer) Render(name string, data interface{}) ([]byte, error) {
	page, err := r.page(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := page.tmpl.ExecuteTemplate(&buf, page.entry, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}

	if r.env != "prod" {
		return buf.Bytes(), nil
	}

	out, err := r.m.Bytes("text/html", buf.Bytes())
	if err != nil {
		return buf.Bytes(), nil
	}
	return out, nil
}

func (r *Renderer) page(name string) (*parsedPage, error) {
	if r.env == "prod" {
		if cached, ok := r.cache.Load(name); ok {
			return cached.(*parsedPage), nil
		}
	}

	page, err := r.parse(name)
	if err != nil {
		return nil, err
	}

	if r.env == "prod" {
		r.cache.Store(name, page)
	}
	return page, nil
}

func (r *Renderer) parse(name string) (*parsedPage, error) {
	content, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}

	layout := parseLayoutDirective(content)

	components, err := fs.Glob(r.fsys, "components/*.html")
	if err != nil {
		return nil, err
	}

	files := append([]string{name}, components...)
	entry := path.Base(name)
	if layout != "" {
		files = append([]string{layout}, files...)
		entry = "layout"
	}

	tmpl, err := template.New(path.Base(files[0])).Funcs(r.funcs).ParseFS(r.fsys, files...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	return &parsedPage{tmpl: tmpl, entry: entry}, nil
}

// parseLayoutDirective returns the layout named by the first
// <!-- layout: ... --> line of a template, or "".
func parseLayoutDirective(content []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, layoutDirectivePrefix) && strings.HasSuffix(line, "-->") {
			return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, layoutDirectivePrefix), "-->"))
		}
		return ""
	}
	return ""
}
