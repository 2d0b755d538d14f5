package core

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

const DefaultActionName = "default"

// Page binds a URL path to a template, an optional load function and the
// form actions a POST to that path may run. Path segments written as
// [name] match any single segment and are passed to handlers as Params.
type Page struct {
	Path     string
	Template string
	Load     LoadFunc
	Actions  map[string]Action
}

type RuntimeContext struct {
	Env       string
	Templates fs.FS
	Funcs     template.FuncMap
	Logger    *log.Logger
}

type Route struct {
	URLPattern *regexp.Regexp
	ParamKeys  []string
	Page       Page
}

type Router struct {
	config   Config
	env      string
	routes   []Route
	renderer *Renderer
	logger   *log.Logger
}

var NewRouter = func(config Config, ctx RuntimeContext, pages []Page) http.Handler {
	logger := ctx.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := &Router{
		config:   config,
		env:      ctx.Env,
		renderer: NewRenderer(ctx.Templates, ctx.Env, ctx.Funcs),
		logger:   logger,
	}
	for _, page := range pages {
		r.routes = append(r.routes, compileRoute(page))
	}
	return r
}

func (r *Router) Routes() []Route {
	return r.routes
}

func compileRoute(page Page) Route {
	parts := strings.Split(strings.Trim(page.Path, "/"), "/")
	paramKeys := []string{}
	pattern := ""

	for _, part := range parts {
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") {
			paramKeys = append(paramKeys, part[1:len(part)-1])
			pattern += "/([^/]+)"
		} else {
			pattern += "/" + regexp.QuoteMeta(part)
		}
	}

	return Route{
		URLPattern: regexp.MustCompile("^" + strings.TrimPrefix(pattern, "/") + "$"),
		ParamKeys:  paramKeys,
		Page:       page,
	}
}

func (r *Router) match(urlPath string) (Route, map[string]string, bool) {
	path := strings.Trim(urlPath, "/")
	for _, route := range r.routes {
		if matches := route.URLPattern.FindStringSubmatch(path); matches != nil {
			params := map[string]string{}
			for i, key := range route.ParamKeys {
				params[key] = matches[i+1]
			}
			return route, params, true
		}
	}
	return Route{}, nil, false
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	route, params, ok := r.match(req.URL.Path)
	if !ok {
		http.NotFound(w, req)
		return
	}

	if r.config.DebugHeaders {
		w.Header().Set("X-Todos-Route", route.Page.Template)
		if id := RequestIDFromContext(req.Context()); id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
	}

	event := &Event{
		Request: req,
		Params:  params,
		Logger:  r.logger.With("route", route.Page.Path, "request_id", RequestIDFromContext(req.Context())),
	}

	switch req.Method {
	case http.MethodGet, http.MethodHead:
		r.servePage(w, req, route.Page, event, http.StatusOK, nil)
	case http.MethodPost:
		r.serveAction(w, req, route.Page, event)
	default:
		event.Logger.Debug("method not allowed", "err", fmt.Errorf("%s %s: %w", req.Method, route.Page.Path, ErrMethodNotAllowed))
		w.Header().Set("Allow", allowedMethods(route.Page))
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func allowedMethods(page Page) string {
	if len(page.Actions) == 0 {
		return "GET, HEAD"
	}
	return "GET, HEAD, POST"
}

// servePage runs the page's load function and renders it. form is exposed
// to the template as .Form.
func (r *Router) servePage(w http.ResponseWriter, req *http.Request, page Page, event *Event, status int, form map[string]interface{}) {
	data := map[string]interface{}{}
	if page.Load != nil {
		loaded, err := page.Load(event)
		if err != nil {
			if IsNotFoundError(err) {
				http.NotFound(w, req)
				return
			}
			r.serverError(w, event, "load failed", err)
			return
		}
		for k, v := range loaded {
			data[k] = v
		}
	}

	data["Form"] = form
	data["Env"] = r.env
	data["Path"] = req.URL.Path

	html, err := r.renderer.Render(page.Template, data)
	if err != nil {
		r.serverError(w, event, "render failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if status == http.StatusOK {
		etag := fmt.Sprintf(`"%s"`, bodyHash(html))
		w.Header().Set("ETag", etag)
		if match := req.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(status)
	_, _ = w.Write(html)
}

func (r *Router) serveAction(w http.ResponseWriter, req *http.Request, page Page, event *Event) {
	name, action, err := resolveAction(req, page)
	if err != nil {
		event.Logger.Debug("action not run", "err", err)
		switch {
		case IsMethodNotAllowedError(err):
			w.Header().Set("Allow", allowedMethods(page))
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		case IsUnknownActionError(err):
			http.Error(w, "Not Found", http.StatusNotFound)
		default:
			http.Error(w, "Bad Request", http.StatusBadRequest)
		}
		return
	}

	if r.config.MaxFormBytes > 0 {
		req.Body = http.MaxBytesReader(w, req.Body, r.config.MaxFormBytes)
	}
	if err := req.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	event.Form = req.PostForm

	result := action(event)
	if result == nil {
		r.serverError(w, event, "action returned no result", fmt.Errorf("action %q", name))
		return
	}

	if redirect, ok := result.(Redirect); ok && !redirect.Valid() {
		r.serverError(w, event, "invalid redirect", fmt.Errorf("status %d to %q", redirect.Status, redirect.Location))
		return
	}
	if failure, ok := result.(Failure); ok && !failure.Valid() {
		r.serverError(w, event, "invalid failure", fmt.Errorf("status %d", failure.Status))
		return
	}

	if wantsJSON(req) {
		body, status, err := encodeActionResult(result)
		if err != nil {
			r.serverError(w, event, "encode action result", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
		return
	}

	switch res := result.(type) {
	case Redirect:
		http.Redirect(w, req, res.Location, res.Status)
	case Failure:
		r.servePage(w, req, page, event, res.Status, res.Data)
	case Success:
		r.servePage(w, req, page, event, http.StatusOK, res.Data)
	}
}

func (r *Router) serverError(w http.ResponseWriter, event *Event, msg string, err error) {
	event.Logger.Error(msg, "err", err)
	if r.env == "dev" {
		http.Error(w, msg+": "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// actionName reads the action from a query key of the form "/name", so a
// form posting to "?/addTodo" runs addTodo. Without one the default action
// runs. Naming more than one action is an error.
func actionName(req *http.Request) (string, error) {
	var names []string
	for key := range req.URL.Query() {
		if strings.HasPrefix(key, "/") && len(key) > 1 {
			names = append(names, key[1:])
		}
	}

	switch len(names) {
	case 0:
		return DefaultActionName, nil
	case 1:
		return names[0], nil
	default:
		sort.Strings(names)
		return "", fmt.Errorf("actions %s: %w", strings.Join(names, ", "), ErrAmbiguousAction)
	}
}

func resolveAction(req *http.Request, page Page) (string, Action, error) {
	if len(page.Actions) == 0 {
		return "", nil, fmt.Errorf("POST %s: %w", page.Path, ErrMethodNotAllowed)
	}

	name, err := actionName(req)
	if err != nil {
		return "", nil, err
	}

	action, ok := page.Actions[name]
	if !ok {
		return name, nil, fmt.Errorf("action %q: %w", name, ErrUnknownAction)
	}
	return name, action, nil
}

func wantsJSON(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}

func bodyHash(body []byte) string {
	sum := md5.Sum(body)
	return hex.EncodeToString(sum[:])
}
