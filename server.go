package todos

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-barry/todos/core"
	"github.com/go-barry/todos/routes"
	"github.com/go-barry/todos/store"
)

type RuntimeConfig struct {
	Env        string
	Port       int
	ConfigPath string
}

const shutdownTimeout = 5 * time.Second

var ListenAndServe = func(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Start serves the todo app until SIGINT or SIGTERM.
var Start = func(cfg RuntimeConfig) error {
	config, err := core.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return err
	}

	logger, err := core.NewLogger(os.Stderr, config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr, handler := BuildServer(ctx, cfg, config, store.New(), logger)

	logger.Info("todos running", "env", cfg.Env, "url", fmt.Sprintf("http://localhost:%d", cfg.Port))
	err = ListenAndServe(ctx, &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	})
	logger.Info("todos stopped")
	return err
}

// TemplatesFS returns the configured templates directory, or the templates
// compiled into the binary when none is set.
func TemplatesFS(config core.Config) fs.FS {
	if config.TemplatesDir != "" {
		return os.DirFS(config.TemplatesDir)
	}
	return routes.Templates
}

// BuildServer assembles the handler for one process. In dev it also starts
// a watcher that lives until ctx is done.
func BuildServer(ctx context.Context, cfg RuntimeConfig, config core.Config, todos *store.Store, logger *log.Logger) (string, http.Handler) {
	mux := http.NewServeMux()

	cacheControl := "public, max-age=31536000, immutable"
	if cfg.Env == "dev" {
		cacheControl = "no-store"
	}

	mux.Handle("/static/", makeStaticHandler(cfg.Env, config.PublicDir, filepath.Join(config.OutputDir, "static")))
	for _, name := range []string{"favicon.ico", "robots.txt"} {
		file := filepath.Join(config.PublicDir, name)
		mux.HandleFunc("/"+name, func(w http.ResponseWriter, r *http.Request) {
			if _, err := os.Stat(file); err != nil {
				http.NotFound(w, r)
				return
			}
			serveFileWithHeaders(w, r, file, cacheControl)
		})
	}

	assets := core.NewAssets(cfg.Env, config.PublicDir, config.OutputDir)

	router := core.NewRouter(config, core.RuntimeContext{
		Env:       cfg.Env,
		Templates: TemplatesFS(config),
		Funcs:     assets.TemplateFuncs(),
		Logger:    logger,
	}, routes.Pages(todos))
	mux.Handle("/", router)

	if cfg.Env == "dev" {
		reloader := core.NewLiveReloader()
		mux.HandleFunc(core.LiveReloadPath, reloader.Handler)

		dirs := []string{config.PublicDir}
		if config.TemplatesDir != "" {
			dirs = append(dirs, config.TemplatesDir)
		}
		go func() {
			if err := core.WatchDirs(ctx, dirs, reloader.BroadcastReload, logger); err != nil {
				logger.Warn("live reload watcher stopped", "err", err)
			}
		}()
	}

	return fmt.Sprintf(":%d", cfg.Port), core.WithRequestID(core.AccessLog(logger, mux))
}

// makeStaticHandler serves /static/ from the public directory. Outside dev
// it prefers minified copies in cacheDir and their .gz siblings.
func makeStaticHandler(env, publicDir, cacheDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trimmed := strings.TrimPrefix(r.URL.Path, "/static/")
		if trimmed == "" || strings.Contains(trimmed, "..") {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		if env == "dev" {
			publicFile := filepath.Join(publicDir, filepath.FromSlash(trimmed))
			if !isFile(publicFile) {
				http.NotFound(w, r)
				return
			}
			serveFileWithHeaders(w, r, publicFile, "no-store")
			return
		}

		const immutable = "public, max-age=31536000, immutable"
		cachedFile := filepath.Join(cacheDir, filepath.FromSlash(trimmed))

		if acceptsGzip(r) && isFile(cachedFile+".gz") {
			w.Header().Set("Content-Encoding", "gzip")
			w.Header().Set("Vary", "Accept-Encoding")
			w.Header().Set("Content-Type", detectMimeType(cachedFile))
			w.Header().Set("Cache-Control", immutable)
			http.ServeFile(w, r, cachedFile+".gz")
			return
		}

		if isFile(cachedFile) {
			serveFileWithHeaders(w, r, cachedFile, immutable)
			return
		}

		publicFile := filepath.Join(publicDir, filepath.FromSlash(trimmed))
		if isFile(publicFile) {
			serveFileWithHeaders(w, r, publicFile, immutable)
			return
		}

		http.NotFound(w, r)
	})
}

func serveFileWithHeaders(w http.ResponseWriter, r *http.Request, path, cacheControl string) {
	w.Header().Set("Content-Type", detectMimeType(path))
	w.Header().Set("Cache-Control", cacheControl)
	http.ServeFile(w, r, path)
}

func detectMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".ico":
		return "image/x-icon"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".woff":
		return "font/woff"
	case ".woff2":
		return "font/woff2"
	default:
		return "application/octet-stream"
	}
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
