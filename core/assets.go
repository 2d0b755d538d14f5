package core

import (
	"bytes"
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cast"
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minjs "github.com/tdewolff/minify/v2/js"
)

var assetMediaTypes = map[string]string{
	".css": "text/css",
	".js":  "application/javascript",
}

// Assets resolves /static/ URLs used by templates. In prod it writes
// minified copies of css and js into cacheDir/static and hands out
// versioned URLs for them.
type Assets struct {
	env       string
	publicDir string
	cacheDir  string
	m         *minify.M

	lock     sync.Mutex
	minified map[string]string
}

func NewAssets(env, publicDir, cacheDir string) *Assets {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("application/javascript", minjs.Minify)

	return &Assets{
		env:       env,
		publicDir: publicDir,
		cacheDir:  cacheDir,
		m:         m,
		minified:  map[string]string{},
	}
}

// Minify returns the URL to use for a /static/ css or js path. Anything it
// cannot minify is returned unchanged.
func (a *Assets) Minify(path string) string {
	if a.env != "prod" {
		return path
	}

	ext := filepath.Ext(path)
	mediaType, ok := assetMediaTypes[ext]
	if !ok || !strings.HasPrefix(path, "/static/") {
		return path
	}

	name := strings.TrimSuffix(filepath.Base(path), ext)
	if strings.HasSuffix(name, ".min") {
		return path
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	if url, ok := a.minified[path]; ok {
		return url
	}

	src := filepath.Join(a.publicDir, strings.TrimPrefix(path, "/static/"))
	original, err := os.ReadFile(src)
	if err != nil {
		return path
	}

	var buf bytes.Buffer
	if err := a.m.Minify(mediaType, &buf, bytes.NewReader(original)); err != nil {
		return path
	}

	rel := filepath.Join(filepath.Dir(strings.TrimPrefix(path, "/static/")), name+".min"+ext)
	out := filepath.Join(a.cacheDir, "static", rel)
	if err := writeWithGzip(out, buf.Bytes()); err != nil {
		return path
	}

	url := fmt.Sprintf("/static/%s?v=%s", filepath.ToSlash(rel), contentHash(buf.Bytes()))
	a.minified[path] = url
	return url
}

// Versioned appends a content hash to a /static/ path, looking in the public
// directory first and then the cache.
func (a *Assets) Versioned(path string) string {
	if !strings.HasPrefix(path, "/static/") {
		return path
	}

	rel := strings.TrimPrefix(path, "/static/")
	for _, file := range []string{
		filepath.Join(a.publicDir, rel),
		filepath.Join(a.cacheDir, "static", rel),
	} {
		if content, err := os.ReadFile(file); err == nil {
			return fmt.Sprintf("/static/%s?v=%s", rel, contentHash(content))
		}
	}

	return path
}

func (a *Assets) TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"minify":    a.Minify,
		"versioned": a.Versioned,
		"props":     props,
		"safeHTML":  safeHTML,
	}
}

func props(values ...interface{}) (map[string]interface{}, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("props must be called with an even number of arguments")
	}
	m := make(map[string]interface{}, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, err := cast.ToStringE(values[i])
		if err != nil {
			return nil, fmt.Errorf("props key %d: %w", i/2, err)
		}
		m[key] = values[i+1]
	}
	return m, nil
}

func safeHTML(s interface{}) template.HTML {
	switch val := s.(type) {
	case template.HTML:
		return val
	case string:
		return template.HTML(val)
	default:
		return ""
	}
}

func contentHash(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])[:6]
}

func writeWithGzip(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return err
	}

	f, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(content); err != nil {
		return err
	}
	return gz.Close()
}
