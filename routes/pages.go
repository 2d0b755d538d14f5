// Package routes holds the application's pages and their templates.
package routes

import (
	"embed"

	"github.com/go-barry/todos/core"
	"github.com/go-barry/todos/store"
)

//go:embed *.html components/*.html
var Templates embed.FS

func Pages(todos *store.Store) []core.Page {
	return []core.Page{
		NewIndex(todos).Page(),
	}
}
