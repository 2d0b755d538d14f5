package routes

import (
	"net/http"

	"github.com/go-barry/todos/core"
	"github.com/go-barry/todos/store"
)

const emptyTodoMessage = "Todo cannot be empty"

// Index is the todo list page. Every request shares the same store.
type Index struct {
	todos *store.Store
}

func NewIndex(todos *store.Store) *Index {
	return &Index{todos: todos}
}

func (p *Index) Page() core.Page {
	return core.Page{
		Path:     "/",
		Template: "index.html",
		Load:     p.Load,
		Actions: map[string]core.Action{
			core.DefaultActionName: p.AddTodo,
			"addTodo":              p.AddTodo,
		},
	}
}

func (p *Index) Load(e *core.Event) (map[string]interface{}, error) {
	return map[string]interface{}{
		"todos": p.todos.List(),
	}, nil
}

// AddTodo appends the submitted "todo" field and redirects back to the
// list. An empty or missing field fails with 400 and leaves the list as
// it was.
func (p *Index) AddTodo(e *core.Event) core.ActionResult {
	if err := p.todos.Add(e.Form.Get("todo")); err != nil {
		if store.IsValidationError(err) {
			return core.Fail(http.StatusBadRequest, map[string]interface{}{
				"error": emptyTodoMessage,
			})
		}
		e.Logger.Error("add todo", "err", err)
		return core.Fail(http.StatusInternalServerError, map[string]interface{}{
			"error": http.StatusText(http.StatusInternalServerError),
		})
	}

	e.Logger.Debug("todo added", "todos", p.todos.List())
	return core.RedirectTo(http.StatusSeeOther, "/")
}
