package core

import (
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/segmentio/encoding/json"
)

// Event is what a load function or action receives for one request.
type Event struct {
	Request *http.Request
	Params  map[string]string
	Form    url.Values
	Logger  *log.Logger
}

type LoadFunc func(e *Event) (map[string]interface{}, error)

type Action func(e *Event) ActionResult

// ActionResult is one of Redirect, Failure or Success.
type ActionResult interface {
	actionResult()
}

type Redirect struct {
	Status   int
	Location string
}

type Failure struct {
	Status int
	Data   map[string]interface{}
}

type Success struct {
	Data map[string]interface{}
}

func (Redirect) actionResult() {}
func (Failure) actionResult()  {}
func (Success) actionResult()  {}

func RedirectTo(status int, location string) Redirect {
	return Redirect{Status: status, Location: location}
}

func Fail(status int, data map[string]interface{}) Failure {
	return Failure{Status: status, Data: data}
}

func Succeed(data map[string]interface{}) Success {
	return Success{Data: data}
}

func (r Redirect) Valid() bool {
	return r.Status >= http.StatusMultipleChoices && r.Status <= http.StatusPermanentRedirect && r.Location != ""
}

func (f Failure) Valid() bool {
	return f.Status >= http.StatusBadRequest && f.Status <= 599
}

type actionJSON struct {
	Type     string                 `json:"type"`
	Status   int                    `json:"status"`
	Location string                 `json:"location,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// encodeActionResult returns the JSON body for result and the HTTP status
// it should be written with. Redirects are answered with 200 so a fetch
// caller reads the target instead of following it.
func encodeActionResult(result ActionResult) ([]byte, int, error) {
	var body actionJSON
	status := http.StatusOK

	switch res := result.(type) {
	case Redirect:
		body = actionJSON{Type: "redirect", Status: res.Status, Location: res.Location}
	case Failure:
		body = actionJSON{Type: "failure", Status: res.Status, Data: res.Data}
		status = res.Status
	case Success:
		body = actionJSON{Type: "success", Status: http.StatusOK, Data: res.Data}
	}

	out, err := json.Marshal(body)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return out, status, nil
}
