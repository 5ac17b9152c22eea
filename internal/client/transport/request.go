// Package transport carries API requests to the backend over HTTP.
//
// Requests are plain values (method, path, headers, body) so they can be
// replayed after a token refresh: nothing in a Request is consumed by
// sending it.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

type Request struct {
	Method string
	// Path is relative to the transport's base URL, e.g. "services/42".
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
	// Form, when set, is sent as multipart/form-data and Body is ignored.
	Form *Form
}

// Form is a multipart payload: ordered text fields plus an optional file.
type Form struct {
	Fields []Field
	File   *File
}

type Field struct {
	Name  string
	Value string
}

type File struct {
	FieldName string
	FileName  string
	Content   []byte
}

// Add appends a text field; empty values are skipped, matching how the
// admin forms only send optional fields when they are filled in.
func (f *Form) Add(name, value string) *Form {
	if value != "" {
		f.Fields = append(f.Fields, Field{Name: name, Value: value})
	}
	return f
}

func NewRequest(method, path string) *Request {
	return &Request{Method: method, Path: path, Header: make(http.Header)}
}

// NewJSONRequest encodes v as the request body. A nil v sends no body.
func NewJSONRequest(method, path string, v any) (*Request, error) {
	r := NewRequest(method, path)
	if v == nil {
		return r, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
	}
	r.Body = b
	return r, nil
}

func NewFormRequest(method, path string, form *Form) *Request {
	r := NewRequest(method, path)
	r.Form = form
	return r
}

func (r *Request) IsMultipart() bool {
	return r.Form != nil
}

// Clone returns a copy whose headers can be mutated independently. Body and
// Form are shared; they are never modified after construction.
func (r *Request) Clone() *Request {
	c := *r
	c.Header = r.Header.Clone()
	if c.Header == nil {
		c.Header = make(http.Header)
	}
	if r.Query != nil {
		c.Query = url.Values(http.Header(r.Query).Clone())
	}
	return &c
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// IsStatus reports whether err carries an HTTP response with the given status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}
