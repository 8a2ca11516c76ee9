package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Response is a successful (2xx) reply with its body fully read.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// ContentType returns the raw Content-Type header.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// IsJSON reports whether the content type names application/json.
func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType(), "application/json")
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Value returns the parsed JSON body when the response is JSON, otherwise the raw text.
func (r *Response) Value() (any, error) {
	if !r.IsJSON() {
		return r.Text(), nil
	}
	if len(r.Body) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil, &DecodeError{ContentType: r.ContentType(), Target: "any", Err: err}
	}
	return v, nil
}

// Decode decodes r into T. JSON bodies unmarshal into T; text bodies only
// fit string or any. An empty body yields the zero T.
func Decode[T any](r *Response) (T, error) {
	var out T
	if len(r.Body) == 0 {
		return out, nil
	}
	if r.IsJSON() {
		if err := json.Unmarshal(r.Body, &out); err != nil {
			return out, &DecodeError{ContentType: r.ContentType(), Target: fmt.Sprintf("%T", out), Err: err}
		}
		return out, nil
	}
	switch p := any(&out).(type) {
	case *string:
		*p = r.Text()
	case *any:
		*p = r.Text()
	default:
		return out, &DecodeError{ContentType: r.ContentType(), Target: fmt.Sprintf("%T", out)}
	}
	return out, nil
}
