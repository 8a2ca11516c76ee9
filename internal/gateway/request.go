package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Request describes one call relative to the client's base prefix. It is
// built per call and discarded afterwards.
type Request struct {
	Path   string
	Method string
	Header http.Header
	Body   io.Reader
}

// Get builds a body-less GET.
func Get(path string) Request {
	return Request{Path: path, Method: http.MethodGet}
}

// Delete builds a body-less DELETE.
func Delete(path string) Request {
	return Request{Path: path, Method: http.MethodDelete}
}

// JSON builds a request whose body is payload encoded as JSON. A nil
// payload encodes as {} so action endpoints always receive an object.
func JSON(method, path string, payload any) (Request, error) {
	if payload == nil {
		payload = struct{}{}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Request{}, fmt.Errorf("encode %s %s body: %w", method, path, err)
	}
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	return Request{Path: path, Method: method, Header: h, Body: bytes.NewReader(b)}, nil
}

// Multipart builds a request carrying form as a multipart body. The boundary
// content type comes from the encoder; callers never set it.
func Multipart(method, path string, form *Form) (Request, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return Request{}, fmt.Errorf("encode %s %s form: %w", method, path, err)
	}
	h := make(http.Header)
	h.Set("Content-Type", contentType)
	return Request{Path: path, Method: method, Header: h, Body: body}, nil
}
