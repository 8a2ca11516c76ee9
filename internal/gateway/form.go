package gateway

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type formFile struct {
	field    string
	filename string
	content  io.Reader
}

// Form collects text fields and files for a multipart upload such as a
// portfolio item or a profile avatar.
type Form struct {
	fields [][2]string
	files  []formFile
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{}
}

// Field appends a text field. Repeated names are kept in order.
func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

// File appends file content under field, sent with the given filename.
func (f *Form) File(field, filename string, content io.Reader) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

// FileFromPath reads path eagerly and appends it under field.
func (f *Form) FileFromPath(field, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read upload %s: %w", path, err)
	}
	f.File(field, filepath.Base(path), bytes.NewReader(b))
	return nil
}

// Encode renders the form and returns the body with its multipart content type.
func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
