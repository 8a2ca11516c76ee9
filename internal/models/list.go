package models

import (
	"bytes"
	"encoding/json"
)

// List is a collection response. List endpoints answer either a bare JSON
// array or a paginated object {count, next, previous, results}; both decode
// into the same value. Count is len(Items) for bare arrays.
type List[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Items    []T     `json:"results"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = List[T]{Count: len(items), Items: items}
		return nil
	}
	var p listPage[T]
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*l = List[T](p)
	return nil
}

// listPage has List's layout without its UnmarshalJSON method.
type listPage[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Items    []T     `json:"results"`
}

// HasMore reports whether the backend advertised another page.
func (l List[T]) HasMore() bool {
	return l.Next != nil && *l.Next != ""
}
