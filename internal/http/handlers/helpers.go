package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/ubu-lite/internal/http/respond"
	"github.com/hongminglow/ubu-lite/internal/middleware"
	"github.com/hongminglow/ubu-lite/internal/models"
)

const (
	pageSize       = 10
	maxUploadBytes = 10 << 20
)

// decodeJSON reads an optional JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	respond.Detail(w, http.StatusBadRequest, "JSON parse error - "+err.Error())
	return false
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// pathID reads the {id} URL parameter. Non-numeric ids are a 404, as with DRF's int converters.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

func currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		respond.Detail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
	}
	return u, ok
}

func required(w http.ResponseWriter, field string) {
	respond.JSON(w, http.StatusBadRequest, map[string][]string{field: {"This field is required."}})
}

// page renders items with DRF's page-number pagination.
func page[T any](w http.ResponseWriter, r *http.Request, items []T) {
	n := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			respond.Detail(w, http.StatusNotFound, "Invalid page.")
			return
		}
		n = v
	}
	pages := int(math.Max(1, math.Ceil(float64(len(items))/pageSize)))
	if n > pages {
		respond.Detail(w, http.StatusNotFound, "Invalid page.")
		return
	}
	start := (n - 1) * pageSize
	end := min(start+pageSize, len(items))

	link := func(p int) *string {
		if p < 1 || p > pages {
			return nil
		}
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(p))
		u := "http://" + r.Host + r.URL.Path + "?" + q.Encode()
		return &u
	}
	respond.JSON(w, http.StatusOK, models.List[T]{
		Count:    len(items),
		Next:     link(n + 1),
		Previous: link(n - 1),
		Items:    items[start:end],
	})
}
