package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/hongminglow/ubu-lite/internal/market"
)

// JSON writes data as the response body, the way DRF renders serializers:
// no envelope.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Warn("respond: encode payload failed")
	}
}

// Detail writes a {"detail": message} error body.
func Detail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"detail": message})
}

// NoContent writes an empty 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error maps a market failure to its status and body. Field errors render
// as {"field": ["message"]}; anything unexpected is a 500.
func Error(w http.ResponseWriter, err error) {
	var me *market.Error
	if !errors.As(err, &me) {
		logrus.WithError(err).Error("respond: unexpected handler error")
		Detail(w, http.StatusInternalServerError, "A server error occurred.")
		return
	}
	status := http.StatusBadRequest
	switch me.Kind {
	case market.KindNotFound:
		status = http.StatusNotFound
	case market.KindForbidden:
		status = http.StatusForbidden
	case market.KindUnauthorized:
		status = http.StatusUnauthorized
	}
	if me.Field != "" {
		JSON(w, status, map[string][]string{me.Field: {me.Detail}})
		return
	}
	Detail(w, status, me.Detail)
}
