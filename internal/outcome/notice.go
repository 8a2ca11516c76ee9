package outcome

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/hongminglow/ubu-lite/internal/gateway"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
	"github.com/hongminglow/ubu-lite/internal/session"
)

var errUnknown = errors.New("operation failed")

// Kind classifies a failure.
type Kind string

const (
	KindTransport   Kind = "transport"
	KindApplication Kind = "application"
	KindDecode      Kind = "decode"
	KindCanceled    Kind = "canceled"
	KindSession     Kind = "session" // local credential store, not the marketplace
	KindLocal       Kind = "local"
)

// TransportPrefix starts every transport notice message.
const TransportPrefix = "could not reach the marketplace"

// Notice is the display form of a failed call.
type Notice struct {
	Kind      Kind   `json:"kind"`
	Status    int    `json:"status,omitempty"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func (n Notice) String() string {
	if n.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", n.Kind, n.Status, n.Message)
	}
	return fmt.Sprintf("%s: %s", n.Kind, n.Message)
}

// Present maps any error returned by the gateway, the api layer or the
// session store to a Notice. Backend messages are carried verbatim.
func Present(err error) Notice {
	if err == nil {
		return Notice{}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Notice{Kind: KindCanceled, Message: err.Error(), Retryable: true}
	}

	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return Notice{
			Kind:      KindApplication,
			Status:    apiErr.Status,
			Message:   apiErr.Message,
			Retryable: apiErr.Status >= http.StatusInternalServerError || apiErr.Status == http.StatusTooManyRequests,
		}
	}

	var backendErr *session.BackendError
	if errors.As(err, &backendErr) {
		return Notice{Kind: KindSession, Message: err.Error()}
	}

	var gwDecode *gateway.DecodeError
	var sessDecode *session.DecodeError
	if errors.As(err, &gwDecode) || errors.As(err, &sessDecode) || errors.Is(err, dto.ErrMissingAccessToken) {
		return Notice{Kind: KindDecode, Message: err.Error()}
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Notice{
			Kind:      KindTransport,
			Message:   fmt.Sprintf("%s: %v", TransportPrefix, err),
			Retryable: true,
		}
	}

	return Notice{Kind: KindLocal, Message: err.Error()}
}
