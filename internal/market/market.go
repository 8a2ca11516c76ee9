// Package market holds the in-memory state behind the mock marketplace
// backend: accounts, creative profiles, services, bookings, orders, escrows
// and wallets. All methods are safe for concurrent use.
package market

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hongminglow/ubu-lite/internal/models"
)

// Kind classifies a market failure.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindNotFound
	KindForbidden
	KindUnauthorized
)

// Error is a rejected operation. Field, when set, names the offending input.
type Error struct {
	Kind   Kind
	Field  string
	Detail string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Detail
	}
	return e.Detail
}

func invalid(detail string) error { return &Error{Kind: KindInvalid, Detail: detail} }
func invalidField(field, detail string) error { return &Error{Kind: KindInvalid, Field: field, Detail: detail} }
func forbidden(detail string) error { return &Error{Kind: KindForbidden, Detail: detail} }

// ErrNotFound matches DRF's default 404 detail.
var ErrNotFound = &Error{Kind: KindNotFound, Detail: "Not found."}

// IsKind reports whether err is a market Error of kind k.
func IsKind(err error, k Kind) bool {
	var me *Error
	return errors.As(err, &me) && me.Kind == k
}

// Escrow fee retained by the platform on release, in percent.
const feePercent = 33

type account struct {
	user models.User
	hash []byte
}

type wallet struct {
	available int64
	pending   int64
	updatedAt time.Time
}

// Market is the mock backend's state.
type Market struct {
	mu  sync.Mutex
	now func() time.Time
	seq map[string]int64

	accounts    []*account
	profiles    []*models.Creative
	categories  []*models.Category
	services    []*models.Service
	portfolio   []*models.PortfolioItem
	bookings    []*models.Booking
	messages    []*models.Message
	orders      []*models.Order
	reviews     []*models.Review
	escrows     []*models.Escrow
	wallets     map[int64]*wallet
	withdrawals map[int64][]*models.WithdrawalRequest

	publishableKey string
}

// Option configures a Market.
type Option func(*Market)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Market) { m.now = now }
}

// WithPublishableKey sets the key served by the payments endpoint.
func WithPublishableKey(key string) Option {
	return func(m *Market) { m.publishableKey = key }
}

// New returns a market seeded with the default categories.
func New(opts ...Option) *Market {
	m := &Market{
		now:            time.Now,
		seq:            make(map[string]int64),
		wallets:        make(map[int64]*wallet),
		withdrawals:    make(map[int64][]*models.WithdrawalRequest),
		publishableKey: "pk_test_ubu_lite",
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, c := range []struct{ slug, name string }{
		{"photography", "Photography"},
		{"videography", "Videography"},
		{"graphic-design", "Graphic Design"},
		{"music", "Music & Audio"},
	} {
		m.categories = append(m.categories, &models.Category{ID: m.next("category"), Slug: c.slug, Name: c.name})
	}
	return m
}

func (m *Market) next(kind string) int64 {
	m.seq[kind]++
	return m.seq[kind]
}

func find[T any](items []*T, match func(*T) bool) *T {
	for _, it := range items {
		if match(it) {
			return it
		}
	}
	return nil
}

func values[T any](items []*T, keep func(*T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep == nil || keep(it) {
			out = append(out, *it)
		}
	}
	return out
}

// parseMoney reads a decimal amount into cents.
func parseMoney(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if !digits(whole) || (frac != "" && !digits(frac)) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("too many decimal places in %q", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, err
	}
	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return cents, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Stats counts the records held, keyed by resource name.
func (m *Market) Stats() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]int{
		"users":     len(m.accounts),
		"creatives": len(m.profiles),
		"services":  len(m.services),
		"bookings":  len(m.bookings),
		"orders":    len(m.orders),
		"escrows":   len(m.escrows),
	}
}
