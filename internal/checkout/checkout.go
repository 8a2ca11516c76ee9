// Package checkout runs the demo purchase flow: sign in a buyer, order a
// service and open a Stripe payment intent for it. Card entry happens in a
// browser with the returned client secret and publishable key.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hongminglow/ubu-lite/internal/api"
	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
	"github.com/hongminglow/ubu-lite/internal/session"
)

// Step is the flow's progress as shown to the user.
type Step string

const (
	StepIdle            Step = "idle"
	StepRegistering     Step = "registering"
	StepLoggingIn       Step = "logging_in"
	StepCreating        Step = "creating"
	StepInitializing    Step = "initializing"
	StepAwaitingPayment Step = "awaiting_payment"
	StepFailed          Step = "failed"
)

var (
	// ErrNoServices is returned when the marketplace lists nothing to buy.
	ErrNoServices = errors.New("no services available")
	// ErrServiceNotFound is returned when an explicit service id is not listed.
	ErrServiceNotFound = errors.New("service not found")
)

// Buyer is the account the flow registers and signs in.
type Buyer struct {
	Username string
	Password string
	Email    string
}

// DemoBuyer is the storefront's shared checkout account.
var DemoBuyer = Buyer{Username: "demo_buyer", Password: "DemoPass123!", Email: "demo@local"}

// Hints steer service selection and are echoed into the order instructions.
type Hints struct {
	ServiceID int64
	Service   string
	Category  string
	Date      string
	Budget    string
}

// Result is what the browser needs to collect payment.
type Result struct {
	Order          models.Order   `json:"order"`
	Service        models.Service `json:"service"`
	ClientSecret   string         `json:"client_secret"`
	PublishableKey string         `json:"publishable_key"`
}

// Flow runs checkouts. It holds no per-run state.
type Flow struct {
	api     *api.API
	session *session.Store
	buyer   Buyer
	observe func(Step)
	log     logrus.FieldLogger
}

// Option configures a Flow.
type Option func(*Flow)

// WithBuyer replaces DemoBuyer.
func WithBuyer(b Buyer) Option {
	return func(f *Flow) { f.buyer = b }
}

// WithObserver receives every step transition.
func WithObserver(fn func(Step)) Option {
	return func(f *Flow) { f.observe = fn }
}

// WithLogger sets the logger for step transitions.
func WithLogger(log logrus.FieldLogger) Option {
	return func(f *Flow) { f.log = log }
}

// New returns a flow calling through a and persisting the buyer's session to store.
func New(a *api.API, store *session.Store, opts ...Option) *Flow {
	f := &Flow{
		api:     a,
		session: store,
		buyer:   DemoBuyer,
		observe: func(Step) {},
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) enter(s Step) {
	f.log.WithField("step", s).Debug("checkout")
	f.observe(s)
}

// Run performs each step in order, awaiting one before starting the next.
// A failed registration is ignored since the buyer may already exist; any
// other failure ends the run in StepFailed.
func (f *Flow) Run(ctx context.Context, hints Hints) (Result, error) {
	res, err := f.run(ctx, hints)
	if err != nil {
		f.enter(StepFailed)
		return Result{}, err
	}
	f.enter(StepAwaitingPayment)
	return res, nil
}

func (f *Flow) run(ctx context.Context, hints Hints) (Result, error) {
	anon := f.api.WithToken("")

	f.enter(StepRegistering)
	if reg := anon.Register(ctx, dto.RegisterRequest{
		Username: f.buyer.Username,
		Email:    f.buyer.Email,
		Password: f.buyer.Password,
		Role:     models.RoleClient,
	}); !reg.OK() {
		f.log.WithError(reg.Err()).Debug("checkout: register skipped")
	}

	f.enter(StepLoggingIn)
	login, err := anon.Login(ctx, dto.LoginRequest{Username: f.buyer.Username, Password: f.buyer.Password}).Get()
	if err != nil {
		return Result{}, fmt.Errorf("login: %w", err)
	}
	if f.session != nil {
		if err := f.session.Begin(ctx, login, f.buyer.Username); err != nil {
			return Result{}, fmt.Errorf("save session: %w", err)
		}
	}
	buyer := f.api.WithToken(login.Access)

	f.enter(StepCreating)
	services, err := buyer.ListServices(ctx).Get()
	if err != nil {
		return Result{}, fmt.Errorf("list services: %w", err)
	}
	svc, err := SelectService(services.Items, hints)
	if err != nil {
		return Result{}, err
	}
	order, err := buyer.CreateOrder(ctx, dto.OrderInput{Service: svc.ID, Instructions: Instructions(hints)}).Get()
	if err != nil {
		return Result{}, fmt.Errorf("create order: %w", err)
	}

	f.enter(StepInitializing)
	intent, err := buyer.CreatePaymentIntent(ctx, order.ID).Get()
	if err != nil {
		return Result{}, fmt.Errorf("create payment intent: %w", err)
	}
	key, err := buyer.PublishableKey(ctx).Get()
	if err != nil {
		return Result{}, fmt.Errorf("publishable key: %w", err)
	}

	return Result{
		Order:          order,
		Service:        svc,
		ClientSecret:   intent.ClientSecret,
		PublishableKey: key.Key,
	}, nil
}

// SelectService picks the service with the explicit id, failing with
// ErrServiceNotFound when it is not listed. Without an id it takes the
// first title containing hints.Service, else the first category containing
// hints.Category, else the first service. Matching ignores case.
func SelectService(services []models.Service, hints Hints) (models.Service, error) {
	if len(services) == 0 {
		return models.Service{}, ErrNoServices
	}
	if hints.ServiceID != 0 {
		for _, s := range services {
			if s.ID == hints.ServiceID {
				return s, nil
			}
		}
		return models.Service{}, fmt.Errorf("%w: id %d", ErrServiceNotFound, hints.ServiceID)
	}
	if q := strings.ToLower(strings.TrimSpace(hints.Service)); q != "" {
		for _, s := range services {
			if strings.Contains(strings.ToLower(s.Title), q) {
				return s, nil
			}
		}
	}
	if q := strings.ToLower(strings.TrimSpace(hints.Category)); q != "" {
		for _, s := range services {
			if strings.Contains(strings.ToLower(s.CategoryName), q) {
				return s, nil
			}
		}
	}
	return services[0], nil
}

// Instructions renders the order note, e.g.
// "Checkout demo | Service: Portraits | Date: 2026-03-01 | Budget: 200".
func Instructions(h Hints) string {
	parts := []string{"Checkout demo"}
	if h.Service != "" {
		parts = append(parts, "Service: "+h.Service)
	}
	if h.Date != "" {
		parts = append(parts, "Date: "+h.Date)
	}
	if h.Budget != "" {
		parts = append(parts, "Budget: "+h.Budget)
	}
	return strings.Join(parts, " | ")
}
