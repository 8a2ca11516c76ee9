package models

import "time"

// Money amounts are kept as the decimal strings the backend emits ("100.00").
// The client displays them and never does arithmetic on them.

// Category groups services on the storefront.
type Category struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ServiceBrief is the short service form embedded in creative profiles.
type ServiceBrief struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	CategoryName string `json:"category_name,omitempty"`
	Price        string `json:"price"`
}

// Service is a gig offered by a creative.
type Service struct {
	ID              int64  `json:"id"`
	CreativeProfile int64  `json:"creative_profile"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        *int64 `json:"category"`
	CategoryName    string `json:"category_name,omitempty"`
	Price           string `json:"price"`
}

// PortfolioItem is an uploaded file or external link on a creative profile.
type PortfolioItem struct {
	ID          int64     `json:"id"`
	Profile     int64     `json:"profile"`
	Title       string    `json:"title"`
	MediaType   string    `json:"media_type"`
	File        *string   `json:"file"`
	ExternalURL string    `json:"external_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Creative is a creative profile as listed on the storefront.
type Creative struct {
	ID             int64           `json:"id"`
	User           User            `json:"user"`
	Bio            string          `json:"bio"`
	Skills         string          `json:"skills"`
	PortfolioLinks string          `json:"portfolio_links"`
	Avatar         *string         `json:"avatar"`
	HourlyRate     *string         `json:"hourly_rate"`
	City           string          `json:"city"`
	Region         string          `json:"region"`
	PortfolioItems []PortfolioItem `json:"portfolio_items,omitempty"`
	Services       []ServiceBrief  `json:"services,omitempty"`
}

// BookingStatus is computed by the backend; the client only displays it.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingDeclined BookingStatus = "declined"
)

// Booking is a client's session request against a service.
type Booking struct {
	ID              int64         `json:"id"`
	Service         int64         `json:"service"`
	Client          int64         `json:"client"`
	Date            time.Time     `json:"date"`
	DurationMinutes *int          `json:"duration_minutes"`
	Notes           string        `json:"notes"`
	MeetURL         string        `json:"meet_url"`
	Status          BookingStatus `json:"status"`
}

// Message is one entry of a booking conversation.
type Message struct {
	ID        int64     `json:"id"`
	Booking   int64     `json:"booking"`
	Sender    int64     `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderExtra is a gig extra attached to an order.
type OrderExtra struct {
	ID    int64  `json:"id"`
	Order int64  `json:"order"`
	Extra int64  `json:"extra"`
	Price string `json:"price"`
}

// Order is a purchase of a service.
type Order struct {
	ID               int64        `json:"id"`
	Service          int64        `json:"service"`
	Buyer            int64        `json:"buyer"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	DeliveryDeadline *time.Time   `json:"delivery_deadline"`
	TotalPrice       string       `json:"total_price"`
	Status           string       `json:"status"`
	Instructions     string       `json:"instructions"`
	OrderExtras      []OrderExtra `json:"order_extras,omitempty"`
}

// Review is a buyer's rating of a completed order.
type Review struct {
	ID        int64     `json:"id"`
	Order     int64     `json:"order"`
	Author    int64     `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// EscrowStatus values are owned by the backend.
type EscrowStatus string

const (
	EscrowFunded   EscrowStatus = "funded"
	EscrowReleased EscrowStatus = "released"
	EscrowRefunded EscrowStatus = "refunded"
)

// Escrow is the backend-held payment state of an order.
type Escrow struct {
	ID                int64        `json:"id"`
	Order             int64        `json:"order"`
	Amount            string       `json:"amount"`
	FeePercent        string       `json:"fee_percent"`
	FeeAmount         string       `json:"fee_amount"`
	CreatorAmount     string       `json:"creator_amount"`
	Status            EscrowStatus `json:"status"`
	ClientFulfilled   bool         `json:"client_fulfilled"`
	CreativeFulfilled bool         `json:"creative_fulfilled"`
	ReleasedAt        *time.Time   `json:"released_at"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// FulfillResult is an escrow returned from a fulfillment action.
type FulfillResult struct {
	Escrow
	Released bool `json:"released"`
}

// Wallet holds a creative's balances.
type Wallet struct {
	AvailableBalance string    `json:"available_balance"`
	PendingBalance   string    `json:"pending_balance"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// WithdrawalRequest moves funds out of a wallet.
type WithdrawalRequest struct {
	ID          int64      `json:"id"`
	Amount      string     `json:"amount"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at"`
}

// FundedOrder is the result of the demo helper that creates a paid order with a funded escrow.
type FundedOrder struct {
	OrderID  int64  `json:"order_id"`
	EscrowID int64  `json:"escrow_id"`
	Amount   string `json:"amount"`
}

// WithdrawResult is the result of the demo withdrawal helper.
type WithdrawResult struct {
	Requested        string `json:"requested"`
	Status           string `json:"status"`
	AvailableBalance string `json:"available_balance"`
	PendingBalance   string `json:"pending_balance"`
}

// PaymentIntent carries the Stripe client secret for an order.
type PaymentIntent struct {
	ClientSecret string `json:"client_secret"`
}

// PublishableKey is the Stripe key safe to expose to browsers.
type PublishableKey struct {
	Key string `json:"publishableKey"`
}
