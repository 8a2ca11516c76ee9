package dto

import "time"

// Write payloads. Pointer fields with omitempty are partial updates: only
// set fields are sent.

type BookingInput struct {
	Service         int64     `json:"service"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

type BookingPatch struct {
	Date            *time.Time `json:"date,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Status          *string    `json:"status,omitempty"`
}

type ScheduleInput struct {
	MeetURL         string `json:"meet_url"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

type MessageInput struct {
	Content string `json:"content"`
}

type ServiceInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    *int64 `json:"category,omitempty"`
	Price       string `json:"price"`
}

type ServicePatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *int64  `json:"category,omitempty"`
	Price       *string `json:"price,omitempty"`
}

type ProfilePatch struct {
	Bio            *string `json:"bio,omitempty"`
	Skills         *string `json:"skills,omitempty"`
	HourlyRate     *string `json:"hourly_rate,omitempty"`
	City           *string `json:"city,omitempty"`
	Region         *string `json:"region,omitempty"`
	PortfolioLinks *string `json:"portfolio_links,omitempty"`
}

type OrderInput struct {
	Service      int64   `json:"service"`
	Instructions string  `json:"instructions,omitempty"`
	Extras       []int64 `json:"extras,omitempty"`
}

type ReviewInput struct {
	Order   int64  `json:"order"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type PaymentIntentRequest struct {
	Order int64 `json:"order"`
}

type WithdrawRequest struct {
	Amount float64 `json:"amount,omitempty"`
}
