package api

import (
	"context"

	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
	"github.com/hongminglow/ubu-lite/internal/outcome"
)

func (a *API) CreateBooking(ctx context.Context, in dto.BookingInput) outcome.Outcome[models.Booking] {
	return Call[models.Booking](ctx, a, OpCreateBooking, Args{Body: in})
}

// ListBookings returns the bookings visible to the caller: their own as a
// client, or those against their services as a creative.
func (a *API) ListBookings(ctx context.Context) outcome.Outcome[models.List[models.Booking]] {
	return Call[models.List[models.Booking]](ctx, a, OpListBookings, Args{})
}

func (a *API) GetBooking(ctx context.Context, id int64) outcome.Outcome[models.Booking] {
	return Call[models.Booking](ctx, a, OpGetBooking, Args{ID: id})
}

func (a *API) UpdateBooking(ctx context.Context, id int64, patch dto.BookingPatch) outcome.Outcome[models.Booking] {
	return Call[models.Booking](ctx, a, OpUpdateBooking, Args{ID: id, Body: patch})
}

func (a *API) ApproveBooking(ctx context.Context, id int64) outcome.Outcome[models.Booking] {
	return Call[models.Booking](ctx, a, OpApproveBooking, Args{ID: id})
}

func (a *API) DeclineBooking(ctx context.Context, id int64) outcome.Outcome[models.Booking] {
	return Call[models.Booking](ctx, a, OpDeclineBooking, Args{ID: id})
}

func (a *API) ScheduleBooking(ctx context.Context, id int64, in dto.ScheduleInput) outcome.Outcome[models.Booking] {
	return Call[models.Booking](ctx, a, OpScheduleBooking, Args{ID: id, Body: in})
}

func (a *API) ListMessages(ctx context.Context, bookingID int64) outcome.Outcome[models.List[models.Message]] {
	return Call[models.List[models.Message]](ctx, a, OpListMessages, Args{ID: bookingID})
}

func (a *API) SendMessage(ctx context.Context, bookingID int64, content string) outcome.Outcome[models.Message] {
	return Call[models.Message](ctx, a, OpSendMessage, Args{ID: bookingID, Body: dto.MessageInput{Content: content}})
}
