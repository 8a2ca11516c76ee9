package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/ubu-lite/internal/http/respond"
	"github.com/hongminglow/ubu-lite/internal/market"
	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
)

// BookingHandler serves bookings, their creative-side actions and booking messages.
// Every route requires authentication.
type BookingHandler struct {
	market *market.Market
}

func NewBookingHandler(m *market.Market) *BookingHandler {
	return &BookingHandler{market: m}
}

func (h *BookingHandler) Register(r chi.Router) {
	r.Get("/bookings/", h.list)
	r.Post("/bookings/", h.create)
	r.Get("/bookings/{id}/", h.get)
	r.Patch("/bookings/{id}/", h.update)
	r.Post("/bookings/{id}/approve/", h.decide(models.BookingApproved))
	r.Post("/bookings/{id}/decline/", h.decide(models.BookingDeclined))
	r.Post("/bookings/{id}/schedule/", h.schedule)

	r.Get("/messages/{id}/", h.listMessages)
	r.Post("/messages/{id}/", h.sendMessage)
}

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	page(w, r, h.market.Bookings(user.ID))
}

func (h *BookingHandler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in dto.BookingInput
	if !decodeJSON(w, r, &in) {
		return
	}
	b, err := h.market.CreateBooking(user.ID, in)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, b)
}

func (h *BookingHandler) get(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := h.market.Booking(user.ID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, b)
}

func (h *BookingHandler) update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch dto.BookingPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	b, err := h.market.UpdateBooking(user.ID, id, patch)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, b)
}

func (h *BookingHandler) decide(status models.BookingStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		b, err := h.market.Decide(user.ID, id, status)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, b)
	}
}

func (h *BookingHandler) schedule(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in dto.ScheduleInput
	if !decodeJSON(w, r, &in) {
		return
	}
	b, err := h.market.Schedule(user.ID, id, in)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, b)
}

func (h *BookingHandler) listMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, h.market.Messages(user.ID, id))
}

func (h *BookingHandler) sendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in dto.MessageInput
	if !decodeJSON(w, r, &in) {
		return
	}
	msg, err := h.market.SendMessage(user.ID, id, in.Content)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, msg)
}
