package market

import (
	"sort"
	"strings"

	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
)

// creativeOf returns the user id owning the booked service, or 0.
func (m *Market) creativeOf(b *models.Booking) int64 {
	s := find(m.services, func(s *models.Service) bool { return s.ID == b.Service })
	if s == nil {
		return 0
	}
	p := find(m.profiles, func(p *models.Creative) bool { return p.ID == s.CreativeProfile })
	if p == nil {
		return 0
	}
	return p.User.ID
}

func (m *Market) participant(userID int64, b *models.Booking) bool {
	return b.Client == userID || m.creativeOf(b) == userID
}

// visibleBooking returns a booking the caller takes part in. Others are reported as missing.
func (m *Market) visibleBooking(userID, id int64) (*models.Booking, error) {
	b := find(m.bookings, func(b *models.Booking) bool { return b.ID == id })
	if b == nil || !m.participant(userID, b) {
		return nil, ErrNotFound
	}
	return b, nil
}

// CreateBooking books a service for the caller. New bookings are pending.
func (m *Market) CreateBooking(clientID int64, in dto.BookingInput) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if find(m.services, func(s *models.Service) bool { return s.ID == in.Service }) == nil {
		return models.Booking{}, invalidField("service", "Invalid pk - object does not exist.")
	}
	if in.Date.IsZero() {
		return models.Booking{}, invalidField("date", "This field is required.")
	}
	b := &models.Booking{
		ID:      m.next("booking"),
		Service: in.Service,
		Client:  clientID,
		Date:    in.Date.UTC(),
		Notes:   in.Notes,
		Status:  models.BookingPending,
	}
	if in.DurationMinutes > 0 {
		d := in.DurationMinutes
		b.DurationMinutes = &d
	}
	m.bookings = append(m.bookings, b)
	return *b, nil
}

// Bookings lists the caller's bookings, newest date first.
func (m *Market) Bookings(userID int64) []models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := values(m.bookings, func(b *models.Booking) bool { return m.participant(userID, b) })
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *Market) Booking(userID, id int64) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.visibleBooking(userID, id)
	if err != nil {
		return models.Booking{}, err
	}
	return *b, nil
}

// UpdateBooking applies a partial update. Only the creative may change the status.
func (m *Market) UpdateBooking(userID, id int64, patch dto.BookingPatch) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.visibleBooking(userID, id)
	if err != nil {
		return models.Booking{}, err
	}
	if patch.Status != nil {
		if m.creativeOf(b) != userID {
			return models.Booking{}, forbidden("Only the creative can update status.")
		}
		status := models.BookingStatus(strings.ToLower(*patch.Status))
		switch status {
		case models.BookingPending, models.BookingApproved, models.BookingDeclined:
			b.Status = status
		default:
			return models.Booking{}, invalid("Invalid status.")
		}
	}
	if patch.Date != nil {
		b.Date = patch.Date.UTC()
	}
	if patch.DurationMinutes != nil {
		d := *patch.DurationMinutes
		b.DurationMinutes = &d
	}
	if patch.Notes != nil {
		b.Notes = *patch.Notes
	}
	return *b, nil
}

// Decide approves or declines a booking on behalf of its creative.
func (m *Market) Decide(userID, id int64, status models.BookingStatus) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.visibleBooking(userID, id)
	if err != nil {
		return models.Booking{}, err
	}
	if m.creativeOf(b) != userID {
		verb := "approve"
		if status == models.BookingDeclined {
			verb = "decline"
		}
		return models.Booking{}, forbidden("Only the creative can " + verb + ".")
	}
	b.Status = status
	return *b, nil
}

// Schedule sets the meeting link and optional duration.
func (m *Market) Schedule(userID, id int64, in dto.ScheduleInput) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.visibleBooking(userID, id)
	if err != nil {
		return models.Booking{}, err
	}
	if m.creativeOf(b) != userID {
		return models.Booking{}, forbidden("Only the creative can schedule.")
	}
	if in.DurationMinutes < 0 {
		return models.Booking{}, invalid("Invalid duration.")
	}
	b.MeetURL = strings.TrimSpace(in.MeetURL)
	if in.DurationMinutes > 0 {
		d := in.DurationMinutes
		b.DurationMinutes = &d
	}
	return *b, nil
}

// Messages lists a booking's conversation for one of its participants.
func (m *Market) Messages(userID, bookingID int64) []models.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := find(m.bookings, func(b *models.Booking) bool { return b.ID == bookingID })
	if b == nil || !m.participant(userID, b) {
		return []models.Message{}
	}
	return values(m.messages, func(msg *models.Message) bool { return msg.Booking == bookingID })
}

func (m *Market) SendMessage(userID, bookingID int64, content string) (models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := find(m.bookings, func(b *models.Booking) bool { return b.ID == bookingID })
	if b == nil {
		return models.Message{}, ErrNotFound
	}
	if !m.participant(userID, b) {
		return models.Message{}, forbidden("Only booking participants can post messages.")
	}
	if strings.TrimSpace(content) == "" {
		return models.Message{}, invalidField("content", "This field may not be blank.")
	}
	msg := &models.Message{
		ID:        m.next("message"),
		Booking:   bookingID,
		Sender:    userID,
		Content:   content,
		Timestamp: m.now().UTC(),
	}
	m.messages = append(m.messages, msg)
	return *msg, nil
}
