package market

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
)

const (
	OrderPending = "pending"
	OrderPaid    = "paid"

	demoCreative     = "demo_creative"
	demoServiceTitle = "Demo Service"
	demoServicePrice = 100_00
)

func (m *Market) sellerOf(o *models.Order) int64 {
	s := find(m.services, func(s *models.Service) bool { return s.ID == o.Service })
	if s == nil {
		return 0
	}
	p := find(m.profiles, func(p *models.Creative) bool { return p.ID == s.CreativeProfile })
	if p == nil {
		return 0
	}
	return p.User.ID
}

func (m *Market) orderVisible(user models.User, o *models.Order) bool {
	return user.Role == models.RoleAdmin || o.Buyer == user.ID || m.sellerOf(o) == user.ID
}

// CreateOrder places an order for a service at its listed price.
func (m *Market) CreateOrder(buyerID int64, in dto.OrderInput) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := find(m.services, func(s *models.Service) bool { return s.ID == in.Service })
	if s == nil {
		return models.Order{}, invalidField("service", "Invalid pk - object does not exist.")
	}
	return m.placeOrder(buyerID, s, in.Instructions, OrderPending), nil
}

func (m *Market) placeOrder(buyerID int64, s *models.Service, instructions, status string) models.Order {
	now := m.now().UTC()
	o := &models.Order{
		ID:           m.next("order"),
		Service:      s.ID,
		Buyer:        buyerID,
		CreatedAt:    now,
		UpdatedAt:    now,
		TotalPrice:   s.Price,
		Status:       status,
		Instructions: instructions,
	}
	m.orders = append(m.orders, o)
	return *o
}

func (m *Market) Orders(user models.User) []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.orders, func(o *models.Order) bool { return m.orderVisible(user, o) })
}

func (m *Market) Order(user models.User, id int64) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := find(m.orders, func(o *models.Order) bool { return o.ID == id })
	if o == nil || !m.orderVisible(user, o) {
		return models.Order{}, ErrNotFound
	}
	return *o, nil
}

// CreatePaymentIntent issues a client secret for the buyer's order.
func (m *Market) CreatePaymentIntent(buyerID, orderID int64) (models.PaymentIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := find(m.orders, func(o *models.Order) bool { return o.ID == orderID })
	if o == nil {
		return models.PaymentIntent{}, ErrNotFound
	}
	if o.Buyer != buyerID {
		return models.PaymentIntent{}, forbidden("Only the buyer may pay for this order.")
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return models.PaymentIntent{ClientSecret: fmt.Sprintf("pi_%s_secret_%d", id[:24], o.ID)}, nil
}

func (m *Market) PublishableKey() models.PublishableKey {
	return models.PublishableKey{Key: m.publishableKey}
}

func (m *Market) Reviews() []models.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.reviews, nil)
}

func (m *Market) CreateReview(authorID int64, in dto.ReviewInput) (models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := find(m.orders, func(o *models.Order) bool { return o.ID == in.Order })
	if o == nil {
		return models.Review{}, invalidField("order", "Invalid pk - object does not exist.")
	}
	if o.Buyer != authorID {
		return models.Review{}, forbidden("Only the buyer can review this order.")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return models.Review{}, invalidField("rating", "Ensure this value is between 1 and 5.")
	}
	r := &models.Review{
		ID:        m.next("review"),
		Order:     o.ID,
		Author:    authorID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: m.now().UTC(),
	}
	m.reviews = append(m.reviews, r)
	return *r, nil
}

// fund opens a funded escrow for an order's full price.
func (m *Market) fund(o *models.Order) (*models.Escrow, error) {
	amount, err := parseMoney(o.TotalPrice)
	if err != nil {
		return nil, err
	}
	fee := amount * feePercent / 100
	now := m.now().UTC()
	e := &models.Escrow{
		ID:            m.next("escrow"),
		Order:         o.ID,
		Amount:        formatMoney(amount),
		FeePercent:    formatMoney(feePercent * 100),
		FeeAmount:     formatMoney(fee),
		CreatorAmount: formatMoney(amount - fee),
		Status:        models.EscrowFunded,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.escrows = append(m.escrows, e)
	return e, nil
}

func (m *Market) escrowOrder(e *models.Escrow) *models.Order {
	return find(m.orders, func(o *models.Order) bool { return o.ID == e.Order })
}

func (m *Market) Escrows(user models.User) []models.Escrow {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.escrows, func(e *models.Escrow) bool {
		o := m.escrowOrder(e)
		return o != nil && m.orderVisible(user, o)
	})
}

// Side is the party marking an escrow fulfilled.
type Side int

const (
	ClientSide Side = iota
	CreativeSide
)

// Fulfill marks one side of an escrow fulfilled. Once both sides are, the
// escrow is released and the creator amount lands in the creative's wallet.
func (m *Market) Fulfill(user models.User, escrowID int64, side Side) (models.FulfillResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := find(m.escrows, func(e *models.Escrow) bool { return e.ID == escrowID })
	if e == nil {
		return models.FulfillResult{}, ErrNotFound
	}
	o := m.escrowOrder(e)
	if o == nil || !m.orderVisible(user, o) {
		return models.FulfillResult{}, ErrNotFound
	}
	admin := user.Role == models.RoleAdmin
	switch side {
	case ClientSide:
		if o.Buyer != user.ID && !admin {
			return models.FulfillResult{}, forbidden("Only the client can mark fulfillment.")
		}
		e.ClientFulfilled = true
	case CreativeSide:
		if m.sellerOf(o) != user.ID && !admin {
			return models.FulfillResult{}, forbidden("Only the creative can mark fulfillment.")
		}
		e.CreativeFulfilled = true
	}
	now := m.now().UTC()
	e.UpdatedAt = now

	if e.Status == models.EscrowFunded && e.ClientFulfilled && e.CreativeFulfilled {
		creatorAmount, err := parseMoney(e.CreatorAmount)
		if err != nil {
			return models.FulfillResult{}, err
		}
		w := m.walletFor(m.sellerOf(o))
		w.available += creatorAmount
		w.updatedAt = now
		e.Status = models.EscrowReleased
		e.ReleasedAt = &now
	}
	return models.FulfillResult{Escrow: *e, Released: e.Status == models.EscrowReleased}, nil
}

// CreateDemoFundedOrder gives the caller a paid order against the demo
// service with a funded escrow.
func (m *Market) CreateDemoFundedOrder(buyerID int64) (models.FundedOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	creative := m.ensureAccount(demoCreative, models.RoleCreative)
	p := m.profileOf(creative.ID)
	if p == nil {
		p = &models.Creative{ID: m.next("profile"), User: creative}
		m.profiles = append(m.profiles, p)
	}
	s := find(m.services, func(s *models.Service) bool {
		return s.CreativeProfile == p.ID && s.Title == demoServiceTitle
	})
	if s == nil {
		s = &models.Service{
			ID:              m.next("service"),
			CreativeProfile: p.ID,
			Title:           demoServiceTitle,
			Description:     "Demo",
			Price:           formatMoney(demoServicePrice),
		}
		m.services = append(m.services, s)
	}
	order := m.placeOrder(buyerID, s, "", OrderPaid)
	o := find(m.orders, func(o *models.Order) bool { return o.ID == order.ID })
	e, err := m.fund(o)
	if err != nil {
		return models.FundedOrder{}, err
	}
	return models.FundedOrder{OrderID: o.ID, EscrowID: e.ID, Amount: e.Amount}, nil
}

func (m *Market) walletFor(userID int64) *wallet {
	w, ok := m.wallets[userID]
	if !ok {
		w = &wallet{updatedAt: m.now().UTC()}
		m.wallets[userID] = w
	}
	return w
}

func (m *Market) Wallet(userID int64) models.Wallet {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := m.walletFor(userID)
	return models.Wallet{
		AvailableBalance: formatMoney(w.available),
		PendingBalance:   formatMoney(w.pending),
		UpdatedAt:        w.updatedAt,
	}
}

// DemoWithdraw moves amount from available to pending through an approved
// withdrawal request. An empty amount withdraws the whole available balance.
func (m *Market) DemoWithdraw(userID int64, amount string) (models.WithdrawResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := m.walletFor(userID)

	cents := w.available
	if strings.TrimSpace(amount) != "" {
		var err error
		if cents, err = parseMoney(amount); err != nil {
			return models.WithdrawResult{}, invalidField("amount", "Invalid amount")
		}
	}
	if cents <= 0 {
		return models.WithdrawResult{}, invalidField("amount", "Must be > 0")
	}
	if cents > w.available {
		return models.WithdrawResult{}, invalidField("amount", "Insufficient balance")
	}

	now := m.now().UTC()
	w.available -= cents
	w.pending += cents
	w.updatedAt = now
	req := &models.WithdrawalRequest{
		ID:          m.next("withdrawal"),
		Amount:      formatMoney(cents),
		Status:      "approved",
		CreatedAt:   now,
		ProcessedAt: &now,
	}
	m.withdrawals[userID] = append(m.withdrawals[userID], req)

	return models.WithdrawResult{
		Requested:        req.Amount,
		Status:           req.Status,
		AvailableBalance: formatMoney(w.available),
		PendingBalance:   formatMoney(w.pending),
	}, nil
}

// Withdrawals lists the caller's requests, newest first.
func (m *Market) Withdrawals(userID int64) []models.WithdrawalRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	reqs := m.withdrawals[userID]
	out := make([]models.WithdrawalRequest, 0, len(reqs))
	for i := len(reqs) - 1; i >= 0; i-- {
		out = append(out, *reqs[i])
	}
	return out
}
