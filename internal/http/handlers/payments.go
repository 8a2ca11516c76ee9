package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/ubu-lite/internal/http/respond"
	"github.com/hongminglow/ubu-lite/internal/market"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
)

// PaymentHandler serves orders, Stripe payment intents, escrows, the
// creative wallet and the demo helpers.
type PaymentHandler struct {
	market *market.Market
}

func NewPaymentHandler(m *market.Market) *PaymentHandler {
	return &PaymentHandler{market: m}
}

func (h *PaymentHandler) Register(r chi.Router, authn Middleware) {
	r.Get("/payments/publishable-key/", h.publishableKey)

	r.Group(func(r chi.Router) {
		r.Use(authn)
		r.Post("/orders/", h.createOrder)
		r.Get("/orders/", h.listOrders)
		r.Get("/orders/{id}/", h.getOrder)
		r.Post("/payments/create-intent/", h.createIntent)

		r.Get("/escrows/", h.listEscrows)
		r.Post("/escrows/{id}/client_fulfill/", h.fulfill(market.ClientSide))
		r.Post("/escrows/{id}/creative_fulfill/", h.fulfill(market.CreativeSide))

		r.Get("/wallet/", h.wallet)
		r.Get("/withdrawals/", h.listWithdrawals)
		r.Post("/demo/create-funded-order/", h.demoFundedOrder)
		r.Post("/demo/withdraw/", h.demoWithdraw)
	})
}

func (h *PaymentHandler) publishableKey(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.market.PublishableKey())
}

func (h *PaymentHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in dto.OrderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	o, err := h.market.CreateOrder(user.ID, in)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, o)
}

func (h *PaymentHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, h.market.Orders(user))
}

func (h *PaymentHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := h.market.Order(user, id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, o)
}

func (h *PaymentHandler) createIntent(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in dto.PaymentIntentRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.Order == 0 {
		respond.Detail(w, http.StatusNotFound, "Not found.")
		return
	}
	pi, err := h.market.CreatePaymentIntent(user.ID, in.Order)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, pi)
}

func (h *PaymentHandler) listEscrows(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, h.market.Escrows(user))
}

func (h *PaymentHandler) fulfill(side market.Side) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		res, err := h.market.Fulfill(user, id, side)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, res)
	}
}

func (h *PaymentHandler) wallet(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, h.market.Wallet(user.ID))
}

func (h *PaymentHandler) listWithdrawals(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, h.market.Withdrawals(user.ID))
}

func (h *PaymentHandler) demoFundedOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	out, err := h.market.CreateDemoFundedOrder(user.ID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}

func (h *PaymentHandler) demoWithdraw(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	// amount may arrive as a JSON number or a decimal string.
	var body struct {
		Amount any `json:"amount"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	var amount string
	switch v := body.Amount.(type) {
	case nil:
	case string:
		amount = v
	case float64:
		amount = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		amount = fmt.Sprint(v)
	}
	out, err := h.market.DemoWithdraw(user.ID, amount)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}
