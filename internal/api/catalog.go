package api

import (
	"net/http"
	"strconv"
	"strings"
)

// BodyKind is how an operation sends its payload.
type BodyKind int

const (
	NoBody BodyKind = iota
	JSONBody
	MultipartBody
)

func (k BodyKind) String() string {
	switch k {
	case JSONBody:
		return "json"
	case MultipartBody:
		return "multipart"
	default:
		return "none"
	}
}

// Operation is one catalog entry: a named backend endpoint with a fixed verb.
// Path may hold a single {id} placeholder.
type Operation struct {
	Name   string
	Method string
	Path   string
	Body   BodyKind
}

// Resolve fills the {id} placeholder with id.
func (op Operation) Resolve(id int64) string {
	return strings.Replace(op.Path, "{id}", strconv.FormatInt(id, 10), 1)
}

// NeedsID reports whether the path template carries an id placeholder.
func (op Operation) NeedsID() bool {
	return strings.Contains(op.Path, "{id}")
}

var (
	OpRegister    = Operation{"register", http.MethodPost, "/auth/register/", JSONBody}
	OpLogin       = Operation{"login", http.MethodPost, "/auth/login/", JSONBody}
	OpRefresh     = Operation{"refresh_token", http.MethodPost, "/auth/refresh/", JSONBody}
	OpGoogleLogin = Operation{"google_login", http.MethodPost, "/auth/google/", JSONBody}

	OpListCreatives   = Operation{"list_creatives", http.MethodGet, "/creatives/", NoBody}
	OpGetCreative     = Operation{"get_creative", http.MethodGet, "/creatives/{id}/", NoBody}
	OpSearchCreatives = Operation{"search_creatives", http.MethodGet, "/creatives/search/", NoBody}
	OpListServices    = Operation{"list_services", http.MethodGet, "/services/", NoBody}
	OpGetService      = Operation{"get_service", http.MethodGet, "/services/{id}/", NoBody}
	OpListCategories  = Operation{"list_categories", http.MethodGet, "/categories/", NoBody}

	OpCreateBooking   = Operation{"create_booking", http.MethodPost, "/bookings/", JSONBody}
	OpListBookings    = Operation{"list_bookings", http.MethodGet, "/bookings/", NoBody}
	OpGetBooking      = Operation{"get_booking", http.MethodGet, "/bookings/{id}/", NoBody}
	OpUpdateBooking   = Operation{"update_booking", http.MethodPatch, "/bookings/{id}/", JSONBody}
	OpApproveBooking  = Operation{"approve_booking", http.MethodPost, "/bookings/{id}/approve/", JSONBody}
	OpDeclineBooking  = Operation{"decline_booking", http.MethodPost, "/bookings/{id}/decline/", JSONBody}
	OpScheduleBooking = Operation{"schedule_booking", http.MethodPost, "/bookings/{id}/schedule/", JSONBody}

	OpListMessages = Operation{"list_messages", http.MethodGet, "/messages/{id}/", NoBody}
	OpSendMessage  = Operation{"send_message", http.MethodPost, "/messages/{id}/", JSONBody}

	OpListPortfolio         = Operation{"list_portfolio", http.MethodGet, "/portfolio/", NoBody}
	OpCreatePortfolioItem   = Operation{"create_portfolio_item", http.MethodPost, "/portfolio/", MultipartBody}
	OpDeletePortfolioItem   = Operation{"delete_portfolio_item", http.MethodDelete, "/portfolio/{id}/", NoBody}
	OpListOwnServices       = Operation{"list_own_services", http.MethodGet, "/services/", NoBody}
	OpCreateService         = Operation{"create_service", http.MethodPost, "/services/", JSONBody}
	OpUpdateService         = Operation{"update_service", http.MethodPatch, "/services/{id}/", JSONBody}
	OpDeleteService         = Operation{"delete_service", http.MethodDelete, "/services/{id}/", NoBody}
	OpGetMyProfile          = Operation{"get_my_profile", http.MethodGet, "/creatives/me/", NoBody}
	OpUpdateMyProfile       = Operation{"update_my_profile", http.MethodPatch, "/creatives/me/", JSONBody}
	OpUpdateMyProfileUpload = Operation{"update_my_profile_multipart", http.MethodPatch, "/creatives/me/", MultipartBody}

	OpGetWallet             = Operation{"get_wallet", http.MethodGet, "/wallet/", NoBody}
	OpListWithdrawals       = Operation{"list_withdrawals", http.MethodGet, "/withdrawals/", NoBody}
	OpListEscrows           = Operation{"list_escrows", http.MethodGet, "/escrows/", NoBody}
	OpClientFulfill         = Operation{"client_fulfill", http.MethodPost, "/escrows/{id}/client_fulfill/", JSONBody}
	OpCreativeFulfill       = Operation{"creative_fulfill", http.MethodPost, "/escrows/{id}/creative_fulfill/", JSONBody}
	OpCreateDemoFundedOrder = Operation{"demo_create_funded_order", http.MethodPost, "/demo/create-funded-order/", JSONBody}
	OpDemoWithdraw          = Operation{"demo_withdraw", http.MethodPost, "/demo/withdraw/", JSONBody}
	OpCreateOrder           = Operation{"create_order", http.MethodPost, "/orders/", JSONBody}
	OpListOrders            = Operation{"list_orders", http.MethodGet, "/orders/", NoBody}
	OpGetOrder              = Operation{"get_order", http.MethodGet, "/orders/{id}/", NoBody}
	OpCreatePaymentIntent   = Operation{"create_payment_intent", http.MethodPost, "/payments/create-intent/", JSONBody}
	OpPublishableKey        = Operation{"publishable_key", http.MethodGet, "/payments/publishable-key/", NoBody}
	OpListReviews           = Operation{"list_reviews", http.MethodGet, "/reviews/", NoBody}
	OpCreateReview          = Operation{"create_review", http.MethodPost, "/reviews/", JSONBody}
)

// Catalog lists every operation the client knows, in a stable order.
func Catalog() []Operation {
	return []Operation{
		OpRegister, OpLogin, OpRefresh, OpGoogleLogin,
		OpListCreatives, OpGetCreative, OpSearchCreatives, OpListServices, OpGetService, OpListCategories,
		OpCreateBooking, OpListBookings, OpGetBooking, OpUpdateBooking, OpApproveBooking, OpDeclineBooking, OpScheduleBooking,
		OpListMessages, OpSendMessage,
		OpListPortfolio, OpCreatePortfolioItem, OpDeletePortfolioItem,
		OpListOwnServices, OpCreateService, OpUpdateService, OpDeleteService,
		OpGetMyProfile, OpUpdateMyProfile, OpUpdateMyProfileUpload,
		OpGetWallet, OpListWithdrawals, OpListEscrows, OpClientFulfill, OpCreativeFulfill,
		OpCreateDemoFundedOrder, OpDemoWithdraw,
		OpCreateOrder, OpListOrders, OpGetOrder, OpCreatePaymentIntent, OpPublishableKey,
		OpListReviews, OpCreateReview,
	}
}

// Lookup finds an operation by name.
func Lookup(name string) (Operation, bool) {
	for _, op := range Catalog() {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}
