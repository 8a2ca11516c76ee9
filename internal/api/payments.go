package api

import (
	"context"

	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
	"github.com/hongminglow/ubu-lite/internal/outcome"
)

func (a *API) GetWallet(ctx context.Context) outcome.Outcome[models.Wallet] {
	return Call[models.Wallet](ctx, a, OpGetWallet, Args{})
}

func (a *API) ListWithdrawals(ctx context.Context) outcome.Outcome[models.List[models.WithdrawalRequest]] {
	return Call[models.List[models.WithdrawalRequest]](ctx, a, OpListWithdrawals, Args{})
}

func (a *API) ListEscrows(ctx context.Context) outcome.Outcome[models.List[models.Escrow]] {
	return Call[models.List[models.Escrow]](ctx, a, OpListEscrows, Args{})
}

func (a *API) ClientFulfill(ctx context.Context, escrowID int64) outcome.Outcome[models.FulfillResult] {
	return Call[models.FulfillResult](ctx, a, OpClientFulfill, Args{ID: escrowID})
}

func (a *API) CreativeFulfill(ctx context.Context, escrowID int64) outcome.Outcome[models.FulfillResult] {
	return Call[models.FulfillResult](ctx, a, OpCreativeFulfill, Args{ID: escrowID})
}

// CreateDemoFundedOrder asks the backend to fabricate a paid order with a
// funded escrow for the caller.
func (a *API) CreateDemoFundedOrder(ctx context.Context) outcome.Outcome[models.FundedOrder] {
	return Call[models.FundedOrder](ctx, a, OpCreateDemoFundedOrder, Args{})
}

// DemoWithdraw withdraws amount, or the whole available balance when amount is zero.
func (a *API) DemoWithdraw(ctx context.Context, amount float64) outcome.Outcome[models.WithdrawResult] {
	return Call[models.WithdrawResult](ctx, a, OpDemoWithdraw, Args{Body: dto.WithdrawRequest{Amount: amount}})
}

func (a *API) CreateOrder(ctx context.Context, in dto.OrderInput) outcome.Outcome[models.Order] {
	return Call[models.Order](ctx, a, OpCreateOrder, Args{Body: in})
}

func (a *API) ListOrders(ctx context.Context) outcome.Outcome[models.List[models.Order]] {
	return Call[models.List[models.Order]](ctx, a, OpListOrders, Args{})
}

func (a *API) GetOrder(ctx context.Context, id int64) outcome.Outcome[models.Order] {
	return Call[models.Order](ctx, a, OpGetOrder, Args{ID: id})
}

func (a *API) CreatePaymentIntent(ctx context.Context, orderID int64) outcome.Outcome[models.PaymentIntent] {
	return Call[models.PaymentIntent](ctx, a, OpCreatePaymentIntent, Args{Body: dto.PaymentIntentRequest{Order: orderID}})
}

func (a *API) PublishableKey(ctx context.Context) outcome.Outcome[models.PublishableKey] {
	return Call[models.PublishableKey](ctx, a, OpPublishableKey, Args{})
}

func (a *API) CreateReview(ctx context.Context, in dto.ReviewInput) outcome.Outcome[models.Review] {
	return Call[models.Review](ctx, a, OpCreateReview, Args{Body: in})
}
