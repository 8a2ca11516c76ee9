package api

import (
	"context"
	"encoding/json"

	"github.com/hongminglow/ubu-lite/internal/gateway"
	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
	"github.com/hongminglow/ubu-lite/internal/outcome"
)

// Studio operations act on the signed-in creative's own profile.

func (a *API) ListPortfolio(ctx context.Context) outcome.Outcome[models.List[models.PortfolioItem]] {
	return Call[models.List[models.PortfolioItem]](ctx, a, OpListPortfolio, Args{})
}

// CreatePortfolioItem uploads form, which typically carries title,
// media_type and a file field.
func (a *API) CreatePortfolioItem(ctx context.Context, form *gateway.Form) outcome.Outcome[models.PortfolioItem] {
	return Call[models.PortfolioItem](ctx, a, OpCreatePortfolioItem, Args{Form: form})
}

func (a *API) DeletePortfolioItem(ctx context.Context, id int64) outcome.Outcome[json.RawMessage] {
	return Call[json.RawMessage](ctx, a, OpDeletePortfolioItem, Args{ID: id})
}

// ListOwnServices hits the shared services listing; the studio screen
// narrows it to the caller's profile.
func (a *API) ListOwnServices(ctx context.Context) outcome.Outcome[models.List[models.Service]] {
	return Call[models.List[models.Service]](ctx, a, OpListOwnServices, Args{})
}

func (a *API) CreateService(ctx context.Context, in dto.ServiceInput) outcome.Outcome[models.Service] {
	return Call[models.Service](ctx, a, OpCreateService, Args{Body: in})
}

func (a *API) UpdateService(ctx context.Context, id int64, patch dto.ServicePatch) outcome.Outcome[models.Service] {
	return Call[models.Service](ctx, a, OpUpdateService, Args{ID: id, Body: patch})
}

func (a *API) DeleteService(ctx context.Context, id int64) outcome.Outcome[json.RawMessage] {
	return Call[json.RawMessage](ctx, a, OpDeleteService, Args{ID: id})
}

func (a *API) GetMyProfile(ctx context.Context) outcome.Outcome[models.Creative] {
	return Call[models.Creative](ctx, a, OpGetMyProfile, Args{})
}

func (a *API) UpdateMyProfile(ctx context.Context, patch dto.ProfilePatch) outcome.Outcome[models.Creative] {
	return Call[models.Creative](ctx, a, OpUpdateMyProfile, Args{Body: patch})
}

// UpdateMyProfileMultipart sends the profile patch as a form, for avatar uploads.
func (a *API) UpdateMyProfileMultipart(ctx context.Context, form *gateway.Form) outcome.Outcome[models.Creative] {
	return Call[models.Creative](ctx, a, OpUpdateMyProfileUpload, Args{Form: form})
}
