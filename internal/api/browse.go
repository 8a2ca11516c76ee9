package api

import (
	"context"
	"net/url"

	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/outcome"
)

func (a *API) ListCreatives(ctx context.Context) outcome.Outcome[models.List[models.Creative]] {
	return Call[models.List[models.Creative]](ctx, a, OpListCreatives, Args{})
}

func (a *API) GetCreative(ctx context.Context, id int64) outcome.Outcome[models.Creative] {
	return Call[models.Creative](ctx, a, OpGetCreative, Args{ID: id})
}

// SearchCreatives filters creatives by city or region.
func (a *API) SearchCreatives(ctx context.Context, location string) outcome.Outcome[models.List[models.Creative]] {
	q := url.Values{}
	if location != "" {
		q.Set("location", location)
	}
	return Call[models.List[models.Creative]](ctx, a, OpSearchCreatives, Args{Query: q})
}

func (a *API) ListServices(ctx context.Context) outcome.Outcome[models.List[models.Service]] {
	return Call[models.List[models.Service]](ctx, a, OpListServices, Args{})
}

func (a *API) GetService(ctx context.Context, id int64) outcome.Outcome[models.Service] {
	return Call[models.Service](ctx, a, OpGetService, Args{ID: id})
}

func (a *API) ListCategories(ctx context.Context) outcome.Outcome[models.List[models.Category]] {
	return Call[models.List[models.Category]](ctx, a, OpListCategories, Args{})
}

func (a *API) ListReviews(ctx context.Context) outcome.Outcome[models.List[models.Review]] {
	return Call[models.List[models.Review]](ctx, a, OpListReviews, Args{})
}
