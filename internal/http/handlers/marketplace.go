package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/ubu-lite/internal/http/respond"
	"github.com/hongminglow/ubu-lite/internal/market"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
)

// Middleware wraps a handler; used to mark routes as requiring auth.
type Middleware = func(http.Handler) http.Handler

// MarketplaceHandler serves the storefront catalogue: creatives, services,
// categories, reviews and the caller's own creative profile.
type MarketplaceHandler struct {
	market *market.Market
}

func NewMarketplaceHandler(m *market.Market) *MarketplaceHandler {
	return &MarketplaceHandler{market: m}
}

func (h *MarketplaceHandler) Register(r chi.Router, authn Middleware) {
	r.Get("/creatives/", h.listCreatives)
	r.Get("/creatives/search/", h.searchCreatives)
	r.With(authn).Get("/creatives/me/", h.myProfile)
	r.With(authn).Patch("/creatives/me/", h.updateProfile)
	r.Get("/creatives/{id}/", h.getCreative)

	r.Get("/services/", h.listServices)
	r.With(authn).Post("/services/", h.createService)
	r.Get("/services/{id}/", h.getService)
	r.With(authn).Patch("/services/{id}/", h.updateService)
	r.With(authn).Delete("/services/{id}/", h.deleteService)

	r.Get("/categories/", h.listCategories)

	r.With(authn).Get("/reviews/", h.listReviews)
	r.With(authn).Post("/reviews/", h.createReview)
}

func (h *MarketplaceHandler) listCreatives(w http.ResponseWriter, r *http.Request) {
	page(w, r, h.market.Creatives(""))
}

func (h *MarketplaceHandler) searchCreatives(w http.ResponseWriter, r *http.Request) {
	page(w, r, h.market.Creatives(r.URL.Query().Get("location")))
}

func (h *MarketplaceHandler) getCreative(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.market.Creative(id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *MarketplaceHandler) myProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	c, err := h.market.MyProfile(user)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *MarketplaceHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var (
		patch  dto.ProfilePatch
		avatar string
	)
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respond.Detail(w, http.StatusBadRequest, "Multipart form parse error - "+err.Error())
			return
		}
		field := func(name string) *string {
			if vs, ok := r.MultipartForm.Value[name]; ok && len(vs) > 0 {
				v := vs[0]
				return &v
			}
			return nil
		}
		patch = dto.ProfilePatch{
			Bio:            field("bio"),
			Skills:         field("skills"),
			HourlyRate:     field("hourly_rate"),
			City:           field("city"),
			Region:         field("region"),
			PortfolioLinks: field("portfolio_links"),
		}
		if files := r.MultipartForm.File["avatar"]; len(files) > 0 {
			avatar = files[0].Filename
		}
	} else if !decodeJSON(w, r, &patch) {
		return
	}
	c, err := h.market.UpdateProfile(user.ID, patch, avatar)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *MarketplaceHandler) listServices(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.market.Services())
}

func (h *MarketplaceHandler) getService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s, err := h.market.Service(id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, s)
}

func (h *MarketplaceHandler) createService(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in dto.ServiceInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.market.CreateService(user.ID, in)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, s)
}

func (h *MarketplaceHandler) updateService(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch dto.ServicePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	s, err := h.market.UpdateService(user.ID, id, patch)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, s)
}

func (h *MarketplaceHandler) deleteService(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.market.DeleteService(user.ID, id); err != nil {
		respond.Error(w, err)
		return
	}
	respond.NoContent(w)
}

func (h *MarketplaceHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.market.Categories())
}

func (h *MarketplaceHandler) listReviews(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.market.Reviews())
}

func (h *MarketplaceHandler) createReview(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in dto.ReviewInput
	if !decodeJSON(w, r, &in) {
		return
	}
	rev, err := h.market.CreateReview(user.ID, in)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, rev)
}
