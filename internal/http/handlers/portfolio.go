package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/ubu-lite/internal/http/respond"
	"github.com/hongminglow/ubu-lite/internal/market"
)

// PortfolioHandler lets creatives manage their uploaded work.
type PortfolioHandler struct {
	market *market.Market
}

func NewPortfolioHandler(m *market.Market) *PortfolioHandler {
	return &PortfolioHandler{market: m}
}

func (h *PortfolioHandler) Register(r chi.Router) {
	r.Get("/portfolio/", h.list)
	r.Post("/portfolio/", h.create)
	r.Delete("/portfolio/{id}/", h.delete)
}

func (h *PortfolioHandler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, h.market.Portfolio(user.ID))
}

// create accepts a multipart upload (title, media_type, file) or a JSON
// body for external links.
func (h *PortfolioHandler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in market.PortfolioUpload
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respond.Detail(w, http.StatusBadRequest, "Multipart form parse error - "+err.Error())
			return
		}
		in.Title = r.FormValue("title")
		in.MediaType = r.FormValue("media_type")
		in.ExternalURL = r.FormValue("external_url")
		if files := r.MultipartForm.File["file"]; len(files) > 0 {
			in.Filename = files[0].Filename
		}
	} else {
		var body struct {
			Title       string `json:"title"`
			MediaType   string `json:"media_type"`
			ExternalURL string `json:"external_url"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		in = market.PortfolioUpload{Title: body.Title, MediaType: body.MediaType, ExternalURL: body.ExternalURL}
	}
	if in.Filename == "" && in.ExternalURL == "" {
		respond.Detail(w, http.StatusBadRequest, "Provide a file or an external_url.")
		return
	}
	item, err := h.market.AddPortfolioItem(user.ID, in)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, item)
}

func (h *PortfolioHandler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.market.DeletePortfolioItem(user.ID, id); err != nil {
		respond.Error(w, err)
		return
	}
	respond.NoContent(w)
}
