package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/ubu-lite/internal/auth"
	"github.com/hongminglow/ubu-lite/internal/http/respond"
	"github.com/hongminglow/ubu-lite/internal/market"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
)

// AuthHandler owns the register, login and token refresh endpoints.
type AuthHandler struct {
	market *market.Market
	tokens *auth.TokenManager
	log    logrus.FieldLogger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(m *market.Market, tokens *auth.TokenManager, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{market: m, tokens: tokens, log: log}
}

// Register attaches auth routes.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/register/", h.handleRegister)
	r.Post("/auth/login/", h.handleLogin)
	r.Post("/auth/refresh/", h.handleRefresh)
	r.Post("/auth/google/", h.handleGoogle)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.market.Register(req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		respond.Error(w, err)
		return
	}
	h.log.WithField("user_id", user.ID).WithField("role", user.Role).Info("user registered")
	respond.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		required(w, "username")
		return
	}
	if req.Password == "" {
		required(w, "password")
		return
	}
	user, err := h.market.Authenticate(req.Username, req.Password)
	if err != nil {
		respond.Error(w, err)
		return
	}
	access, refresh, err := h.tokens.Generate(user)
	if err != nil {
		h.log.WithError(err).Error("generate token pair")
		respond.Detail(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	// simplejwt's obtain-pair view answers with the tokens only.
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Access: access, Refresh: refresh})
}

func (h *AuthHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Refresh == "" {
		required(w, "refresh")
		return
	}
	access, err := h.tokens.Reissue(req.Refresh)
	if err != nil {
		respond.Detail(w, http.StatusUnauthorized, "Token is invalid or expired")
		return
	}
	respond.JSON(w, http.StatusOK, dto.RefreshResponse{Access: access})
}

// handleGoogle mirrors a backend without Google credentials configured.
func (h *AuthHandler) handleGoogle(w http.ResponseWriter, r *http.Request) {
	var req dto.GoogleLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IDToken == "" {
		respond.Detail(w, http.StatusBadRequest, "id_token is required")
		return
	}
	respond.Detail(w, http.StatusInternalServerError, "GOOGLE_CLIENT_ID not configured")
}
