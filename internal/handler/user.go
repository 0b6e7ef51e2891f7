package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/checkfit/checkfit/internal/auth"
	"github.com/checkfit/checkfit/internal/handler/dto"
	"github.com/checkfit/checkfit/internal/model"
	"github.com/checkfit/checkfit/internal/service"
)

// RefreshTokenCookie is the cookie carrying the refresh token.
const RefreshTokenCookie = "refreshToken"

// UserHandler handles registration, sessions and profile endpoints.
type UserHandler struct {
	svc          *service.AuthService
	tokens       *auth.TokenManager
	logger       *slog.Logger
	secureCookie bool
	refreshTTL   time.Duration
}

// NewUserHandler creates a new UserHandler.
// secureCookie should be true everywhere except local development over HTTP.
func NewUserHandler(svc *service.AuthService, tokens *auth.TokenManager, logger *slog.Logger, secureCookie bool, refreshTTL time.Duration) *UserHandler {
	return &UserHandler{
		svc:          svc,
		tokens:       tokens,
		logger:       logger,
		secureCookie: secureCookie,
		refreshTTL:   refreshTTL,
	}
}

// Register handles POST /users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	w.WriteHeader(http.StatusCreated)
}

// Authenticate handles POST /sessions.
// On success it returns an access token and sets the refresh cookie.
func (h *UserHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.Authenticate(r.Context(), service.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.issueTokens(w, user.ID, user.Role); err != nil {
		h.logger.Error("failed to issue tokens", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	h.logger.Info("session_created", "user_id", user.ID)
}

// Refresh handles PATCH /token/refresh.
// It verifies the refresh cookie and rotates both tokens. Rotation is
// stateless: the old refresh token is replaced in the cookie but stays
// verifiable until it expires, so replay of a stolen old token is not
// detected.
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	claims, err := h.tokens.Verify(cookie.Value)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	if err := h.issueTokens(w, claims.Subject, claims.Role); err != nil {
		h.logger.Error("failed to rotate tokens", "error", err, "user_id", claims.Subject)
		writeError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	h.logger.Info("token_refreshed", "user_id", claims.Subject)
}

// Profile handles GET /me.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	user, err := h.svc.Profile(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			// Token subject no longer exists; treat as an auth failure.
			writeError(w, http.StatusUnauthorized, "Unauthorized.")
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileResponse{User: dto.ToUserResponse(user)})
}

// issueTokens writes the access token body and the refresh cookie.
func (h *UserHandler) issueTokens(w http.ResponseWriter, userID string, role model.Role) error {
	accessToken, err := h.tokens.IssueAccessToken(userID, role)
	if err != nil {
		return err
	}

	refreshToken, err := h.tokens.IssueRefreshToken(userID, role)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: accessToken})
	return nil
}
