package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type AuthHandler struct {
	service  interfaces.AuthService
	tokenTTL time.Duration
	logger   logger.Logger
}

func NewAuthHandler(service interfaces.AuthService, tokenTTL time.Duration, lgr logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, tokenTTL: tokenTTL, logger: lgr}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	Admin *domain.Admin `json:"admin"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.NewValidationError("body", "invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, domain.NewValidationError("username", "username and password are required"))
		return
	}

	token, admin, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondData(w, http.StatusOK, loginResponse{Token: token, Admin: admin})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondMessage(w, http.StatusOK, "logged out")
}

// Check validates the session cookie and returns the decoded claims.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	claims, err := h.service.Verify(extractToken(r))
	if err != nil {
		respondError(w, domain.ErrUnauthorized)
		return
	}
	respondData(w, http.StatusOK, claims)
}
