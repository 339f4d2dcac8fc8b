package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/technotes/backend/internal/models"
	"go.uber.org/zap"
)

// refreshCookie is the name of the httpOnly cookie carrying the refresh token
const refreshCookie = "jwt"

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Login validates credentials and returns access and refresh tokens.
	//
	// If a field is missing, the user is unknown or inactive, or the password does
	// not match, the error will be returned together with empty token strings.
	Login(ctx context.Context, req *models.LoginRequest) (string, string, error)
	// Method Refresh validates a refresh token and returns a new access token.
	//
	// If the token is invalid or the user it names no longer exists or is inactive,
	// the error will be returned together with an empty token string.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	service            AuthService
	refreshTokenExpiry time.Duration
	loginLimiter       func(http.Handler) http.Handler
}

// NewAuthHandler creates a new auth handler. loginLimiter is applied to the
// login route only, mirroring the original service's login rate limit.
func NewAuthHandler(svc AuthService, logger *zap.Logger, refreshTokenExpiry time.Duration, loginLimiter func(http.Handler) http.Handler) *AuthHandler {
	return &AuthHandler{
		BaseHandler:        BaseHandler{logger: logger},
		service:            svc,
		refreshTokenExpiry: refreshTokenExpiry,
		loginLimiter:       loginLimiter,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		if h.loginLimiter != nil {
			r.With(h.loginLimiter).Post("/", h.Login)
		} else {
			r.Post("/", h.Login)
		}
		r.Get("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
	})
}

// Login handles POST /auth
// @Summary Login
// @Description Authenticate with username and password. Returns an access token in the body and a refresh token as an httpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]string "Access token"
// @Failure 400 {object} map[string]string "Missing fields"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	accessToken, refreshToken, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.setRefreshCookie(w, refreshToken)
	h.respondJSON(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// Refresh handles GET /auth/refresh
// @Summary Refresh access token
// @Description Issue a new access token from the refresh token cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Access token"
// @Failure 401 {object} map[string]string "Missing cookie or unknown user"
// @Failure 403 {object} map[string]string "Invalid refresh token"
// @Router /auth/refresh [get]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookie)
	if err != nil {
		h.respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// Logout handles POST /auth/logout
// @Summary Logout
// @Description Clear the refresh token cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Cookie cleared"
// @Success 204 "No cookie to clear"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(refreshCookie); err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   -1,
	})
	h.respondMessage(w, http.StatusOK, "Cookie cleared")
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(h.refreshTokenExpiry.Seconds()),
	})
}
