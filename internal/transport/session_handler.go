package transport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/middleware"
	"atelier-storefront/internal/session"
)

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest represents the signup payload
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateProfileRequest carries optional profile fields
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SessionResponse returns the session token and the identity behind it
type SessionResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// SessionHandler handles login, signup, logout and profile routes
type SessionHandler struct {
	sessionService session.Service
	logger         *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService session.Service, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// RegisterRoutes registers session routes; profile routes sit behind auth
func (h *SessionHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/signup", h.Signup)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.Logout)
		})
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.Profile)
		r.Put("/", h.UpdateProfile)
	})
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.sessionService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "login unavailable")
		return
	}

	h.logger.Info("User logged in", zap.String("user_id", user.ID))
	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{Token: token, User: *user})
}

func (h *SessionHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.sessionService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Signup failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "signup unavailable")
		return
	}

	h.logger.Info("User signed up", zap.String("user_id", user.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, SessionResponse{Token: token, User: *user})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	if err := h.sessionService.Logout(r.Context(), userID); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *SessionHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	user, err := h.sessionService.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "session expired")
			return
		}
		h.logger.Error("Profile load failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}

func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.sessionService.UpdateProfile(r.Context(), userID, session.ProfileUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "session expired")
			return
		}
		h.logger.Error("Profile update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}
