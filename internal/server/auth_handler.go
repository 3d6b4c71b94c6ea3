package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hevilin/talentsite/internal/server/middleware"
	"github.com/hevilin/talentsite/internal/types"
	"go.uber.org/zap"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	identity   *IdentityService
	jwtService *JWTService
	logger     *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(identity *IdentityService, jwtService *JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, jwtService: jwtService, logger: logger}
}

// Login handles administrator sign-in requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, validationError(err))
		return
	}

	user, err := h.identity.Login(r.Context(), &req)
	if err != nil {
		h.fail(w, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, types.LoginResponse{User: user, Token: token, ExpiresAt: expiresAt})
}

// Logout revokes the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r.Context())
	if !ok {
		writeJSON(w, h.logger, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	if err := h.jwtService.Revoke(r.Context(), claims); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "signed out"})
}

// Session describes the current session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r.Context())
	if !ok {
		writeJSON(w, h.logger, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.identity.CurrentUser(r.Context(), claims.UserID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, types.SessionResponse{User: user, ExpiresAt: claims.ExpiresAt.Time})
}

// UpdatePassword changes the signed-in administrator's password.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeJSON(w, h.logger, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req types.UpdatePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, validationError(err))
		return
	}

	if err := h.identity.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (h *AuthHandler) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.Error(err))
		message = "internal server error"
	}
	writeJSON(w, h.logger, status, map[string]string{"error": message})
}

// validationError converts validator errors to an ErrValidation naming the
// first failing field.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid request"}
}
