package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/imararent/imararent/internal/common"
	"github.com/imararent/imararent/internal/server/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendRequest struct {
	Email string `json:"email"`
}

type userPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type avatarURLResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

func toUserPayload(u *models.User) userPayload {
	return userPayload{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
		Avatar: u.AvatarKey,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// The console validates shape and complexity before submitting; this is
	// the trust-boundary check, not the UX one.
	switch {
	case strings.TrimSpace(req.Name) == "":
		writeError(w, http.StatusBadRequest, "validation", "name is required")
		return
	case strings.TrimSpace(req.Email) == "":
		writeError(w, http.StatusBadRequest, "validation", "email is required")
		return
	case len(req.Password) < 8:
		writeError(w, http.StatusBadRequest, "validation", "password must be at least 8 characters")
		return
	}

	err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email_taken", "email is already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "verification code sent"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		case errors.Is(err, common.ErrNotVerified):
			writeError(w, http.StatusForbidden, "not_verified", "account is pending verification")
		default:
			writeError(w, http.StatusInternalServerError, "internal", "login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: toUserPayload(user)})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.users.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrCodeInvalid):
			writeError(w, http.StatusNotFound, "code_invalid", "verification code does not match")
		case errors.Is(err, common.ErrCodeExpired):
			writeError(w, http.StatusGone, "code_expired", "verification code has expired")
		default:
			writeError(w, http.StatusInternalServerError, "internal", "verification failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "account activated"})
}

func (s *Server) handleResend(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.users.Resend(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrResendTooSoon):
			writeError(w, http.StatusTooManyRequests, "resend_too_soon", "a code was sent recently")
		case errors.Is(err, common.ErrCodeInvalid):
			writeError(w, http.StatusNotFound, "code_invalid", "no pending verification for this email")
		default:
			writeError(w, http.StatusInternalServerError, "internal", "resend failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "verification code sent"})
}

func (s *Server) handleAvatarURL(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing token claims")
		return
	}

	url, key, err := s.avatars.GetPresignedPutURL(r.Context(), claims.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "error presigning avatar upload", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "could not presign upload")
		return
	}

	if err := s.users.SetAvatarKey(r.Context(), claims.UserID, key); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "could not record avatar")
		return
	}

	writeJSON(w, http.StatusOK, avatarURLResponse{UploadURL: url, Key: key})
}
