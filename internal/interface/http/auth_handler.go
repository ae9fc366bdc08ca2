package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/msydorenko/contacts-api/config"
	"github.com/msydorenko/contacts-api/internal/application"
	"github.com/msydorenko/contacts-api/internal/interface/middleware"
	"github.com/msydorenko/contacts-api/pkg/response"
	"github.com/msydorenko/contacts-api/pkg/validation"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cfg: cfg}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type resendVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type subscriptionRequest struct {
	Subscription string `json:"subscription" binding:"required,oneof=starter pro business"`
}

func (h *AuthHandler) serverError(c *gin.Context, op string, err error) {
	h.Logger.WithError(err).WithField("op", op).Error("auth request failed")
	response.Error(c, http.StatusInternalServerError, "internal server error", nil)
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailInUse) {
			response.Error(c, http.StatusConflict, "Email in use", nil)
			return
		}
		h.serverError(c, "register", err)
		return
	}

	body := gin.H{"user": res.User}
	if !h.Cfg.IsProduction() {
		// convenience for same-process tests; never exposed in production
		body["verificationToken"] = res.VerificationToken
	}
	response.Success(c, http.StatusCreated, body, "registered")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailNotVerified):
			response.Error(c, http.StatusUnauthorized, "Email is not verified", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Email or password is wrong", nil)
		default:
			h.serverError(c, "login", err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": res.Token, "user": res.User}, "login successful")
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusUnauthorized, "Not authorized", nil)
			return
		}
		h.serverError(c, "logout", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Current GET /api/auth/current
func (h *AuthHandler) Current(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Current(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusUnauthorized, "Not authorized", nil)
			return
		}
		h.serverError(c, "current", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": p.Email, "subscription": p.Subscription}, "current user")
}

// UpdateSubscription PATCH /api/auth/subscription
func (h *AuthHandler) UpdateSubscription(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.UpdateSubscription(c.Request.Context(), uid, req.Subscription)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusUnauthorized, "Not authorized", nil)
			return
		}
		h.serverError(c, "update_subscription", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": p.Email, "subscription": p.Subscription}, "subscription updated")
}

// UpdateAvatar PATCH /api/auth/avatars (multipart field "avatar")
func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	if file.Size > maxAvatarSize {
		response.Error(c, http.StatusBadRequest, "avatar file too large (max 5MB)", nil)
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !allowedAvatarTypes[contentType] {
		response.Error(c, http.StatusBadRequest, "invalid file type, only JPEG, PNG and GIF are allowed", nil)
		return
	}

	src, err := file.Open()
	if err != nil {
		h.serverError(c, "update_avatar", err)
		return
	}
	defer func() { _ = src.Close() }()

	uid := c.GetString(middleware.CtxUserIDKey)
	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, src, file.Filename, contentType)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusUnauthorized, "Not authorized", nil)
			return
		}
		h.serverError(c, "update_avatar", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatarURL": url}, "avatar updated")
}

// Verify GET /api/auth/verify/:verificationToken
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Param("verificationToken")
	if err := h.Svc.Verify(c.Request.Context(), token); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		h.serverError(c, "verify", err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Verification successful")
}

// ResendVerify POST /api/auth/verify
func (h *AuthHandler) ResendVerify(c *gin.Context) {
	var req resendVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "missing required field email", validation.ToDetails(err))
		return
	}

	err := h.Svc.ResendVerification(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, application.ErrAlreadyVerified):
			response.Error(c, http.StatusBadRequest, "Verification has already been passed", nil)
		default:
			h.serverError(c, "resend_verify", err)
		}
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Verification email sent")
}
