package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/msydorenko/contacts-api/internal/application"
	"github.com/msydorenko/contacts-api/internal/interface/middleware"
	"github.com/msydorenko/contacts-api/pkg/response"
	"github.com/msydorenko/contacts-api/pkg/validation"
)

type ContactHandler struct {
	Svc    *application.ContactService
	Logger *logrus.Logger
}

func NewContactHandler(svc *application.ContactService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Logger: logger}
}

type contactRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Favorite bool   `json:"favorite"`
}

type favoriteRequest struct {
	Favorite *bool `json:"favorite" binding:"required"`
}

func (h *ContactHandler) serverError(c *gin.Context, op string, err error) {
	h.Logger.WithError(err).WithField("op", op).Error("contact request failed")
	response.Error(c, http.StatusInternalServerError, "internal server error", nil)
}

// List GET /api/contacts?page=&limit=&favorite=
func (h *ContactHandler) List(c *gin.Context) {
	owner := c.GetString(middleware.CtxUserIDKey)

	page, ok := intQuery(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", 20)
	if !ok {
		return
	}

	var favorite *bool
	if raw := c.Query("favorite"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "favorite must be a boolean", nil)
			return
		}
		favorite = &b
	}

	contacts, err := h.Svc.List(c.Request.Context(), owner, page, limit, favorite)
	if err != nil {
		h.serverError(c, "list_contacts", err)
		return
	}
	response.Success(c, http.StatusOK, contacts, "contacts")
}

// Get GET /api/contacts/:id
func (h *ContactHandler) Get(c *gin.Context) {
	owner := c.GetString(middleware.CtxUserIDKey)
	contact, err := h.Svc.Get(c.Request.Context(), c.Param("id"), owner)
	if err != nil {
		h.notFoundOrServerError(c, "get_contact", err)
		return
	}
	response.Success(c, http.StatusOK, contact, "contact")
}

// Create POST /api/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	owner := c.GetString(middleware.CtxUserIDKey)
	contact, err := h.Svc.Create(c.Request.Context(), owner, application.ContactInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Favorite: req.Favorite,
	})
	if err != nil {
		h.serverError(c, "create_contact", err)
		return
	}
	response.Success(c, http.StatusCreated, contact, "contact created")
}

// Update PUT /api/contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	owner := c.GetString(middleware.CtxUserIDKey)
	contact, err := h.Svc.Update(c.Request.Context(), c.Param("id"), owner, application.ContactInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Favorite: req.Favorite,
	})
	if err != nil {
		h.notFoundOrServerError(c, "update_contact", err)
		return
	}
	response.Success(c, http.StatusOK, contact, "contact updated")
}

// Favorite PATCH /api/contacts/:id/favorite
func (h *ContactHandler) Favorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	owner := c.GetString(middleware.CtxUserIDKey)
	contact, err := h.Svc.SetFavorite(c.Request.Context(), c.Param("id"), owner, *req.Favorite)
	if err != nil {
		h.notFoundOrServerError(c, "favorite_contact", err)
		return
	}
	response.Success(c, http.StatusOK, contact, "favorite updated")
}

// Delete DELETE /api/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	owner := c.GetString(middleware.CtxUserIDKey)
	contact, err := h.Svc.Delete(c.Request.Context(), c.Param("id"), owner)
	if err != nil {
		h.notFoundOrServerError(c, "delete_contact", err)
		return
	}
	response.Success(c, http.StatusOK, contact, "contact deleted")
}

// notFoundOrServerError maps the shared miss sentinel; a contact owned by
// someone else and a missing contact answer identically.
func (h *ContactHandler) notFoundOrServerError(c *gin.Context, op string, err error) {
	if errors.Is(err, application.ErrContactNotFound) {
		response.Error(c, http.StatusNotFound, "Not found", nil)
		return
	}
	h.serverError(c, op, err)
}

func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		response.Error(c, http.StatusBadRequest, name+" must be a positive integer", nil)
		return 0, false
	}
	return v, true
}
