package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/msydorenko/contacts-api/internal/domain/repository"
	handlers "github.com/msydorenko/contacts-api/internal/interface/http"
	"github.com/msydorenko/contacts-api/internal/interface/middleware"
	"github.com/msydorenko/contacts-api/pkg/helpers"
)

// ContactModule wires the contact CRUD endpoints, all behind bearer auth.
type ContactModule struct {
	Handler *handlers.ContactHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewContactModule(h *handlers.ContactHandler, users repository.UserRepository, jwt *helpers.JWTManager) *ContactModule {
	return &ContactModule{Handler: h, Users: users, JWT: jwt}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts")
	contacts.Use(middleware.Auth(m.Users, m.JWT))
	{
		contacts.GET("", m.Handler.List)
		contacts.POST("", m.Handler.Create)
		contacts.GET("/:id", m.Handler.Get)
		contacts.PUT("/:id", m.Handler.Update)
		contacts.DELETE("/:id", m.Handler.Delete)
		contacts.PATCH("/:id/favorite", m.Handler.Favorite)
	}
}
