package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/msydorenko/contacts-api/internal/domain/repository"
	handlers "github.com/msydorenko/contacts-api/internal/interface/http"
	"github.com/msydorenko/contacts-api/internal/interface/middleware"
	"github.com/msydorenko/contacts-api/pkg/helpers"
)

// AuthModule wires the auth endpoints.
// Public: register, login, verify, resend-verify.
// Protected: logout, current, subscription, avatars.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, users repository.UserRepository, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Users: users, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)
	rg.GET("/auth/verify/:verificationToken", m.Handler.Verify)
	rg.POST("/auth/verify", m.Handler.ResendVerify)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/current", m.Handler.Current)
		auth.PATCH("/subscription", m.Handler.UpdateSubscription)
		auth.PATCH("/avatars", m.Handler.UpdateAvatar)
	}
}
