package router

import (
	"github.com/msydorenko/contacts-api/internal/application"
	"github.com/msydorenko/contacts-api/internal/container"
	pginfra "github.com/msydorenko/contacts-api/internal/infrastructure/postgres"
	handlers "github.com/msydorenko/contacts-api/internal/interface/http"
	"github.com/msydorenko/contacts-api/internal/router/modules"
)

// InitModules builds repositories, services, and handlers from the container
// singletons and registers all feature modules. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	users := pginfra.NewUserRepository(container.GetPGPool())
	contacts := pginfra.NewContactRepository(container.GetPGPool())

	authSvc := &application.AuthService{
		Users:       users,
		JWT:         container.GetJWT(),
		GCS:         container.GetGCS(),
		GCSBucket:   cfg.GCSBucket,
		Redis:       container.GetRedis(),
		Logger:      container.GetLogger(),
		Pub:         jobPublisher(),
		BaseURL:     cfg.BaseURL,
		MailEnabled: cfg.MailSendEnabled,
	}
	contactSvc := &application.ContactService{
		Contacts: contacts,
		Logger:   container.GetLogger(),
	}

	authHandler := handlers.NewAuthHandler(authSvc, container.GetLogger(), cfg)
	contactHandler := handlers.NewContactHandler(contactSvc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler, users, container.GetJWT()))
	r.Add(modules.NewContactModule(contactHandler, users, container.GetJWT()))
}

// jobPublisher returns the rabbit publisher as the service-level interface,
// keeping a typed nil out of the interface value when rabbit is absent.
func jobPublisher() application.JobPublisher {
	if p := container.GetRabbitPub(); p != nil {
		return p
	}
	return nil
}
