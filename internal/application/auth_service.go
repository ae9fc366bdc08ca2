package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/msydorenko/contacts-api/internal/domain/entity"
	"github.com/msydorenko/contacts-api/internal/domain/repository"
	"github.com/msydorenko/contacts-api/pkg/helpers"
	"github.com/msydorenko/contacts-api/pkg/mailer"
)

var (
	ErrEmailInUse         = errors.New("email in use")
	ErrInvalidCredentials = errors.New("email or password is wrong")
	ErrEmailNotVerified   = errors.New("email is not verified")
	ErrAlreadyVerified    = errors.New("verification has already been passed")
	ErrUserNotFound       = errors.New("user not found")
)

// JobPublisher enqueues email jobs. Satisfied by helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService implements the auth use cases: register, verify, login, logout,
// current, subscription and avatar updates. Mail dispatch is best-effort and
// never rolls back a state change.
type AuthService struct {
	Users       repository.UserRepository
	JWT         *helpers.JWTManager
	GCS         *storage.Client
	GCSBucket   string
	Redis       *redis.Client
	Logger      *logrus.Logger
	Pub         JobPublisher
	BaseURL     string
	MailEnabled bool
}

type RegisterResult struct {
	User entity.PublicProfile
	// VerificationToken is surfaced to the handler, which echoes it only
	// outside production.
	VerificationToken string
}

type LoginResult struct {
	Token string
	User  entity.PublicProfile
}

func profileCacheKey(userID string) string { return "user:profile:" + userID }

// Register creates an unverified account and fires the verification email.
func (s *AuthService) Register(ctx context.Context, email, password string) (*RegisterResult, error) {
	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	u := &entity.User{
		Email:             email,
		Password:          hash,
		Subscription:      entity.SubscriptionStarter,
		AvatarURL:         helpers.GravatarURL(email),
		VerificationToken: &token,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	s.sendVerificationEmail(ctx, u.Email, token)

	return &RegisterResult{User: u.Public(), VerificationToken: token}, nil
}

// Verify consumes a one-time verification token. The repository clears the
// token in the same statement that sets the flag, so a token is never usable
// twice.
func (s *AuthService) Verify(ctx context.Context, token string) error {
	ok, err := s.Users.VerifyByToken(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

// ResendVerification re-sends the outstanding token for an unverified user.
// The token is never rotated; a fresh one is minted only when none exists.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if u.Verify {
		return ErrAlreadyVerified
	}

	var token string
	if u.VerificationToken != nil && *u.VerificationToken != "" {
		token = *u.VerificationToken
	} else {
		token = uuid.NewString()
		if err := s.Users.UpdateVerificationToken(ctx, u.ID, token); err != nil {
			return err
		}
	}

	s.sendVerificationEmail(ctx, u.Email, token)
	return nil
}

// Login validates credentials and issues a fresh session token, overwriting
// any previous one (single live session per user, last write wins).
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		// unknown email and wrong password are indistinguishable
		return nil, ErrInvalidCredentials
	}
	if !u.Verify {
		return nil, ErrEmailNotVerified
	}

	token, _, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Users.UpdateToken(ctx, u.ID, &token); err != nil {
		return nil, err
	}

	s.cacheProfile(ctx, u.ID, u.Email, u.Subscription, u.AvatarURL)

	return &LoginResult{
		Token: token,
		User:  entity.PublicProfile{Email: u.Email, Subscription: u.Subscription},
	}, nil
}

// Logout clears the stored session token so the presented bearer token stops
// authenticating immediately, before its signature expires.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if err := s.Users.UpdateToken(ctx, userID, nil); err != nil {
		return err
	}
	if s.Redis != nil {
		if err := s.Redis.Del(ctx, profileCacheKey(userID)).Err(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("profile cache delete failed")
		}
	}
	return nil
}

// Current returns the public projection of the authenticated user, trying
// the redis cache before the store.
func (s *AuthService) Current(ctx context.Context, userID string) (*entity.PublicProfile, error) {
	if s.Redis != nil {
		if data, err := s.Redis.HGetAll(ctx, profileCacheKey(userID)).Result(); err == nil && data["email"] != "" {
			return &entity.PublicProfile{Email: data["email"], Subscription: data["subscription"]}, nil
		}
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	s.cacheProfile(ctx, u.ID, u.Email, u.Subscription, u.AvatarURL)
	p := entity.PublicProfile{Email: u.Email, Subscription: u.Subscription}
	return &p, nil
}

// UpdateSubscription changes the tier and returns the updated projection.
func (s *AuthService) UpdateSubscription(ctx context.Context, userID, subscription string) (*entity.PublicProfile, error) {
	u, err := s.Users.UpdateSubscription(ctx, userID, subscription)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	s.cacheProfile(ctx, u.ID, u.Email, u.Subscription, u.AvatarURL)
	p := entity.PublicProfile{Email: u.Email, Subscription: u.Subscription}
	return &p, nil
}

// UploadAvatar stores the image in GCS and only then commits the new URL to
// the user record, so the caller observes either both effects or neither.
func (s *AuthService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("avatar storage not configured")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	updated, err := s.Users.UpdateAvatar(ctx, userID, url)
	if err != nil {
		return "", err
	}
	if updated == nil {
		return "", ErrUserNotFound
	}
	s.cacheProfile(ctx, updated.ID, updated.Email, updated.Subscription, updated.AvatarURL)
	return url, nil
}

func (s *AuthService) sendVerificationEmail(ctx context.Context, email, token string) {
	if s.Pub == nil || !s.MailEnabled {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Debug("mail disabled, skipping verification email")
		}
		return
	}
	link := s.BaseURL + "/api/auth/verify/" + token
	job := mailer.EmailJob{
		To:       email,
		Template: mailer.TemplateVerifyEmail,
		Data:     map[string]any{"VerifyURL": link},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		// best-effort: the account stays registered even if the mail fails
		s.Logger.WithError(err).WithField("email", email).Warn("failed to enqueue verification email")
	}
}

func (s *AuthService) cacheProfile(ctx context.Context, userID, email, subscription, avatarURL string) {
	if s.Redis == nil {
		return
	}
	key := profileCacheKey(userID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"email":        email,
		"subscription": subscription,
		"avatar_url":   avatarURL,
	})
	pipe.Expire(ctx, key, 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}
}
