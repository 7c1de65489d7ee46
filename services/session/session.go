package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"labbook/models"
	"labbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidIdentityToken = errors.New("identity token is invalid or expired")

// Session is the caller's authentication state, handed explicitly to guards and handlers.
type Session interface {
	IsAuthenticated() bool
	User() *models.User
	Token() string
}

type userSession struct {
	user  models.User
	token string
}

func (s userSession) IsAuthenticated() bool { return true }
func (s userSession) User() *models.User    { return &s.user }
func (s userSession) Token() string         { return s.token }

type anonymousSession struct{}

func (anonymousSession) IsAuthenticated() bool { return false }
func (anonymousSession) User() *models.User    { return nil }
func (anonymousSession) Token() string         { return "" }

// Anonymous is the session of a caller who has not signed in.
var Anonymous Session = anonymousSession{}

// NewUserSession wraps an authenticated user; used by tests and by Login.
func NewUserSession(user models.User, token string) Session {
	return userSession{user: user, token: token}
}

// SessionProvider exchanges identity tokens for sessions.
type SessionProvider interface {
	Login(ctx context.Context, idToken string) (string, Session, error)
	Resolve(ctx context.Context, token string) (Session, error)
	Logout(ctx context.Context, token string) error
}

// RedisSessionProvider verifies HS256 identity tokens and keeps sessions in Redis.
type RedisSessionProvider struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisSessionProvider(client *redis.Client, secret string, ttl time.Duration, logger *zap.Logger) *RedisSessionProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSessionProvider{client: client, secret: []byte(secret), ttl: ttl, logger: logger}
}

// Login verifies idToken and opens a session, returning its opaque token.
func (p *RedisSessionProvider) Login(ctx context.Context, idToken string) (string, Session, error) {
	claims, err := utils.ValidateToken(idToken, p.secret)
	if err != nil {
		p.logger.Debug("identity token rejected", zap.Error(err))
		return "", nil, ErrInvalidIdentityToken
	}
	user := models.User{
		ID:    utils.ClaimString(claims, "sub"),
		Email: utils.ClaimString(claims, "email"),
		Name:  utils.ClaimString(claims, "name"),
		Role:  utils.ClaimString(claims, "role"),
	}
	if user.ID == "" || user.Email == "" {
		return "", nil, ErrInvalidIdentityToken
	}

	token := uuid.New().String()
	err = utils.SaveAuthSession(ctx, p.client, token, utils.AuthSession{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}, p.ttl)
	if err != nil {
		return "", nil, err
	}
	p.logger.Info("session opened", zap.String("userID", user.ID))
	return token, NewUserSession(user, token), nil
}

// Resolve returns the session for token; unknown or expired tokens resolve to Anonymous.
func (p *RedisSessionProvider) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Anonymous, nil
	}
	stored, err := utils.GetAuthSession(ctx, p.client, token)
	if errors.Is(err, redis.Nil) {
		return Anonymous, nil
	}
	if err != nil {
		return Anonymous, fmt.Errorf("failed to resolve session: %w", err)
	}
	return NewUserSession(models.User{
		ID:    stored.UserID,
		Email: stored.Email,
		Name:  stored.Name,
		Role:  stored.Role,
	}, token), nil
}

func (p *RedisSessionProvider) Logout(ctx context.Context, token string) error {
	if err := utils.DeleteAuthSession(ctx, p.client, token); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}
