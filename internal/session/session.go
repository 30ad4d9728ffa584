package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"atelier-storefront/internal/config"
	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/gateway"
	"atelier-storefront/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
)

// Claims represents the JWT claims on a session token
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service manages session identity. Credential verification is delegated to
// the external auth service; this layer persists the returned identity and
// mints the storefront's own session tokens.
type Service interface {
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	Signup(ctx context.Context, name, email, password string) (token string, user *domain.User, err error)
	Logout(ctx context.Context, userID string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
}

// ProfileUpdate carries optional profile fields; empty fields are left as-is
type ProfileUpdate struct {
	Name    string
	Phone   string
	Address string
}

type service struct {
	store        storage.Store
	client       gateway.Client
	secret       string
	accessExpiry time.Duration
}

// NewService creates a new session Service
func NewService(store storage.Store, client gateway.Client, cfg config.SessionConfig) Service {
	return &service{
		store:        store,
		client:       client,
		secret:       cfg.Secret,
		accessExpiry: time.Duration(cfg.AccessExpiry) * time.Minute,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidCredentials) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login failed: %w", err)
	}

	return s.establish(ctx, user)
}

func (s *service) Signup(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	user, err := s.client.Signup(ctx, name, email, password)
	if err != nil {
		return "", nil, fmt.Errorf("signup failed: %w", err)
	}

	return s.establish(ctx, user)
}

// establish persists the identity and mints its session token
func (s *service) establish(ctx context.Context, user *domain.User) (string, *domain.User, error) {
	if err := s.store.Save(ctx, storage.SessionKey(user.ID), user); err != nil {
		return "", nil, fmt.Errorf("failed to persist session: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return token, user, nil
}

// Logout destroys the stored identity. Tokens already issued simply expire.
func (s *service) Logout(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, storage.SessionKey(userID)); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

func (s *service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := s.store.Load(ctx, storage.SessionKey(userID), &user)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &user, nil
}

// UpdateProfile merges the non-empty update fields into the stored identity
func (s *service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}
	if update.Address != "" {
		user.Address = update.Address
	}

	if err := s.store.Save(ctx, storage.SessionKey(userID), user); err != nil {
		return nil, fmt.Errorf("failed to persist profile update: %w", err)
	}
	return user, nil
}

// generateToken mints an HS256 session token with user id and role claims
func (s *service) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
