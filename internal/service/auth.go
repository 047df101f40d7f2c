// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/geonews/geonews/internal/auth"
	"github.com/geonews/geonews/internal/cache"
	"github.com/geonews/geonews/internal/metrics"
	"github.com/geonews/geonews/internal/model"
	"github.com/geonews/geonews/internal/repository"
)

// Auth service errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownUser        = errors.New("unknown user")
	ErrNameTaken          = errors.New("name already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrMissingField       = errors.New("missing required field")
)

// AuthService handles registration, login, and identity resolution.
type AuthService struct {
	repo    *repository.Repository
	tokens  *auth.TokenService
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.Repository, tokens *auth.TokenService, cacheClient *cache.Cache, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		repo:    repo,
		tokens:  tokens,
		cache:   cacheClient,
		metrics: recorder,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new user account.
//
// The name must be free in both namespaces: no existing user may carry it,
// and no existing news item may have it as news_source. The explicit
// checks give a clean error before hashing; the unique constraint on
// users.name closes the race between two concurrent registrations.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, ErrMissingField
	}

	if _, err := s.repo.GetUserByName(ctx, input.Name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	sourceTaken, err := s.repo.NewsSourceExists(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if sourceTaken {
		return nil, ErrNameTaken
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:           input.Name,
		Email:          input.Email,
		HashedPassword: hashed,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrNameExists):
			return nil, ErrNameTaken
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// Login verifies credentials and issues a bearer token.
// The login form's username field carries the account email; the token
// subject is the account name, which is what news ownership is keyed on.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	match, err := auth.VerifyPassword(password, user.HashedPassword)
	if err != nil || !match {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Name)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncTokenIssued()

	return token, nil
}

// Resolve validates a bearer token and returns the user it identifies.
// Every mutating news operation passes through here. Token errors
// (auth.ErrInvalidToken, auth.ErrMissingSubject) pass through unchanged;
// a valid token whose subject no longer exists yields ErrUnknownUser.
func (s *AuthService) Resolve(ctx context.Context, rawToken string) (*model.User, error) {
	subject, err := s.tokens.Validate(rawToken)
	if err != nil {
		return nil, err
	}

	cacheKey := auth.QuickHash(rawToken)
	if s.cache != nil {
		if user, _ := s.cache.GetIdentity(ctx, cacheKey); user != nil {
			s.metrics.IncIdentityCacheHit()
			return user, nil
		}
		s.metrics.IncIdentityCacheMiss()
	}

	user, err := s.repo.GetUserByName(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetIdentity(ctx, cacheKey, user)
	}

	return user, nil
}
