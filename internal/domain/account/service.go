package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hospital/records/internal/domain"
	"github.com/hospital/records/internal/platform/auth"
)

var (
	ErrEmailTaken         = domain.NewError(domain.ErrAlreadyExists, "user with this email already exists.")
	ErrInvalidCredentials = domain.NewError(domain.ErrUnauthorized, "Invalid email or password")
)

// TokenIssuer is the part of auth.TokenManager the account flows need.
type TokenIssuer interface {
	IssuePair(userID uuid.UUID) (auth.TokenPair, error)
	Refresh(refreshToken string) (string, error)
	RevokeToken(tokenStr, subject string) error
	Revoke(jti string, expiresAt time.Time)
}

type Service struct {
	users     UserRepository
	tokens    TokenIssuer
	cost      int
	dummyHash []byte
	logger    zerolog.Logger
}

func NewService(users UserRepository, tokens TokenIssuer, bcryptCost int, logger zerolog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	// Compared against on unknown emails so both login failures cost the same.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	return &Service{
		users:     users,
		tokens:    tokens,
		cost:      bcryptCost,
		dummyHash: dummy,
		logger:    logger.With().Str("component", "account").Logger(),
	}
}

// Register creates a user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{Email: req.Email, Name: req.Name, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Info().Str("user_id", u.ID.String()).Msg("user registered")
	return u, nil
}

// Login checks credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, req LoginRequest) (auth.TokenPair, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenPair{}, err
	}

	u, err := s.users.GetByEmail(ctx, NormalizeEmail(req.Email))
	if errors.Is(err, domain.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Debug().Str("user_id", u.ID.String()).Msg("login rejected: wrong password")
		return auth.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(u.ID)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}
	return pair, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (string, error) {
	if req.Refresh == "" {
		return "", domain.NewValidationError("refresh", "This field is required.")
	}
	return s.tokens.Refresh(req.Refresh)
}

// Logout revokes the caller's access token and, when given, a refresh
// token. The refresh token must belong to the caller.
func (s *Service) Logout(ctx context.Context, p auth.Principal, req LogoutRequest) error {
	if req.Refresh != "" {
		if err := s.tokens.RevokeToken(req.Refresh, p.UserID.String()); err != nil {
			return err
		}
	}
	s.tokens.Revoke(p.TokenID, p.ExpiresAt)
	s.logger.Info().Str("user_id", p.UserID.String()).Msg("user logged out")
	return nil
}
