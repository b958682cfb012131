package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-interview-server/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AccountStore is the slice of the session store the auth gate needs.
type AccountStore interface {
	CreateAccount(ctx context.Context, username, passwordHash string) error
	GetAccount(ctx context.Context, username string) (*storage.Account, error)
}

// Service is the auth gate: signup, signin and token issuing.
type Service struct {
	store      AccountStore
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewService(store AccountStore, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *Service {
	return &Service{
		store:      store,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Signup registers a new account. The password is stored as a bcrypt hash,
// never in clear text.
func (s *Service) Signup(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	err = s.store.CreateAccount(ctx, username, string(hash))
	if errors.Is(err, storage.ErrDuplicate) {
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

// Signin verifies the credentials and issues a signed session token.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *Service) Signin(ctx context.Context, username, password string) (string, error) {
	acc, err := s.store.GetAccount(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("loading account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	token, err := GenerateToken(username, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

// Verify resolves a session token back to its username.
func (s *Service) Verify(token string) (string, error) {
	return UsernameFromToken(token, s.jwtSecret)
}
