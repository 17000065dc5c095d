package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrNotAdmin           = errors.New("admin permission required")
)

// Store is the persistence surface the service needs; *Repo satisfies it.
type Store interface {
	InsertUser(ctx context.Context, u *User) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id string) (*User, error)
}

type Service struct {
	Users  Store
	Tokens *TokenIssuer
}

func (s *Service) Register(ctx context.Context, email, name, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &User{Email: email, Name: name, PasswordHash: string(hash)}
	if err := s.Users.InsertUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the password and issues a token. Lookup and compare failures
// collapse into the same error so callers cannot probe which emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.Users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) CurrentUser(ctx context.Context, id string) (*User, error) {
	return s.Users.FindUserByID(ctx, id)
}

// RequireAdmin re-reads the user record and checks its level; token claims
// are never trusted for authorization.
func (s *Service) RequireAdmin(ctx context.Context, id string) (*User, error) {
	u, err := s.Users.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Level != LevelAdmin {
		return nil, ErrNotAdmin
	}
	return u, nil
}
