package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"account-api/internal/auth"
	"account-api/internal/domain"
	"account-api/internal/repository"
)

// ErrInvalidCredentials indicates that provided login credentials are
// incorrect. Unknown email and wrong password both map here so a caller
// cannot tell which one occurred.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService describes account lifecycle and login operations. Every
// returned user has credential material cleared.
type UserService interface {
	Register(ctx context.Context, name, email, password string, gender domain.Gender) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id, name, email, password string, gender domain.Gender) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher

	// digest of a throwaway password, compared against on the unknown-email
	// login path so both failure cases cost a hash verification
	decoyDigest string

	now func() time.Time
}

func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher) (UserService, error) {
	decoy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("prepare decoy digest: %w", err)
	}
	return &userService{
		users:       users,
		hasher:      hasher,
		decoyDigest: decoy,
		now:         time.Now,
	}, nil
}

func (s *userService) Register(ctx context.Context, name, email, password string, gender domain.Gender) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Gender:       gender,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// duplicate email surfaces from the repository's unique constraint, so
	// two concurrent registrations of the same address race safely
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user.Redacted(), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Redacted(), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	redacted := make([]domain.User, len(users))
	for i := range users {
		redacted[i] = *users[i].Redacted()
	}
	return redacted, nil
}

func (s *userService) Update(ctx context.Context, id, name, email, password string, gender domain.Gender) (*domain.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// every update re-hashes the submitted password, even an unchanged one
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	updated := &domain.User{
		ID:           current.ID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Gender:       gender,
		CreatedAt:    current.CreatedAt,
		UpdatedAt:    s.now().UTC(),
	}

	if err := s.users.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated.Redacted(), nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// burn a verification so this path costs the same as a mismatch
			s.hasher.Verify(password, s.decoyDigest)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user.Redacted(), nil
}
