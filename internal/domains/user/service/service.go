package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	profilerepo "memorial-backend/internal/domains/profile/repository"
	"memorial-backend/internal/domains/user/model"
	"memorial-backend/internal/domains/user/repository"
	"memorial-backend/pkg/jwt"
)

const bcryptCost = 12

// UserService handles account registration, login and deletion.
type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// DeleteAccount removes the account and every memorial profile it
	// owns, including all nested contributors, comments and stories.
	DeleteAccount(ctx context.Context, email string) (*model.DeleteAccountResult, error)
}

type userService struct {
	repo     repository.UserRepository
	profiles profilerepo.ProfileRepository
	tokens   *jwt.Manager
}

func NewUserService(repo repository.UserRepository, profiles profilerepo.ProfileRepository, tokens *jwt.Manager) UserService {
	return &userService{
		repo:     repo,
		profiles: profiles,
		tokens:   tokens,
	}
}

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, model.NewEmailTakenError(req.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("email", u.Email).Msg("User registered")
	return u, nil
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email, u.Name)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		User:        *u,
	}, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *userService) DeleteAccount(ctx context.Context, email string) (*model.DeleteAccountResult, error) {
	if email == "" {
		return nil, model.NewUnauthorizedError()
	}

	if err := s.repo.Delete(ctx, email); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}

	// Owned profiles die with the account. Contributor grants the user
	// held on other people's profiles stay behind as inert entries.
	deleted, err := s.profiles.DeleteByOwner(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("delete owned profiles: %w", err)
	}

	log.Info().Str("email", email).Int("profiles_deleted", deleted).Msg("Account deleted")
	return &model.DeleteAccountResult{ProfilesDeleted: deleted}, nil
}
