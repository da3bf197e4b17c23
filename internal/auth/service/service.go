package service

import (
	"context"
	"strings"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/auth/repository"
	"github.com/gustavo-devfull/fabricas-sub000/platform/apperr"
	"github.com/gustavo-devfull/fabricas-sub000/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenType = "access"

const invalidCredentialsMsg = "invalid email or password"

// Service implements authentication and user management.
type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
}

// New creates a new auth service
func New(repo *repository.Repository, cfg config.AuthServiceConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// CreateUserParams holds the fields for a new user account.
type CreateUserParams struct {
	Email    string
	Name     string
	Password string
	Roles    []string
}

// CreateUser registers a new account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, params CreateUserParams) (*repository.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password")
	}

	roles := params.Roles
	if len(roles) == 0 {
		roles = []string{"user"}
	}

	now := time.Now().UTC()
	user := &repository.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(params.Email)),
		Name:         strings.TrimSpace(params.Name),
		PasswordHash: string(hash),
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns a signed access token plus the
// authenticated user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *repository.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password.
		return "", nil, apperr.Unauthorized(invalidCredentialsMsg)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized(invalidCredentialsMsg)
	}

	token, err := s.signAccessToken(user)
	if err != nil {
		return "", nil, apperr.Internal("failed to sign token")
	}
	return token, user, nil
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*repository.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]repository.User, error) {
	return s.repo.List(ctx)
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperr.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to hash password")
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// SetRoles replaces a user's role set.
func (s *Service) SetRoles(ctx context.Context, userID uuid.UUID, roles []string) error {
	return s.repo.SetRoles(ctx, userID, roles)
}

func (s *Service) signAccessToken(user *repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"type":  accessTokenType,
		"name":  user.Name,
		"roles": user.Roles,
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
