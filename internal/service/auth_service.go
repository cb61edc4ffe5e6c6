package service

import (
	"context"
	"errors"
	"time"

	"github.com/Aniket-89/recrm/internal/config"
	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/middleware"
	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)

	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{users: users, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		// Burn a hash compare so missing and wrong-password logins take the
		// same time.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000"), []byte(req.Password))
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		log.Warn().Str("username", req.Username).Msg("failed login attempt")
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := middleware.ParseToken(refreshToken, s.cfg.JWTSecret)
	if err != nil || claims.TokenType != "refresh" {
		return nil, errors.New("invalid refresh token")
	}
	user, err := s.users.FindByUsername(ctx, claims.Username)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *model.User) (*dto.LoginResponse, error) {
	accessTTL := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	refreshTTL := time.Duration(s.cfg.JWTRefreshHours) * time.Hour

	access := jwt.NewWithClaims(jwt.SigningMethodHS256,
		middleware.NewAccessClaims(user.ID.String(), user.Username, user.Role, accessTTL))
	accessToken, err := access.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256,
		middleware.NewRefreshClaims(user.ID.String(), user.Username, user.Role, refreshTTL))
	refreshToken, err := refresh.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(accessTTL.Seconds()),
		User:         *userToResponse(user),
	}, nil
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *authService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func (s *authService) ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *userToResponse(&users[i]))
	}
	return out, nil
}

func (s *authService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return errors.New("user not found")
	}
	return s.users.SoftDelete(ctx, id)
}

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Active:   u.Active,
	}
}
