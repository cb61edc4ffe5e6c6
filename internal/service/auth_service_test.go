package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Aniket-89/recrm/internal/config"
	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/middleware"
	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Active || includeInactive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("record not found")
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("record not found")
	}
	u.Active = true
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newAuthFixture(t *testing.T) (AuthService, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(users, cfg), users
}

func TestAuthLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "asha",
		Name:     "Asha Mehta",
		Password: "correct-horse",
		Role:     "accounts",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "asha", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "accounts", resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := middleware.ParseToken(resp.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "asha", claims.Username)
	assert.Equal(t, "access", claims.TokenType)

	claims, err = middleware.ParseToken(resp.RefreshToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "asha", Name: "Asha Mehta", Password: "correct-horse", Role: "admin",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "asha", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthRefresh(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "asha", Name: "Asha Mehta", Password: "correct-horse", Role: "sales",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "asha", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token must not pass as a refresh token.
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	require.Error(t, err)

	_, err = svc.Refresh(context.Background(), "garbage")
	require.Error(t, err)
}

func TestAuthDeactivatedUserCannotLogin(t *testing.T) {
	svc, users := newAuthFixture(t)

	created, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "asha", Name: "Asha Mehta", Password: "correct-horse", Role: "sales",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateUser(context.Background(), uuid.MustParse(created.ID)))
	assert.False(t, users.users[uuid.MustParse(created.ID)].Active)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "asha", Password: "correct-horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
