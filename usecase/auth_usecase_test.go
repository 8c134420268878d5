package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kindaboxs/meetboxs/contracts"
	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/model"
	"github.com/kindaboxs/meetboxs/pkg/jwt"
	"github.com/kindaboxs/meetboxs/pkg/logger"
)

// stubUserRepo is an in-memory repository.User
type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*model.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = "01HZYUSER00000000000000001"
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func newAuthFixture(t *testing.T) (*stubUserRepo, AuthUseCase) {
	t.Helper()
	client, err := jwt.New(
		jwt.WithAccessTokenSecret("test-access-secret-for-auth-usecase"),
		jwt.WithRefreshTokenSecret("test-refresh-secret-for-auth-usecase"),
	)
	require.NoError(t, err)
	repo := newStubUserRepo()
	return repo, NewAuthUseCase(repo, client, logger.NoOpLogger())
}

func TestAuthUseCase_Register(t *testing.T) {
	repo, uc := newAuthFixture(t)

	tokens, err := uc.Register(context.Background(), &contracts.RegisterRequest{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "sup3rsecret",
		PasswordConfirm: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Greater(t, tokens.AccessTokenExpire, int64(0))

	user, err := repo.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "sup3rsecret", user.Password, "The stored password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("sup3rsecret")))
}

func TestAuthUseCase_Register_DuplicateEmail(t *testing.T) {
	_, uc := newAuthFixture(t)

	req := &contracts.RegisterRequest{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "sup3rsecret",
		PasswordConfirm: "sup3rsecret",
	}
	_, err := uc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestAuthUseCase_Login(t *testing.T) {
	_, uc := newAuthFixture(t)

	_, err := uc.Register(context.Background(), &contracts.RegisterRequest{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "sup3rsecret",
		PasswordConfirm: "sup3rsecret",
	})
	require.NoError(t, err)

	tokens, err := uc.Login(context.Background(), &contracts.LoginRequest{
		Email:    "ana@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthUseCase_Login_BadCredentialsIndistinguishable(t *testing.T) {
	_, uc := newAuthFixture(t)

	_, err := uc.Register(context.Background(), &contracts.RegisterRequest{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "sup3rsecret",
		PasswordConfirm: "sup3rsecret",
	})
	require.NoError(t, err)

	_, wrongPassword := uc.Login(context.Background(), &contracts.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrongpassword",
	})
	_, unknownEmail := uc.Login(context.Background(), &contracts.LoginRequest{
		Email:    "nobody@example.com",
		Password: "sup3rsecret",
	})
	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
}

func TestAuthUseCase_Refresh(t *testing.T) {
	_, uc := newAuthFixture(t)

	tokens, err := uc.Register(context.Background(), &contracts.RegisterRequest{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "sup3rsecret",
		PasswordConfirm: "sup3rsecret",
	})
	require.NoError(t, err)

	refreshed, err := uc.Refresh(context.Background(), &contracts.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestAuthUseCase_Refresh_RejectsGarbage(t *testing.T) {
	_, uc := newAuthFixture(t)

	_, err := uc.Refresh(context.Background(), &contracts.RefreshTokenRequest{
		RefreshToken: "not-a-token",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthUseCase_Profile(t *testing.T) {
	repo, uc := newAuthFixture(t)
	require.NoError(t, repo.Create(context.Background(), &model.User{
		ID:    "01HZYUSER00000000000000042",
		Name:  "Ana",
		Email: "ana@example.com",
	}))

	profile, err := uc.Profile(context.Background(), "01HZYUSER00000000000000042")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)

	_, err = uc.Profile(context.Background(), "01HZYUSER000000000000MISSING")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
