package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sayanm085/shopnex-api/internal/application/auth"
	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/infrastructure/memory"
	"github.com/sayanm085/shopnex-api/pkg/jwt"
)

const testSecret = "auth-test-secret"

func newAuthFixture() (*auth.UseCase, *memory.Store) {
	store := memory.NewStore()
	uc := auth.NewUseCase(store.Users(), auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "shopnex-test",
	})
	return uc, store
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	uc, store := newAuthFixture()
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "s3cret-pw"})
	require.NoError(t, err)

	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, entity.RoleCashier, out.Role)
	assert.Equal(t, "active", out.Status)

	saved, err := store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotEqual(t, "s3cret-pw", saved.PasswordHash)
	assert.NotContains(t, saved.PasswordHash, "s3cret-pw")
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "bob", Password: "pw123456", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegisterDuplicateUsernameIsConflict(t *testing.T) {
	uc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "pw123456"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "other-pw"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLoginReturnsParsableToken(t *testing.T) {
	uc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{
		Username: "carol", Password: "pw123456", Role: entity.RoleManager,
	})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "carol", Password: "pw123456"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, username, role, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "carol", username)
	assert.Equal(t, entity.RoleManager, role)
}

// Unknown username and wrong password must be indistinguishable.
func TestLoginBadCredentialsAreUniform(t *testing.T) {
	uc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "dave", Password: "pw123456"})
	require.NoError(t, err)

	_, errUnknown := uc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "pw123456"})
	_, errWrongPw := uc.Login(ctx, dto.LoginRequest{Username: "dave", Password: "wrong-pw"})

	require.ErrorIs(t, errUnknown, domain.ErrUnauthorized)
	require.ErrorIs(t, errWrongPw, domain.ErrUnauthorized)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLoginInactiveAccountIsForbidden(t *testing.T) {
	uc, store := newAuthFixture()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID:           "user-eve",
		Username:     "eve",
		PasswordHash: string(hash),
		Role:         entity.RoleCashier,
		Status:       "inactive",
	}))

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "eve", Password: "pw123456"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
