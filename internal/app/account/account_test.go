package account

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"nutrigen/internal/app/userstore"
	"nutrigen/internal/pkg/errs"
)

// recordingStore is an in-memory userstore.Store that counts saves.
type recordingStore struct {
	saved   userstore.Users
	saves   int
	saveErr error
}

func (s *recordingStore) Load(context.Context) (userstore.Users, error) {
	return s.saved.Clone(), nil
}

func (s *recordingStore) Save(_ context.Context, users userstore.Users) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.saved = users.Clone()
	return nil
}

func newService(users userstore.Users) (*Service, *recordingStore) {
	store := &recordingStore{saved: users.Clone()}
	return NewService(store, users.Clone(), Plain{}), store
}

func requireCode(t *testing.T, want int, got *errs.CustomError) {
	t.Helper()
	require.NotNil(t, got, "expected error code %d", want)
	assert.Equal(t, want, got.Code)
}

func TestRegisterThenLogin(t *testing.T) {
	svc, store := newService(userstore.Users{})
	ctx := context.Background()

	require.Nil(t, svc.Register(ctx, "alice", "pw1", "pw1"))
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, userstore.Users{"alice": "pw1"}, store.saved)

	assert.Nil(t, svc.Login(ctx, "alice", "pw1"))
	assert.True(t, svc.Exists("alice"))
	assert.Equal(t, 1, svc.Count())
}

func TestRegister_DuplicateUsername(t *testing.T) {
	for _, pw := range [][2]string{{"pw1", "pw1"}, {"other", "other"}, {"a", "b"}, {"", ""}} {
		svc, store := newService(userstore.Users{"alice": "pw1"})

		err := svc.Register(context.Background(), "alice", pw[0], pw[1])

		if pw[0] == "" {
			requireCode(t, errs.ErrRegistrationIncomplete, err)
		} else {
			requireCode(t, errs.ErrUsernameExists, err)
			assert.Equal(t, "Username already exists", err.Message)
		}
		assert.Zero(t, store.saves)
		assert.Equal(t, userstore.Users{"alice": "pw1"}, store.saved)
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, store := newService(userstore.Users{})

	err := svc.Register(context.Background(), "bob", "pw1", "pw2")

	requireCode(t, errs.ErrPasswordMismatch, err)
	assert.Equal(t, "Passwords do not match", err.Message)
	assert.Zero(t, store.saves)
	assert.False(t, svc.Exists("bob"))
}

func TestRegister_ValidationOrder(t *testing.T) {
	tests := []struct {
		name                        string
		username, password, confirm string
		want                        int
	}{
		{"empty username", "", "pw", "pw", errs.ErrRegistrationIncomplete},
		{"empty password", "carol", "", "pw", errs.ErrRegistrationIncomplete},
		{"empty confirm", "carol", "pw", "", errs.ErrRegistrationIncomplete},
		{"exists before mismatch", "alice", "x", "y", errs.ErrUsernameExists},
		{"mismatch", "carol", "x", "y", errs.ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService(userstore.Users{"alice": "pw1"})
			requireCode(t, tt.want, svc.Register(context.Background(), tt.username, tt.password, tt.confirm))
			assert.Zero(t, store.saves)
		})
	}
}

func TestResetPassword_UnknownUsername(t *testing.T) {
	svc, store := newService(userstore.Users{"alice": "pw1"})

	err := svc.ResetPassword(context.Background(), "mallory", "new", "other")

	requireCode(t, errs.ErrUsernameNotFound, err)
	assert.Equal(t, "Username does not exist", err.Message)
	assert.Zero(t, store.saves)
}

func TestResetPassword_Mismatch(t *testing.T) {
	svc, store := newService(userstore.Users{"alice": "pw1"})

	requireCode(t, errs.ErrPasswordMismatch, svc.ResetPassword(context.Background(), "alice", "new", "other"))
	assert.Zero(t, store.saves)
	assert.Nil(t, svc.Login(context.Background(), "alice", "pw1"))
}

func TestResetPassword_ReplacesPassword(t *testing.T) {
	svc, store := newService(userstore.Users{"alice": "pw1"})
	ctx := context.Background()

	require.Nil(t, svc.ResetPassword(ctx, "alice", "pw2", "pw2"))

	assert.Equal(t, userstore.Users{"alice": "pw2"}, store.saved)
	requireCode(t, errs.ErrInvalidCredentials, svc.Login(ctx, "alice", "pw1"))
	assert.Nil(t, svc.Login(ctx, "alice", "pw2"))
}

func TestLogin_FailuresShareOneMessage(t *testing.T) {
	svc, _ := newService(userstore.Users{"alice": "pw1"})
	ctx := context.Background()

	wrongPassword := svc.Login(ctx, "alice", "wrong")
	unknownUser := svc.Login(ctx, "bob", "pw1")
	wrongCase := svc.Login(ctx, "alice", "PW1")

	requireCode(t, errs.ErrInvalidCredentials, wrongPassword)
	requireCode(t, errs.ErrInvalidCredentials, unknownUser)
	requireCode(t, errs.ErrInvalidCredentials, wrongCase)
	assert.Equal(t, wrongPassword.Message, unknownUser.Message)
	assert.Equal(t, "Incorrect username or password", unknownUser.Message)
}

func TestSaveFailureLeavesMappingUnchanged(t *testing.T) {
	svc, store := newService(userstore.Users{"alice": "pw1"})
	store.saveErr = errors.New("read-only file system")
	ctx := context.Background()

	requireCode(t, errs.ErrUserStoreFailed, svc.Register(ctx, "bob", "pw", "pw"))
	assert.False(t, svc.Exists("bob"))

	requireCode(t, errs.ErrUserStoreFailed, svc.ResetPassword(ctx, "alice", "pw2", "pw2"))
	assert.Nil(t, svc.Login(ctx, "alice", "pw1"))
}

func TestLoad_FromFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	ctx := context.Background()
	require.NoError(t, userstore.NewFileStore(path).Save(ctx, userstore.Users{"alice": "pw1"}))

	svc, err := Load(ctx, userstore.NewFileStore(path), Plain{})
	require.NoError(t, err)
	assert.Nil(t, svc.Login(ctx, "alice", "pw1"))

	require.Nil(t, svc.Register(ctx, "bob", "pw2", "pw2"))

	reloaded, err := userstore.NewFileStore(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, userstore.Users{"alice": "pw1", "bob": "pw2"}, reloaded)
}

func TestBcryptPolicy(t *testing.T) {
	store := &recordingStore{saved: userstore.Users{"legacy": "pw1"}}
	svc := NewService(store, userstore.Users{"legacy": "pw1"}, Bcrypt{Cost: 4})
	ctx := context.Background()

	require.Nil(t, svc.Register(ctx, "alice", "secret", "secret"))
	assert.NotEqual(t, "secret", store.saved["alice"])
	assert.True(t, isBcryptHash(store.saved["alice"]))

	assert.Nil(t, svc.Login(ctx, "alice", "secret"))
	requireCode(t, errs.ErrInvalidCredentials, svc.Login(ctx, "alice", "Secret"))

	assert.Nil(t, svc.Login(ctx, "legacy", "pw1"))
	requireCode(t, errs.ErrInvalidCredentials, svc.Login(ctx, "legacy", "pw2"))
}

func TestBcryptPolicy_LongPassword(t *testing.T) {
	store := &recordingStore{}
	svc := NewService(store, userstore.Users{}, Bcrypt{Cost: 4})
	ctx := context.Background()

	long := strings.Repeat("x", 73)
	require.Nil(t, svc.Register(ctx, "alice", long, long))
	assert.True(t, isBcryptHash(store.saved["alice"]))

	assert.Nil(t, svc.Login(ctx, "alice", long))
	requireCode(t, errs.ErrInvalidCredentials, svc.Login(ctx, "alice", long[:72]))
	requireCode(t, errs.ErrInvalidCredentials, svc.Login(ctx, "alice", long+"x"))

	longer := strings.Repeat("y", 200)
	require.Nil(t, svc.ResetPassword(ctx, "alice", longer, longer))
	assert.Nil(t, svc.Login(ctx, "alice", longer))
	requireCode(t, errs.ErrInvalidCredentials, svc.Login(ctx, "alice", long))
}

func TestBcryptPolicy_ShortPasswordHashesStayCompatible(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), 4)
	require.NoError(t, err)

	assert.True(t, Bcrypt{}.Verify(string(hashed), "secret"))
}

func TestNewPasswordPolicy(t *testing.T) {
	assert.IsType(t, Plain{}, NewPasswordPolicy("plain"))
	assert.IsType(t, Bcrypt{}, NewPasswordPolicy("bcrypt"))
}
