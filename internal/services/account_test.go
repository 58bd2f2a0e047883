package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/models"
	"github.com/dmitrijs2005/gophsocial/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegister_StoresHashAndZeroedProfile(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	ctx := context.Background()

	p, err := f.accounts.Register(ctx, RegisterRequest{
		Name: "Alice", Email: "alice@example.org", Handle: "alice", Password: []byte("secret"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.Profile{Name: "Alice", Email: "alice@example.org", Handle: "alice"}, p)

	u, err := f.repo.GetByHandle(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.CredentialHashed, u.Credential.Kind)
	assert.NotEqual(t, []byte("secret"), u.Credential.Hash)
	assert.True(t, strings.HasPrefix(string(u.Credential.Hash), "$2"))
}

func TestRegister_DuplicateHandle(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	f.register(t, "alice")

	_, err := f.accounts.Register(context.Background(), RegisterRequest{
		Name: "Other", Email: "other@example.org", Handle: "alice", Password: []byte("x"),
	})
	assert.ErrorIs(t, err, common.ErrDuplicateHandle)

	entries := f.logs.FilterMessage("register failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestRegister_Validation(t *testing.T) {
	valid := RegisterRequest{Name: "A", Email: "a@example.org", Handle: "a", Password: []byte("pw")}

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
		msg    string
	}{
		{"missing name", func(r *RegisterRequest) { r.Name = "" }, "name is required"},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email is not a valid address"},
		{"missing handle", func(r *RegisterRequest) { r.Handle = "" }, "handle is required"},
		{"long handle", func(r *RegisterRequest) { r.Handle = strings.Repeat("h", 33) }, "handle must be at most 32 characters"},
		{"handle with space", func(r *RegisterRequest) { r.Handle = "a b" }, "handle must not contain whitespace"},
		{"empty password", func(r *RegisterRequest) { r.Password = []byte{} }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, AccountOptions{})
			req := valid
			tt.mutate(&req)

			_, err := f.accounts.Register(context.Background(), req)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)

			_, err = f.repo.GetByHandle(context.Background(), req.Handle)
			assert.ErrorIs(t, err, common.ErrNotFound)
		})
	}
}

func TestRegister_HandleAtLimit(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	_, err := f.accounts.Register(context.Background(), RegisterRequest{
		Name: "A", Email: "a@example.org", Handle: strings.Repeat("h", 32), Password: []byte("pw"),
	})
	assert.NoError(t, err)
}

func TestAuthenticate_UnknownHandle(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	for _, pw := range []string{"x", "", "pw-nouser"} {
		_, err := f.accounts.Authenticate(context.Background(), "nouser", []byte(pw))
		assert.ErrorIs(t, err, common.ErrNotFound)
	}
}

func TestAuthenticate_Password(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	f.register(t, "alice")

	p, err := f.accounts.Authenticate(context.Background(), "alice", []byte("pw-alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Handle)

	_, err = f.accounts.Authenticate(context.Background(), "alice", []byte("wrong"))
	assert.ErrorIs(t, err, common.ErrInvalidCredential)
}

func TestAuthenticate_Legacy(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		f := newFixture(t, AccountOptions{})
		f.importLegacy(t, "old")

		_, err := f.accounts.Authenticate(context.Background(), "old", []byte("anything"))
		assert.ErrorIs(t, err, common.ErrInvalidCredential)

		rejected := f.logs.FilterMessage("legacy account rejected, enable legacy_login (-l) to allow it").All()
		require.Len(t, rejected, 1)
		assert.Equal(t, zap.WarnLevel, rejected[0].Level)
	})

	t.Run("compatibility mode", func(t *testing.T) {
		f := newFixture(t, AccountOptions{LegacyLogin: true})
		f.importLegacy(t, "old")

		p, err := f.accounts.Authenticate(context.Background(), "old", []byte("anything"))
		require.NoError(t, err)
		assert.Equal(t, "old", p.Handle)

		warned := f.logs.FilterMessage("legacy account signed in without password check").All()
		assert.Len(t, warned, 1)
	})

	t.Run("hashed accounts still checked", func(t *testing.T) {
		f := newFixture(t, AccountOptions{LegacyLogin: true})
		f.register(t, "alice")

		_, err := f.accounts.Authenticate(context.Background(), "alice", []byte("wrong"))
		assert.ErrorIs(t, err, common.ErrInvalidCredential)
	})
}

func TestLoginLogout(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	f.register(t, "alice")
	f.register(t, "bob")
	ctx := context.Background()
	sess := session.New()

	_, err := f.accounts.Login(ctx, sess, "alice", []byte("nope"))
	require.ErrorIs(t, err, common.ErrInvalidCredential)
	assert.False(t, sess.SignedIn())

	_, err = f.accounts.Login(ctx, sess, "alice", []byte("pw-alice"))
	require.NoError(t, err)
	h, err := sess.Handle()
	require.NoError(t, err)
	assert.Equal(t, "alice", h)

	_, err = f.accounts.Login(ctx, sess, "bob", []byte("pw-bob"))
	require.NoError(t, err)
	h, _ = sess.Handle()
	assert.Equal(t, "bob", h)

	require.NoError(t, f.accounts.Logout(ctx, sess))
	assert.False(t, sess.SignedIn())
	assert.ErrorIs(t, f.accounts.Logout(ctx, sess), common.ErrUnauthenticated)
}

func TestLogging_NeverIncludesPassword(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	f.register(t, "alice")
	_, _ = f.accounts.Authenticate(context.Background(), "alice", []byte("wrong"))

	for _, e := range f.logs.All() {
		for k, v := range e.ContextMap() {
			assert.NotContains(t, k, "password")
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, "pw-alice")
				assert.NotContains(t, s, "wrong")
			}
		}
	}
}
