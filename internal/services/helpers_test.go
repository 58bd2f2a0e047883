package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophsocial/internal/cryptox"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/dmitrijs2005/gophsocial/internal/models"
	"github.com/dmitrijs2005/gophsocial/internal/repositories/users"
	"github.com/dmitrijs2005/gophsocial/internal/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	repo     *users.MemoryRepository
	accounts *AccountService
	social   *SocialService
	logger   logging.Logger
	logs     *observer.ObservedLogs
}

func newFixture(t *testing.T, opts AccountOptions) *fixture {
	t.Helper()

	orig := cryptox.Cost
	cryptox.Cost = bcrypt.MinCost
	t.Cleanup(func() { cryptox.Cost = orig })

	core, logs := observer.New(zap.DebugLevel)
	logger := logging.NewZapLogger(zap.New(core))

	repo := users.NewMemoryRepository()
	return &fixture{
		repo:     repo,
		accounts: NewAccountService(repo, logger, opts),
		social:   NewSocialService(repo, logger),
		logger:   logger,
		logs:     logs,
	}
}

// register creates handle with password "pw-<handle>".
func (f *fixture) register(t *testing.T, handle string) {
	t.Helper()
	_, err := f.accounts.Register(context.Background(), RegisterRequest{
		Name:     "User " + handle,
		Email:    handle + "@example.org",
		Handle:   handle,
		Password: []byte("pw-" + handle),
	})
	require.NoError(t, err)
}

// as returns a session signed in as handle.
func (f *fixture) as(t *testing.T, handle string) *session.Session {
	t.Helper()
	sess := session.New()
	_, err := f.accounts.Login(context.Background(), sess, handle, []byte("pw-"+handle))
	require.NoError(t, err)
	return sess
}

func (f *fixture) counts(t *testing.T, handle string) (followers, following int64) {
	t.Helper()
	u, err := f.repo.GetByHandle(context.Background(), handle)
	require.NoError(t, err)
	return u.FollowersCount, u.FollowingCount
}

func (f *fixture) importLegacy(t *testing.T, handle string) {
	t.Helper()
	_, err := f.repo.Create(context.Background(), &models.User{
		Name: "Legacy " + handle, Email: handle + "@legacy.example.org", Handle: handle,
		Credential: models.LegacyCredential(),
	})
	require.NoError(t, err)
}
