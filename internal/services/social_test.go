package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/models"
	"github.com/dmitrijs2005/gophsocial/internal/repositories/users"
	"github.com/dmitrijs2005/gophsocial/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFollowUnfollowScenario(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	f.register(t, "alice")
	f.register(t, "bob")
	alice := f.as(t, "alice")
	ctx := context.Background()

	c, err := f.social.Follow(ctx, alice, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.FollowCounts{FollowerFollowing: 1, FolloweeFollowers: 1}, c)

	_, following := f.counts(t, "alice")
	followers, _ := f.counts(t, "bob")
	assert.Equal(t, int64(1), following)
	assert.Equal(t, int64(1), followers)

	_, err = f.social.Follow(ctx, alice, "bob")
	assert.ErrorIs(t, err, common.ErrAlreadyFollowing)

	_, err = f.social.Unfollow(ctx, alice, "bob")
	require.NoError(t, err)
	_, following = f.counts(t, "alice")
	followers, _ = f.counts(t, "bob")
	assert.Zero(t, following)
	assert.Zero(t, followers)

	_, err = f.social.Unfollow(ctx, alice, "bob")
	assert.ErrorIs(t, err, common.ErrNotFollowing)
}

func TestFollowThenUnfollowRestoresCounters(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	for _, h := range []string{"a", "b", "c"} {
		f.register(t, h)
	}
	ctx := context.Background()
	a, c := f.as(t, "a"), f.as(t, "c")

	_, err := f.social.Follow(ctx, c, "b")
	require.NoError(t, err)
	_, err = f.social.Follow(ctx, a, "c")
	require.NoError(t, err)

	bFollowers, _ := f.counts(t, "b")
	_, aFollowing := f.counts(t, "a")

	_, err = f.social.Follow(ctx, a, "b")
	require.NoError(t, err)
	_, err = f.social.Unfollow(ctx, a, "b")
	require.NoError(t, err)

	gotB, _ := f.counts(t, "b")
	_, gotA := f.counts(t, "a")
	assert.Equal(t, bFollowers, gotB)
	assert.Equal(t, aFollowing, gotA)
}

func TestFollow_Errors(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	f.register(t, "alice")
	alice := f.as(t, "alice")
	ctx := context.Background()

	_, err := f.social.Follow(ctx, alice, "alice")
	assert.ErrorIs(t, err, common.ErrSelfFollow)

	_, err = f.social.Follow(ctx, alice, "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.social.Follow(ctx, session.New(), "alice")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestSelfFollowRegardlessOfState(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	f.register(t, "alice")
	f.register(t, "bob")
	ctx := context.Background()
	alice, bob := f.as(t, "alice"), f.as(t, "bob")

	_, err := f.social.Follow(ctx, bob, "alice")
	require.NoError(t, err)
	_, err = f.social.Follow(ctx, alice, "bob")
	require.NoError(t, err)

	_, err = f.social.Follow(ctx, alice, "alice")
	assert.ErrorIs(t, err, common.ErrSelfFollow)
}

func TestIdentityScopedOperationsRequireSession(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	f.register(t, "alice")
	ctx := context.Background()
	anon := session.New()
	name := "x"

	_, err := f.social.ViewProfile(ctx, anon, "alice")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	_, err = f.social.EditProfile(ctx, anon, models.ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	_, err = f.social.Unfollow(ctx, anon, "alice")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	_, err = f.social.Connections(ctx, anon)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	_, err = f.social.MutualConnections(ctx, anon, "alice")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	_, err = f.social.Recommendations(ctx, nil)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	_, err = f.social.Search(ctx, "al")
	assert.NoError(t, err)
	_, err = f.social.PopularUsers(ctx)
	assert.NoError(t, err)
}

func TestViewProfile(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	f.register(t, "alice")
	f.register(t, "bob")
	alice := f.as(t, "alice")
	ctx := context.Background()

	self, err := f.social.ViewProfile(ctx, alice, "")
	require.NoError(t, err)
	assert.Equal(t, "alice", self.Handle)

	other, err := f.social.ViewProfile(ctx, alice, "bob")
	require.NoError(t, err)
	assert.Equal(t, "User bob", other.Name)

	cached, ok := alice.Profile()
	require.True(t, ok)
	assert.Equal(t, "alice", cached.Handle)

	_, err = f.social.ViewProfile(ctx, alice, "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEditProfile(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	f.register(t, "alice")
	f.register(t, "bob")
	alice := f.as(t, "alice")
	bob := f.as(t, "bob")
	ctx := context.Background()

	_, err := f.social.Follow(ctx, bob, "alice")
	require.NoError(t, err)

	empty := ""
	_, err = f.social.EditProfile(ctx, alice, models.ProfileUpdate{})
	assert.ErrorIs(t, err, common.ErrNoChange)
	_, err = f.social.EditProfile(ctx, alice, models.ProfileUpdate{Name: &empty, Bio: &empty})
	assert.ErrorIs(t, err, common.ErrNoChange)

	bio := "gopher"
	p, err := f.social.EditProfile(ctx, alice, models.ProfileUpdate{Name: &empty, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "User alice", p.Name)
	assert.Equal(t, "gopher", p.Bio)
	assert.Equal(t, int64(1), p.FollowersCount)

	cached, ok := alice.Profile()
	require.True(t, ok)
	assert.Equal(t, p, cached)
}

func TestConnections(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	for _, h := range []string{"me", "x", "y", "z"} {
		f.register(t, h)
	}
	ctx := context.Background()
	me := f.as(t, "me")

	for _, h := range []string{"y", "x"} {
		_, err := f.social.Follow(ctx, f.as(t, h), "me")
		require.NoError(t, err)
	}
	_, err := f.social.Follow(ctx, me, "z")
	require.NoError(t, err)

	c, err := f.social.Connections(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, models.Connections{Followers: []string{"x", "y"}, Following: []string{"z"}}, c)
}

func TestMutualConnectionsIsIntersection(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	for _, h := range []string{"x", "y", "b", "only-x", "only-y"} {
		f.register(t, h)
	}
	ctx := context.Background()
	x, y := f.as(t, "x"), f.as(t, "y")

	for _, h := range []string{"b", "only-x"} {
		_, err := f.social.Follow(ctx, x, h)
		require.NoError(t, err)
	}
	for _, h := range []string{"b", "only-y"} {
		_, err := f.social.Follow(ctx, y, h)
		require.NoError(t, err)
	}

	m, err := f.social.MutualConnections(ctx, x, "y")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, m)

	m, err = f.social.MutualConnections(ctx, x, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "only-x"}, m)

	m, err = f.social.MutualConnections(ctx, x, "ghost")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestRecommendationsScenario(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	for _, h := range []string{"carol", "dave", "eve"} {
		f.register(t, h)
	}
	ctx := context.Background()
	carol, dave := f.as(t, "carol"), f.as(t, "dave")

	_, err := f.social.Follow(ctx, carol, "dave")
	require.NoError(t, err)
	_, err = f.social.Follow(ctx, dave, "eve")
	require.NoError(t, err)

	recs, err := f.social.Recommendations(ctx, carol)
	require.NoError(t, err)
	assert.Contains(t, recs, models.Recommendation{Handle: "eve", CommonCount: 1})
}

// TestRecommendationsProperties checks random graphs: the caller and its
// followees never appear, at most five results, scores non-increasing.
func TestRecommendationsProperties(t *testing.T) {
	const n = 12
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		f := newFixture(t, AccountOptions{})
		handles := make([]string, n)
		sessions := make([]*session.Session, n)
		for i := range handles {
			handles[i] = fmt.Sprintf("u%02d", i)
			f.register(t, handles[i])
			sessions[i] = f.as(t, handles[i])
		}

		ctx := context.Background()
		for i := range handles {
			for j := range handles {
				if i != j && rng.Intn(3) == 0 {
					_, err := f.social.Follow(ctx, sessions[i], handles[j])
					require.NoError(t, err)
				}
			}
		}

		for i, me := range handles {
			recs, err := f.social.Recommendations(ctx, sessions[i])
			require.NoError(t, err)
			require.LessOrEqual(t, len(recs), RecommendationLimit)

			following, err := f.repo.Following(ctx, me)
			require.NoError(t, err)

			for k, r := range recs {
				assert.NotEqual(t, me, r.Handle)
				assert.NotContains(t, following, r.Handle)
				assert.Positive(t, r.CommonCount)
				if k > 0 {
					assert.GreaterOrEqual(t, recs[k-1].CommonCount, r.CommonCount)
				}
			}
		}
	}
}

func TestSearchAndPopular(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	for _, h := range []string{"alice", "alan", "bob"} {
		f.register(t, h)
	}
	ctx := context.Background()
	bob, alan := f.as(t, "bob"), f.as(t, "alan")

	_, err := f.social.Follow(ctx, bob, "alan")
	require.NoError(t, err)
	_, err = f.social.Follow(ctx, alan, "bob")
	require.NoError(t, err)
	_, err = f.social.Follow(ctx, f.as(t, "alice"), "alan")
	require.NoError(t, err)

	hits, err := f.social.Search(ctx, "al")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "alan", hits[0].Handle)
	assert.Equal(t, int64(2), hits[0].FollowersCount)

	hits, err = f.social.Search(ctx, "AL")
	require.NoError(t, err)
	assert.Empty(t, hits)

	pop, err := f.social.PopularUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.PopularUser{
		{Handle: "alan", Name: "User alan", LiveFollowers: 2},
		{Handle: "bob", Name: "User bob", LiveFollowers: 1},
	}, pop)
}

func TestSearchLimit(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	for i := 0; i < SearchLimit+3; i++ {
		f.register(t, fmt.Sprintf("user%02d", i))
	}

	hits, err := f.social.Search(context.Background(), "user")
	require.NoError(t, err)
	assert.Len(t, hits, SearchLimit)
}

// failingRepo fails every profile lookup with err.
type failingRepo struct {
	*users.MemoryRepository
	err error
}

func (r failingRepo) GetByHandle(context.Context, string) (*models.User, error) {
	return nil, r.err
}

func TestInfrastructureErrorsLoggedAtErrorLevel(t *testing.T) {
	f := newFixture(t, AccountOptions{})
	f.register(t, "alice")
	sess := f.as(t, "alice")

	svc := NewSocialService(failingRepo{f.repo, fmt.Errorf("db error: %w", common.ErrConnection)}, f.logger)
	_, err := svc.ViewProfile(context.Background(), sess, "")
	require.True(t, errors.Is(err, common.ErrConnection))

	entries := f.logs.FilterMessage("view profile failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
}
