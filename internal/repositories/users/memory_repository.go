package users

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users and edges in process. It follows the same
// traversal and ordering rules as the Cypher queries and is used for the
// demo store and in tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	users     map[string]*models.User
	emails    map[string]string
	following map[string]map[string]struct{}
	followers map[string]map[string]struct{}
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:     make(map[string]*models.User),
		emails:    make(map[string]string),
		following: make(map[string]map[string]struct{}),
		followers: make(map[string]map[string]struct{}),
	}
}

func (r *MemoryRepository) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Handle]; ok {
		return nil, common.ErrDuplicateHandle
	}
	if _, ok := r.emails[u.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}

	stored := &models.User{
		ID:         uuid.NewString(),
		Name:       u.Name,
		Email:      u.Email,
		Handle:     u.Handle,
		Credential: u.Credential,
		CreatedAt:  now(),
	}
	r.users[stored.Handle] = stored
	r.emails[stored.Email] = stored.Handle

	out := *stored
	return &out, nil
}

func (r *MemoryRepository) GetByHandle(_ context.Context, handle string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[handle]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) UpdateProfile(_ context.Context, handle string, upd models.ProfileUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[handle]
	if !ok {
		return nil, common.ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) IsFollowing(_ context.Context, follower, followee string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.following[follower][followee]
	return ok, nil
}

func (r *MemoryRepository) Follow(_ context.Context, follower, followee string) (models.FollowCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, okA := r.users[follower]
	b, okB := r.users[followee]
	if !okA || !okB {
		return models.FollowCounts{}, common.ErrNotFound
	}
	if follower == followee {
		return models.FollowCounts{}, common.ErrSelfFollow
	}
	if _, ok := r.following[follower][followee]; ok {
		return models.FollowCounts{}, common.ErrAlreadyFollowing
	}

	addEdge(r.following, follower, followee)
	addEdge(r.followers, followee, follower)
	a.FollowingCount++
	b.FollowersCount++

	return models.FollowCounts{FollowerFollowing: a.FollowingCount, FolloweeFollowers: b.FollowersCount}, nil
}

func (r *MemoryRepository) Unfollow(_ context.Context, follower, followee string) (models.FollowCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.following[follower][followee]; !ok {
		return models.FollowCounts{}, common.ErrNotFollowing
	}

	delete(r.following[follower], followee)
	delete(r.followers[followee], follower)

	a, b := r.users[follower], r.users[followee]
	a.FollowingCount = max(a.FollowingCount-1, 0)
	b.FollowersCount = max(b.FollowersCount-1, 0)

	return models.FollowCounts{FollowerFollowing: a.FollowingCount, FolloweeFollowers: b.FollowersCount}, nil
}

func (r *MemoryRepository) Followers(_ context.Context, handle string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.followers[handle]), nil
}

func (r *MemoryRepository) Following(_ context.Context, handle string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.following[handle]), nil
}

func (r *MemoryRepository) Mutual(_ context.Context, a, b string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	theirs := r.following[b]
	for h := range r.following[a] {
		if _, ok := theirs[h]; ok {
			out = append(out, h)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (r *MemoryRepository) Recommendations(_ context.Context, handle string, limit int) ([]models.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mine := r.following[handle]
	scores := make(map[string]int64)
	for f := range mine {
		for c := range r.following[f] {
			if c == handle {
				continue
			}
			if _, already := mine[c]; already {
				continue
			}
			scores[c]++
		}
	}

	out := make([]models.Recommendation, 0, len(scores))
	for h, n := range scores {
		out = append(out, models.Recommendation{Handle: h, CommonCount: n})
	}
	slices.SortFunc(out, func(x, y models.Recommendation) int {
		if c := cmp.Compare(y.CommonCount, x.CommonCount); c != 0 {
			return c
		}
		return cmp.Compare(x.Handle, y.Handle)
	})
	return truncate(out, limit), nil
}

func (r *MemoryRepository) Search(_ context.Context, term string, limit int) ([]models.SearchHit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.SearchHit, 0)
	for _, u := range r.users {
		if strings.Contains(u.Name, term) || strings.Contains(u.Handle, term) {
			out = append(out, models.SearchHit{Handle: u.Handle, Name: u.Name, FollowersCount: u.FollowersCount})
		}
	}
	slices.SortFunc(out, func(x, y models.SearchHit) int {
		if c := cmp.Compare(y.FollowersCount, x.FollowersCount); c != 0 {
			return c
		}
		return cmp.Compare(x.Handle, y.Handle)
	})
	return truncate(out, limit), nil
}

func (r *MemoryRepository) Popular(_ context.Context, limit int) ([]models.PopularUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PopularUser, 0)
	for h, in := range r.followers {
		if len(in) == 0 {
			continue
		}
		out = append(out, models.PopularUser{Handle: h, Name: r.users[h].Name, LiveFollowers: int64(len(in))})
	}
	slices.SortFunc(out, func(x, y models.PopularUser) int {
		if c := cmp.Compare(y.LiveFollowers, x.LiveFollowers); c != 0 {
			return c
		}
		return cmp.Compare(x.Handle, y.Handle)
	})
	return truncate(out, limit), nil
}

func addEdge(adj map[string]map[string]struct{}, from, to string) {
	set, ok := adj[from]
	if !ok {
		set = make(map[string]struct{})
		adj[from] = set
	}
	set[to] = struct{}{}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
