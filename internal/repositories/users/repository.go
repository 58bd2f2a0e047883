// Package users stores accounts and FOLLOWS edges. Two implementations
// share one contract: Neo4jRepository issues Cypher through a
// graphdb.Executor, MemoryRepository keeps the graph in process.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophsocial/internal/models"
)

// Repository is the persistence contract of the social graph.
//
// Ordering: Followers, Following and Mutual sort by handle. Recommendations
// sort by common count descending, Search by cached follower count
// descending, Popular by live follower count descending; ties break by
// handle ascending.
type Repository interface {
	// Create stores u with zeroed counters and an empty bio. It fails with
	// common.ErrDuplicateHandle or common.ErrDuplicateEmail.
	Create(ctx context.Context, u *models.User) (*models.User, error)
	// GetByHandle fails with common.ErrNotFound.
	GetByHandle(ctx context.Context, handle string) (*models.User, error)
	// UpdateProfile applies upd and returns the stored record afterwards.
	UpdateProfile(ctx context.Context, handle string, upd models.ProfileUpdate) (*models.User, error)

	IsFollowing(ctx context.Context, follower, followee string) (bool, error)
	// Follow creates the edge and bumps both counters in one atomic unit.
	// It fails with common.ErrAlreadyFollowing when the edge exists.
	Follow(ctx context.Context, follower, followee string) (models.FollowCounts, error)
	// Unfollow deletes the edge and decrements both counters, never below
	// zero. It fails with common.ErrNotFollowing.
	Unfollow(ctx context.Context, follower, followee string) (models.FollowCounts, error)

	Followers(ctx context.Context, handle string) ([]string, error)
	Following(ctx context.Context, handle string) ([]string, error)
	// Mutual returns the handles followed by both a and b.
	Mutual(ctx context.Context, a, b string) ([]string, error)
	// Recommendations returns users followed by handle's followees, minus
	// handle and everyone handle already follows.
	Recommendations(ctx context.Context, handle string, limit int) ([]models.Recommendation, error)
	// Search matches term as a case-sensitive substring of name or handle.
	Search(ctx context.Context, term string, limit int) ([]models.SearchHit, error)
	// Popular counts incoming edges at query time rather than reading the
	// cached counter. Users without followers are left out.
	Popular(ctx context.Context, limit int) ([]models.PopularUser, error)
}
