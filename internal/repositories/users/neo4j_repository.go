package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/graphdb"
	"github.com/dmitrijs2005/gophsocial/internal/models"
	"github.com/google/uuid"
)

// now is a test seam for timestamps written to the graph.
var now = func() time.Time { return time.Now().UTC() }

// Neo4jRepository implements Repository with one Cypher statement per
// operation. Every mutation that touches an edge and the two counters is a
// single statement, so it commits or fails as a whole.
type Neo4jRepository struct {
	db graphdb.Executor
}

func NewNeo4jRepository(db graphdb.Executor) *Neo4jRepository {
	return &Neo4jRepository{db: db}
}

func (r *Neo4jRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	rows, err := r.db.Execute(ctx, qUserTaken, map[string]any{"handle": u.Handle, "email": u.Email})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(rows) > 0 {
		if rows[0].Bool("handle_taken") {
			return nil, common.ErrDuplicateHandle
		}
		if rows[0].Bool("email_taken") {
			return nil, common.ErrDuplicateEmail
		}
	}

	var password any
	if u.Credential.Kind == models.CredentialHashed {
		password = string(u.Credential.Hash)
	}

	rows, err = r.db.Execute(ctx, qCreateUser, map[string]any{
		"uid":        uuid.NewString(),
		"name":       u.Name,
		"handle":     u.Handle,
		"email":      u.Email,
		"password":   password,
		"created_at": now(),
	})
	if err != nil {
		var cerr *graphdb.ConstraintError
		if errors.As(err, &cerr) {
			if cerr.Property == graphdb.PropEmail {
				return nil, common.ErrDuplicateEmail
			}
			return nil, common.ErrDuplicateHandle
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("db error: %w: create returned no rows", common.ErrQuery)
	}

	return userFromRecord(rows[0]), nil
}

func (r *Neo4jRepository) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	rows, err := r.db.Execute(ctx, qFindUser, map[string]any{"handle": handle})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(rows) == 0 {
		return nil, common.ErrNotFound
	}
	return userFromRecord(rows[0]), nil
}

func (r *Neo4jRepository) UpdateProfile(ctx context.Context, handle string, upd models.ProfileUpdate) (*models.User, error) {
	params := map[string]any{"handle": handle, "name": nil, "bio": nil}
	if upd.Name != nil {
		params["name"] = *upd.Name
	}
	if upd.Bio != nil {
		params["bio"] = *upd.Bio
	}

	rows, err := r.db.Execute(ctx, qUpdateProfile, params)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(rows) == 0 {
		return nil, common.ErrNotFound
	}
	return userFromRecord(rows[0]), nil
}

func (r *Neo4jRepository) IsFollowing(ctx context.Context, follower, followee string) (bool, error) {
	rows, err := r.db.Execute(ctx, qIsFollowing, edgeParams(follower, followee))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return len(rows) > 0 && rows[0].Bool("following"), nil
}

// Follow returns common.ErrAlreadyFollowing when the guarded CREATE matched
// nothing. Callers check that both users exist beforehand.
func (r *Neo4jRepository) Follow(ctx context.Context, follower, followee string) (models.FollowCounts, error) {
	params := edgeParams(follower, followee)
	params["since"] = now()

	rows, err := r.db.Execute(ctx, qFollow, params)
	if err != nil {
		return models.FollowCounts{}, fmt.Errorf("db error: %w", err)
	}
	if len(rows) == 0 {
		return models.FollowCounts{}, common.ErrAlreadyFollowing
	}
	return countsFromRecord(rows[0]), nil
}

func (r *Neo4jRepository) Unfollow(ctx context.Context, follower, followee string) (models.FollowCounts, error) {
	rows, err := r.db.Execute(ctx, qUnfollow, edgeParams(follower, followee))
	if err != nil {
		return models.FollowCounts{}, fmt.Errorf("db error: %w", err)
	}
	if len(rows) == 0 {
		return models.FollowCounts{}, common.ErrNotFollowing
	}
	return countsFromRecord(rows[0]), nil
}

func (r *Neo4jRepository) Followers(ctx context.Context, handle string) ([]string, error) {
	return r.handles(ctx, qFollowers, map[string]any{"handle": handle})
}

func (r *Neo4jRepository) Following(ctx context.Context, handle string) ([]string, error) {
	return r.handles(ctx, qFollowing, map[string]any{"handle": handle})
}

func (r *Neo4jRepository) Mutual(ctx context.Context, a, b string) ([]string, error) {
	return r.handles(ctx, qMutual, map[string]any{"a": a, "b": b})
}

func (r *Neo4jRepository) Recommendations(ctx context.Context, handle string, limit int) ([]models.Recommendation, error) {
	rows, err := r.db.Execute(ctx, qRecommendations, map[string]any{"handle": handle, "limit": int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	out := make([]models.Recommendation, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Recommendation{Handle: row.String("handle"), CommonCount: row.Int("common")})
	}
	return out, nil
}

func (r *Neo4jRepository) Search(ctx context.Context, term string, limit int) ([]models.SearchHit, error) {
	rows, err := r.db.Execute(ctx, qSearch, map[string]any{"term": term, "limit": int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	out := make([]models.SearchHit, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.SearchHit{
			Handle:         row.String("handle"),
			Name:           row.String("name"),
			FollowersCount: row.Int("followers_count"),
		})
	}
	return out, nil
}

func (r *Neo4jRepository) Popular(ctx context.Context, limit int) ([]models.PopularUser, error) {
	rows, err := r.db.Execute(ctx, qPopular, map[string]any{"limit": int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	out := make([]models.PopularUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.PopularUser{
			Handle:        row.String("handle"),
			Name:          row.String("name"),
			LiveFollowers: row.Int("live"),
		})
	}
	return out, nil
}

func (r *Neo4jRepository) handles(ctx context.Context, q graphdb.Query, params map[string]any) ([]string, error) {
	rows, err := r.db.Execute(ctx, q, params)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.String("handle"))
	}
	return out, nil
}

func edgeParams(follower, followee string) map[string]any {
	return map[string]any{"follower": follower, "followee": followee}
}

// userFromRecord maps a userFields row. A missing or empty password
// property marks an imported account.
func userFromRecord(row graphdb.Record) *models.User {
	cred := models.LegacyCredential()
	if hash := row.String("password"); hash != "" {
		cred = models.HashedCredential([]byte(hash))
	}

	return &models.User{
		ID:             row.String("uid"),
		Name:           row.String("name"),
		Email:          row.String("email"),
		Handle:         row.String("handle"),
		Credential:     cred,
		Bio:            row.String("bio"),
		FollowersCount: row.Int("followers_count"),
		FollowingCount: row.Int("following_count"),
		CreatedAt:      row.Time("created_at"),
	}
}

func countsFromRecord(row graphdb.Record) models.FollowCounts {
	return models.FollowCounts{
		FollowerFollowing: row.Int("following_count"),
		FolloweeFollowers: row.Int("followers_count"),
	}
}
