package services

import (
	"context"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
	"github.com/dmitrijs2005/gophsocial/internal/models"
	"github.com/dmitrijs2005/gophsocial/internal/repositories/users"
	"github.com/dmitrijs2005/gophsocial/internal/session"
)

// Result limits of the ranked queries.
const (
	RecommendationLimit = 5
	SearchLimit         = 10
	PopularLimit        = 10
)

type SocialService struct {
	repo   users.Repository
	logger logging.Logger
}

func NewSocialService(repo users.Repository, logger logging.Logger) *SocialService {
	return &SocialService{repo: repo, logger: logger.With("service", "social")}
}

// ViewProfile returns the profile of handle, or of the caller when handle
// is empty. Viewing one's own profile refreshes the session cache.
func (s *SocialService) ViewProfile(ctx context.Context, sess *session.Session, handle string) (models.Profile, error) {
	me, err := sess.Handle()
	if err != nil {
		return models.Profile{}, err
	}
	if handle == "" {
		handle = me
	}

	u, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		logFailure(ctx, s.logger, "view profile failed", err, "handle", handle)
		return models.Profile{}, err
	}

	p := u.Profile()
	sess.Refresh(p)
	return p, nil
}

// EditProfile applies the non-empty fields of upd to the caller's profile.
// Empty strings count as absent.
func (s *SocialService) EditProfile(ctx context.Context, sess *session.Session, upd models.ProfileUpdate) (models.Profile, error) {
	me, err := sess.Handle()
	if err != nil {
		return models.Profile{}, err
	}

	upd = normalizeUpdate(upd)
	if upd.Empty() {
		return models.Profile{}, common.ErrNoChange
	}

	u, err := s.repo.UpdateProfile(ctx, me, upd)
	if err != nil {
		logFailure(ctx, s.logger, "edit profile failed", err, "handle", me)
		return models.Profile{}, err
	}

	p := u.Profile()
	sess.Refresh(p)
	s.logger.Info(ctx, "profile updated", "handle", me)
	return p, nil
}

// Follow creates the caller -> target edge.
func (s *SocialService) Follow(ctx context.Context, sess *session.Session, target string) (models.FollowCounts, error) {
	me, err := sess.Handle()
	if err != nil {
		return models.FollowCounts{}, err
	}
	if target == me {
		return models.FollowCounts{}, common.ErrSelfFollow
	}

	if _, err := s.repo.GetByHandle(ctx, target); err != nil {
		logFailure(ctx, s.logger, "follow failed", err, "follower", me, "followee", target)
		return models.FollowCounts{}, err
	}

	following, err := s.repo.IsFollowing(ctx, me, target)
	if err != nil {
		logFailure(ctx, s.logger, "follow failed", err, "follower", me, "followee", target)
		return models.FollowCounts{}, err
	}
	if following {
		return models.FollowCounts{}, common.ErrAlreadyFollowing
	}

	counts, err := s.repo.Follow(ctx, me, target)
	if err != nil {
		logFailure(ctx, s.logger, "follow failed", err, "follower", me, "followee", target)
		return models.FollowCounts{}, err
	}

	s.logger.Info(ctx, "user followed", "follower", me, "followee", target)
	return counts, nil
}

// Unfollow deletes the caller -> target edge.
func (s *SocialService) Unfollow(ctx context.Context, sess *session.Session, target string) (models.FollowCounts, error) {
	me, err := sess.Handle()
	if err != nil {
		return models.FollowCounts{}, err
	}

	counts, err := s.repo.Unfollow(ctx, me, target)
	if err != nil {
		logFailure(ctx, s.logger, "unfollow failed", err, "follower", me, "followee", target)
		return models.FollowCounts{}, err
	}

	s.logger.Info(ctx, "user unfollowed", "follower", me, "followee", target)
	return counts, nil
}

// Connections lists who follows the caller and whom the caller follows.
func (s *SocialService) Connections(ctx context.Context, sess *session.Session) (models.Connections, error) {
	me, err := sess.Handle()
	if err != nil {
		return models.Connections{}, err
	}

	followers, err := s.repo.Followers(ctx, me)
	if err != nil {
		return models.Connections{}, err
	}
	following, err := s.repo.Following(ctx, me)
	if err != nil {
		return models.Connections{}, err
	}
	return models.Connections{Followers: followers, Following: following}, nil
}

// MutualConnections returns the users followed by both the caller and
// other. An unknown other yields an empty list.
func (s *SocialService) MutualConnections(ctx context.Context, sess *session.Session, other string) ([]string, error) {
	me, err := sess.Handle()
	if err != nil {
		return nil, err
	}
	return s.repo.Mutual(ctx, me, other)
}

// Recommendations ranks two-hop candidates for the caller.
func (s *SocialService) Recommendations(ctx context.Context, sess *session.Session) ([]models.Recommendation, error) {
	me, err := sess.Handle()
	if err != nil {
		return nil, err
	}
	return s.repo.Recommendations(ctx, me, RecommendationLimit)
}

// Search does not require a session.
func (s *SocialService) Search(ctx context.Context, term string) ([]models.SearchHit, error) {
	return s.repo.Search(ctx, term, SearchLimit)
}

// PopularUsers ranks by live follower count. It does not require a session.
func (s *SocialService) PopularUsers(ctx context.Context) ([]models.PopularUser, error) {
	return s.repo.Popular(ctx, PopularLimit)
}

func normalizeUpdate(upd models.ProfileUpdate) models.ProfileUpdate {
	if upd.Name != nil && *upd.Name == "" {
		upd.Name = nil
	}
	if upd.Bio != nil && *upd.Bio == "" {
		upd.Bio = nil
	}
	return upd
}
