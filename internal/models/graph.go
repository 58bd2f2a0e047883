package models

// Connections are the one-hop neighbourhoods of a user.
type Connections struct {
	Followers []string
	Following []string
}

// Recommendation is a two-hop candidate and the number of the caller's
// followees who follow it.
type Recommendation struct {
	Handle      string
	CommonCount int64
}

// SearchHit is a search result using the cached follower counter.
type SearchHit struct {
	Handle         string
	Name           string
	FollowersCount int64
}

// PopularUser carries a follower count computed from live edges.
type PopularUser struct {
	Handle        string
	Name          string
	LiveFollowers int64
}

// FollowCounts are the counters of both ends of an edge after a mutation.
type FollowCounts struct {
	FollowerFollowing int64
	FolloweeFollowers int64
}
