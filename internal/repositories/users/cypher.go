package users

import "github.com/dmitrijs2005/gophsocial/internal/graphdb"

const userFields = `u.uid AS uid, u.name AS name, u.email AS email, u.screen_name AS handle,
       u.password AS password, coalesce(u.bio, '') AS bio,
       coalesce(u.followers_count, 0) AS followers_count,
       coalesce(u.friends_count, 0) AS following_count,
       u.created_at AS created_at`

var (
	qUserTaken = graphdb.Query{Name: "user_taken", Mode: graphdb.Read, Cypher: `
OPTIONAL MATCH (h:User {screen_name: $handle})
OPTIONAL MATCH (e:User {email: $email})
RETURN h IS NOT NULL AS handle_taken, e IS NOT NULL AS email_taken
LIMIT 1`}

	qCreateUser = graphdb.Query{Name: "create_user", Mode: graphdb.Write, Cypher: `
CREATE (u:User {
  uid: $uid,
  name: $name,
  screen_name: $handle,
  email: $email,
  password: $password,
  bio: "",
  followers_count: 0,
  friends_count: 0,
  created_at: $created_at
})
RETURN ` + userFields}

	qFindUser = graphdb.Query{Name: "find_user", Mode: graphdb.Read, Cypher: `
MATCH (u:User {screen_name: $handle})
RETURN ` + userFields}

	qUpdateProfile = graphdb.Query{Name: "update_profile", Mode: graphdb.Write, Cypher: `
MATCH (u:User {screen_name: $handle})
SET u.name = coalesce($name, u.name),
    u.bio = coalesce($bio, u.bio)
RETURN ` + userFields}

	qIsFollowing = graphdb.Query{Name: "is_following", Mode: graphdb.Read, Cypher: `
OPTIONAL MATCH (:User {screen_name: $follower})-[r:FOLLOWS]->(:User {screen_name: $followee})
RETURN count(r) > 0 AS following`}

	qFollow = graphdb.Query{Name: "follow", Mode: graphdb.Write, Cypher: `
MATCH (a:User {screen_name: $follower}), (b:User {screen_name: $followee})
WHERE a <> b AND NOT (a)-[:FOLLOWS]->(b)
CREATE (a)-[:FOLLOWS {since: $since}]->(b)
SET a.friends_count = coalesce(a.friends_count, 0) + 1,
    b.followers_count = coalesce(b.followers_count, 0) + 1
RETURN a.friends_count AS following_count, b.followers_count AS followers_count`}

	qUnfollow = graphdb.Query{Name: "unfollow", Mode: graphdb.Write, Cypher: `
MATCH (a:User {screen_name: $follower})-[r:FOLLOWS]->(b:User {screen_name: $followee})
DELETE r
SET a.friends_count = CASE WHEN coalesce(a.friends_count, 0) > 0 THEN a.friends_count - 1 ELSE 0 END,
    b.followers_count = CASE WHEN coalesce(b.followers_count, 0) > 0 THEN b.followers_count - 1 ELSE 0 END
RETURN a.friends_count AS following_count, b.followers_count AS followers_count`}

	qFollowers = graphdb.Query{Name: "followers", Mode: graphdb.Read, Cypher: `
MATCH (f:User)-[:FOLLOWS]->(:User {screen_name: $handle})
RETURN f.screen_name AS handle
ORDER BY handle`}

	qFollowing = graphdb.Query{Name: "following", Mode: graphdb.Read, Cypher: `
MATCH (:User {screen_name: $handle})-[:FOLLOWS]->(f:User)
RETURN f.screen_name AS handle
ORDER BY handle`}

	qMutual = graphdb.Query{Name: "mutual", Mode: graphdb.Read, Cypher: `
MATCH (:User {screen_name: $a})-[:FOLLOWS]->(m:User)
WITH m
MATCH (:User {screen_name: $b})-[:FOLLOWS]->(m)
RETURN DISTINCT m.screen_name AS handle
ORDER BY handle`}

	qRecommendations = graphdb.Query{Name: "recommendations", Mode: graphdb.Read, Cypher: `
MATCH (me:User {screen_name: $handle})-[:FOLLOWS]->(f:User)-[:FOLLOWS]->(c:User)
WHERE c <> me AND NOT (me)-[:FOLLOWS]->(c)
RETURN c.screen_name AS handle, count(DISTINCT f) AS common
ORDER BY common DESC, handle ASC
LIMIT $limit`}

	qSearch = graphdb.Query{Name: "search", Mode: graphdb.Read, Cypher: `
MATCH (u:User)
WHERE u.name CONTAINS $term OR u.screen_name CONTAINS $term
RETURN u.screen_name AS handle, u.name AS name, coalesce(u.followers_count, 0) AS followers_count
ORDER BY followers_count DESC, handle ASC
LIMIT $limit`}

	qPopular = graphdb.Query{Name: "popular", Mode: graphdb.Read, Cypher: `
MATCH (f:User)-[:FOLLOWS]->(u:User)
WITH u, count(f) AS live
RETURN u.screen_name AS handle, u.name AS name, live
ORDER BY live DESC, handle ASC
LIMIT $limit`}
)
