// Package services holds the GophSocial business logic on top of the users
// repository: AccountService registers and authenticates users, and
// SocialService implements the profile and follow-graph operations.
//
// Identity-scoped calls take an explicit *session.Session. The services keep
// no current user of their own and read authoritative data from the
// repository on every call.
package services
