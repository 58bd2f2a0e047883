// Package models holds the typed records exchanged between the social graph
// repositories, services and the CLI.
package models

import "time"

type CredentialKind int

const (
	// CredentialHashed carries a bcrypt hash.
	CredentialHashed CredentialKind = iota
	// CredentialLegacy marks accounts imported without a password. They can
	// only sign in when the legacy compatibility mode is enabled.
	CredentialLegacy
)

func (k CredentialKind) String() string {
	if k == CredentialLegacy {
		return "legacy"
	}
	return "hashed"
}

// Credential is the stored password state of a user.
type Credential struct {
	Kind CredentialKind
	Hash []byte
}

func HashedCredential(hash []byte) Credential {
	return Credential{Kind: CredentialHashed, Hash: hash}
}

func LegacyCredential() Credential {
	return Credential{Kind: CredentialLegacy}
}

// User is a stored account, credential included. It never leaves the
// service layer; see Profile for the displayable view.
type User struct {
	ID             string
	Name           string
	Email          string
	Handle         string
	Credential     Credential
	Bio            string
	FollowersCount int64
	FollowingCount int64
	CreatedAt      time.Time
}

// Profile is User without the credential.
type Profile struct {
	Name           string
	Email          string
	Handle         string
	Bio            string
	FollowersCount int64
	FollowingCount int64
}

func (u *User) Profile() Profile {
	return Profile{
		Name:           u.Name,
		Email:          u.Email,
		Handle:         u.Handle,
		Bio:            u.Bio,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
	}
}

// ProfileUpdate lists the fields to change; nil means keep.
type ProfileUpdate struct {
	Name *string
	Bio  *string
}

func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Bio == nil
}
