// Package session holds the identity of the signed-in user. A Session is
// an explicit value handed to every identity-scoped service call; nothing in
// the services keeps a current user of its own.
package session

import (
	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/models"
)

// Session is a single slot: zero or one authenticated handle. The profile
// is a display cache only; services always read authoritative data from the
// store. A nil *Session behaves as signed out.
type Session struct {
	handle  string
	profile *models.Profile
}

func New() *Session {
	return &Session{}
}

// SignIn installs handle as the current identity, replacing any previous one.
func (s *Session) SignIn(handle string, p models.Profile) {
	s.handle = handle
	s.profile = &p
}

// SignOut clears the slot.
func (s *Session) SignOut() {
	s.handle = ""
	s.profile = nil
}

func (s *Session) SignedIn() bool {
	return s != nil && s.handle != ""
}

// Handle returns the current handle or common.ErrUnauthenticated.
func (s *Session) Handle() (string, error) {
	if !s.SignedIn() {
		return "", common.ErrUnauthenticated
	}
	return s.handle, nil
}

// Profile returns the cached profile of the signed-in user.
func (s *Session) Profile() (models.Profile, bool) {
	if !s.SignedIn() || s.profile == nil {
		return models.Profile{}, false
	}
	return *s.profile, true
}

// Refresh replaces the cached profile. It is ignored when p belongs to
// someone else or nobody is signed in.
func (s *Session) Refresh(p models.Profile) {
	if !s.SignedIn() || p.Handle != s.handle {
		return
	}
	s.profile = &p
}
