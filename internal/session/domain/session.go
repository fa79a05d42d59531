package domain

import "context"

// User represents the storefront account attached to a session.
// The record is owned by the remote API; this layer only holds the copy
// handed over at login.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	Role    string `json:"role,omitempty"`
}

// UserPatch carries the fields of a partial profile update.
// Nil fields are left untouched.
type UserPatch struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Avatar  *string `json:"avatar,omitempty"`
}

// Session is the authenticated state for one browser session.
// IsAuthenticated always equals "token is non-empty"; the two fields are
// never allowed to disagree.
type Session struct {
	User            *User  `json:"user"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

// Anonymous returns the pre-login session state
func Anonymous() Session {
	return Session{}
}

// Login sets user and token together. Both are required; a half
// authenticated state (token without user or the reverse) is never stored.
func Login(s Session, user User, token string) Session {
	if token == "" {
		return s
	}
	u := user
	return Session{
		User:            &u,
		Token:           token,
		IsAuthenticated: true,
	}
}

// Logout clears user and token. The external session teardown runs before
// this reducer is applied, while the session context is still available.
func Logout(s Session) Session {
	return Anonymous()
}

// UpdateUser merges a partial update into the session's user record.
// Without a logged-in user it is a no-op: a partial update never creates
// a user.
func UpdateUser(s Session, patch UserPatch) Session {
	if s.User == nil {
		return s
	}

	u := *s.User
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}

	s.User = &u
	return s
}

// Resetter tears down any live messaging session tied to a storefront
// session and forgets its anonymous chat identifier. Invoked exactly once
// per logout, before the session state is cleared.
type Resetter interface {
	Reset(ctx context.Context, sessionID string, user *User) error
}
