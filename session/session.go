package session

import (
	"time"

	"github.com/jrsteele09/ular-tangga-admin/users"
)

// Session is a point-in-time copy of the store's state
type Session struct {
	Token   string         `json:"token,omitempty"`
	User    *users.Profile `json:"user,omitempty"`
	Loading bool           `json:"loading"`

	// ExpiresAt is read from the token's exp claim when the token is a JWT.
	// Zero for opaque tokens.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// IsAuthenticated is true iff both a token and a user are held
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// Result is returned by Login and Register. On failure Error holds a
// message fit to show the user.
type Result struct {
	Success bool           `json:"success" yaml:"success"`
	User    *users.Profile `json:"user,omitempty" yaml:"user,omitempty"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
}
