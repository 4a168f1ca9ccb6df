package domain

// Role is the account type of an authenticated user.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// AuthUser is the user record persisted next to the session token.
type AuthUser struct {
	ID     ID     `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   Role   `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// DisplayName returns the name to show in the navbar.
func (u AuthUser) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	default:
		return "Account"
	}
}

// Session is the token + user pair identifying the current actor.
// Token and User are both set or both empty; anything else reads as signed out.
type Session struct {
	Token string    `json:"token"`
	User  *AuthUser `json:"user"`
}

// Authenticated reports whether both halves of the session are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Role returns the user role, or "" when signed out.
func (s Session) Role() Role {
	if !s.Authenticated() {
		return ""
	}
	return s.User.Role
}

// Equal compares two sessions by token and user fields.
func (s Session) Equal(o Session) bool {
	if s.Token != o.Token {
		return false
	}
	if s.User == nil || o.User == nil {
		return s.User == nil && o.User == nil
	}
	return *s.User == *o.User
}

// DashboardPath is where a user lands after signing in.
func (r Role) DashboardPath() string {
	if r == RoleEmployer {
		return "/employer"
	}
	return "/candidate"
}
