package models

import "time"

// Token is an issued or verified session token. The signed form travels in
// the Authorization header; the other fields are the claims it carries.
type Token struct {
	UserID    string
	Role      Role
	ExpiresAt time.Time

	SignedString string
}

func (t Token) String() string {
	return t.SignedString
}

// IsAdmin reports whether the token grants access to the admin routes.
func (t Token) IsAdmin() bool {
	return t.Role == RoleAdmin
}

// BearerHeader is the value of the Authorization response header.
func (t Token) BearerHeader() string {
	return "Bearer " + t.SignedString
}
