package domain

// User is the authenticated user's profile as reported by GET /auth/me.
// It is immutable for the lifetime of a session and replaced wholesale
// on re-login.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"full_name"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Department string `json:"department"`
	IsManager  bool   `json:"is_manager"`
	IsHR       bool   `json:"is_hr"`
}

// DisplayName returns the friendliest non-empty identifier available.
func (u *User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}
