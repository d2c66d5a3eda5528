package auth

// Principal is the authenticated identity attached to a request after the
// token subject has been re-resolved against the store.
type Principal struct {
	ID       string
	Role     string
	Email    string
	FullName string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}
