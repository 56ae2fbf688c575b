package session

// User is the authenticated-user projection, derived strictly from a
// successful validation response. It is zeroed whenever the token is
// cleared or replaced by an unvalidated write.
type User struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"name"`
}

// IsZero reports whether no user is loaded.
func (u User) IsZero() bool {
	return u == User{}
}
