package valueobjects

// Session is the explicit signed-in identity passed into every operation
// that needs the caller. The zero value means guest. Replaces the ambient
// global session of the original client.
type Session struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	AccessToken string `json:"-"`
}

// IsGuest reports whether no user is signed in.
func (s Session) IsGuest() bool {
	return s.UserID == ""
}
