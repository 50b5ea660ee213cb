package users

import "time"

// User is a signed-in formulator customer.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	PictureURL string    `json:"pictureUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Session mirrors what the wizard's auth gate consumes.
type Session struct {
	User    *User `json:"user"`
	Loading bool  `json:"loading"`
}

// SignedIn reports whether the session carries a user.
func (s Session) SignedIn() bool {
	return s.User != nil && s.User.ID != ""
}
