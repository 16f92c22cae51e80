package domain

// UserProfile is the public profile of a Bangumi user
type UserProfile struct {
	ID       int
	Username string
	Nickname string
	Avatar   Avatar
}

// Avatar holds the avatar image URIs for a user
type Avatar struct {
	Large  string
	Medium string
	Small  string
}

// DisplayName returns the nickname if set, else the username
func (u UserProfile) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}
