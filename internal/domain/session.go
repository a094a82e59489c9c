package domain

// Session is the locally cached representation of the authenticated
// identity and its server-confirmed profile.
//
// The zero value is the logged-out representation: no token, no display
// name, empty collections. The session is never patched incrementally;
// after every mutating operation it is replaced wholesale from a fresh
// profile fetch, which is the sole consistency mechanism with the
// remote source of truth.
type Session struct {
	// Username is the unique account name. May be set while Token is
	// still empty during a login attempt.
	Username string

	// Name is the display name confirmed by the server.
	Name string

	// Token is the opaque bearer credential. Empty means logged out.
	Token string

	// Favorites holds the user's favorited stories in server order.
	Favorites []Story

	// OwnStories holds the stories authored by this user.
	OwnStories []Story
}

// LoggedIn reports whether the session carries a credential.
func (s *Session) LoggedIn() bool {
	return s.Token != ""
}

// Owns reports whether the story with the given id was authored by
// this session's account.
func (s *Session) Owns(id StoryID) bool {
	if !s.LoggedIn() {
		return false
	}
	return FindStory(s.OwnStories, id) != -1
}

// IsFavorite reports whether the story with the given id is in the
// session's favorites.
func (s *Session) IsFavorite(id StoryID) bool {
	if !s.LoggedIn() {
		return false
	}
	return FindStory(s.Favorites, id) != -1
}

// Reset returns the session to the logged-out representation.
func (s *Session) Reset() {
	*s = Session{}
}

// ApplyProfile replaces the server-confirmed parts of the session with
// a freshly fetched profile. Token and Username are left untouched.
func (s *Session) ApplyProfile(p Profile) {
	s.Name = p.Name
	s.Favorites = p.Favorites
	s.OwnStories = p.OwnStories
}

// Profile is the authoritative per-user state returned by a profile
// fetch. It is applied to the session wholesale, never merged.
type Profile struct {
	Name       string
	Favorites  []Story
	OwnStories []Story
}
