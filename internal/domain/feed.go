package domain

// ViewMode selects which collection the feed displays.
type ViewMode string

const (
	ViewAll       ViewMode = "all"
	ViewFavorites ViewMode = "favorites"
)

// Toggle returns the other view mode.
func (m ViewMode) Toggle() ViewMode {
	if m == ViewFavorites {
		return ViewAll
	}
	return ViewFavorites
}

// Feed holds the most recently fetched front page and the current view
// mode. Stories is replaced wholesale on every refresh; it is never
// merged or diffed.
type Feed struct {
	// Stories is the server-ordered front page, newest first, capped at
	// the server's page size. Not the full corpus.
	Stories []Story

	// Mode selects between the front page and the session's favorites.
	// Favorites only renders meaningfully while logged in.
	Mode ViewMode
}

// Visible returns the collection the feed currently displays. In
// favorites mode that is the session's last-fetched favorites, not the
// front page.
func (f *Feed) Visible(s *Session) []Story {
	if f.Mode == ViewFavorites {
		return s.Favorites
	}
	return f.Stories
}

// StoryFlags are the per-story render decisions derived from the
// session. The renderer consumes these; it never inspects the session
// itself.
type StoryFlags struct {
	// Owned permits the delete and edit affordances.
	Owned bool

	// Favorited selects the solid star.
	Favorited bool

	// Starrable hides the favorite affordance entirely when logged out.
	Starrable bool
}

// FeedItem pairs a story with its render flags.
type FeedItem struct {
	Story Story
	Flags StoryFlags
}

// Items computes the renderable feed for the current view mode.
func (f *Feed) Items(s *Session) []FeedItem {
	visible := f.Visible(s)
	items := make([]FeedItem, 0, len(visible))
	for _, story := range visible {
		items = append(items, FeedItem{
			Story: story,
			Flags: StoryFlags{
				Owned:     s.Owns(story.ID),
				Favorited: s.IsFavorite(story.ID),
				Starrable: s.LoggedIn(),
			},
		})
	}
	return items
}
