package domain

// StoryID is the canonical identifier of a story.
//
// The remote API emits story ids inconsistently: some endpoints return
// JSON numbers, others strings. Every id is normalized to this string
// form at the service boundary before it enters the domain, so equality
// here is plain comparison.
type StoryID string

// Story represents one submitted link.
//
// It is the runtime truth shared by the feed and the session; all wire
// shapes are mapped into it at the api layer.
type Story struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is server-assigned and stable. Unique within any fetched
	// collection.
	ID StoryID

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Author is the free-text display name captured at creation time.
	// It is a label only and carries no authority.
	Author string

	Title string
	URL   string

	// ─────────────────────────────
	// Ownership
	// ─────────────────────────────

	// Username is the account that created the story. Ownership checks
	// compare this field against the session username, never Author.
	Username string
}

// FindStory returns the index of the story with the given id, or -1.
func FindStory(stories []Story, id StoryID) int {
	for i, s := range stories {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// RemoveStory returns stories without the entry matching id. Order is
// preserved. The input slice is not modified.
func RemoveStory(stories []Story, id StoryID) []Story {
	out := make([]Story, 0, len(stories))
	for _, s := range stories {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
