package stubserver

import (
	"sync"

	"github.com/google/uuid"
)

// RecoveryCode is the fixed code "delivered" by the stub's recovery
// endpoint. A real deployment sends it out of band.
const RecoveryCode = "123456"

// FrontPageSize matches the hosted API's fixed story page size.
const FrontPageSize = 25

type userRecord struct {
	Username  string
	Name      string
	Password  string
	Phone     string
	Favorites []string // story ids, insertion order
}

type storyRecord struct {
	ID       string
	Author   string
	Title    string
	URL      string
	Username string
}

// State is the in-memory backing store. One mutex guards everything;
// the stub trades concurrency for obvious correctness.
type State struct {
	mu      sync.Mutex
	users   map[string]*userRecord
	tokens  map[string]string // token -> username
	stories []*storyRecord    // newest first
	codes   map[string]string // username -> pending recovery code
}

// NewState creates an empty State.
func NewState() *State {
	return &State{
		users:  make(map[string]*userRecord),
		tokens: make(map[string]string),
		codes:  make(map[string]string),
	}
}

func (s *State) issueToken(username string) string {
	token := uuid.NewString()
	s.tokens[token] = username
	return token
}

// userByToken resolves a bearer token to its user, or nil.
func (s *State) userByToken(token string) *userRecord {
	username, ok := s.tokens[token]
	if !ok {
		return nil
	}
	return s.users[username]
}

func (s *State) addStory(author, title, url, username string) *storyRecord {
	story := &storyRecord{
		ID:       uuid.NewString(),
		Author:   author,
		Title:    title,
		URL:      url,
		Username: username,
	}
	// Newest first, like the hosted feed.
	s.stories = append([]*storyRecord{story}, s.stories...)
	return story
}

func (s *State) findStory(id string) (int, *storyRecord) {
	for i, story := range s.stories {
		if story.ID == id {
			return i, story
		}
	}
	return -1, nil
}

func (s *State) removeStory(id string) bool {
	i, _ := s.findStory(id)
	if i == -1 {
		return false
	}
	s.stories = append(s.stories[:i], s.stories[i+1:]...)
	// Drop it from every favorites list too.
	for _, u := range s.users {
		u.Favorites = removeID(u.Favorites, id)
	}
	return true
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
