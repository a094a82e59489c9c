package stubserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// wire shapes, mirroring the hosted API

type storyJSON struct {
	StoryID  string `json:"storyId"`
	Author   string `json:"author"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

type userJSON struct {
	Username  string      `json:"username"`
	Name      string      `json:"name"`
	Favorites []storyJSON `json:"favorites"`
	Stories   []storyJSON `json:"stories"`
}

func storyToJSON(s *storyRecord) storyJSON {
	return storyJSON{StoryID: s.ID, Author: s.Author, Title: s.Title, URL: s.URL, Username: s.Username}
}

// userToJSON builds the profile view: favorites expanded to story
// objects in insertion order, own stories in feed order.
func (s *State) userToJSON(u *userRecord) userJSON {
	favorites := make([]storyJSON, 0, len(u.Favorites))
	for _, id := range u.Favorites {
		if _, story := s.findStory(id); story != nil {
			favorites = append(favorites, storyToJSON(story))
		}
	}
	own := make([]storyJSON, 0)
	for _, story := range s.stories {
		if story.Username == u.Username {
			own = append(own, storyToJSON(story))
		}
	}
	return userJSON{Username: u.Username, Name: u.Name, Favorites: favorites, Stories: own}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"title":   http.StatusText(status),
			"message": message,
		},
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

// handlers; each locks the state for its whole body

func (s *State) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		User struct {
			Name     string `json:"name"`
			Username string `json:"username"`
			Password string `json:"password"`
			Phone    string `json:"phone"`
		} `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[body.User.Username]; exists {
		writeError(w, http.StatusConflict, "username already taken")
		return
	}

	user := &userRecord{
		Username: body.User.Username,
		Name:     body.User.Name,
		Password: body.User.Password,
		Phone:    body.User.Phone,
	}
	s.users[user.Username] = user
	token := s.issueToken(user.Username)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  s.userToJSON(user),
	})
}

func (s *State) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		User struct {
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[body.User.Username]
	if !ok || user.Password != body.User.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": s.issueToken(user.Username)})
}

func (s *State) handleListStories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.stories
	if len(page) > FrontPageSize {
		page = page[:FrontPageSize]
	}
	stories := make([]storyJSON, 0, len(page))
	for _, story := range page {
		stories = append(stories, storyToJSON(story))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stories": stories})
}

func (s *State) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Story struct {
			Author string `json:"author"`
			Title  string `json:"title"`
			URL    string `json:"url"`
		} `json:"story"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByToken(bearerToken(r))
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	story := s.addStory(body.Story.Author, body.Story.Title, body.Story.URL, user.Username)
	writeJSON(w, http.StatusCreated, map[string]interface{}{"story": storyToJSON(story)})
}

func (s *State) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "storyID")

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByToken(bearerToken(r))
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if _, story := s.findStory(id); story != nil && story.Username != user.Username {
		writeError(w, http.StatusForbidden, "not your story")
		return
	}
	if !s.removeStory(id) {
		writeError(w, http.StatusNotFound, "no such story")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "story deleted"})
}

func (s *State) handleUpdateStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "storyID")

	var body struct {
		Story struct {
			Author string `json:"author"`
			Title  string `json:"title"`
			URL    string `json:"url"`
		} `json:"story"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByToken(bearerToken(r))
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	_, story := s.findStory(id)
	if story == nil {
		writeError(w, http.StatusNotFound, "no such story")
		return
	}
	if story.Username != user.Username {
		writeError(w, http.StatusForbidden, "not your story")
		return
	}

	story.Author = body.Story.Author
	story.Title = body.Story.Title
	story.URL = body.Story.URL
	writeJSON(w, http.StatusOK, map[string]interface{}{"story": storyToJSON(story)})
}

func (s *State) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByToken(bearerToken(r))
	if user == nil || user.Username != username {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": s.userToJSON(user)})
}

func (s *State) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var body struct {
		User struct {
			Name     string `json:"name"`
			Password string `json:"password"`
		} `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByToken(bearerToken(r))
	if user == nil || user.Username != username {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	if body.User.Name != "" {
		user.Name = body.User.Name
	}
	if body.User.Password != "" {
		user.Password = body.User.Password
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": s.userToJSON(user)})
}

func (s *State) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByToken(bearerToken(r))
	if user == nil || user.Username != username {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	delete(s.users, username)
	for token, name := range s.tokens {
		if name == username {
			delete(s.tokens, token)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

func (s *State) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	id := chi.URLParam(r, "storyID")

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByToken(bearerToken(r))
	if user == nil || user.Username != username {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if _, story := s.findStory(id); story == nil {
		writeError(w, http.StatusNotFound, "no such story")
		return
	}
	// Not idempotent, like the hosted API: a duplicate add is an error.
	if containsID(user.Favorites, id) {
		writeError(w, http.StatusConflict, "already a favorite")
		return
	}

	user.Favorites = append(user.Favorites, id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": s.userToJSON(user)})
}

func (s *State) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	id := chi.URLParam(r, "storyID")

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByToken(bearerToken(r))
	if user == nil || user.Username != username {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if !containsID(user.Favorites, id) {
		writeError(w, http.StatusConflict, "not a favorite")
		return
	}

	user.Favorites = removeID(user.Favorites, id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": s.userToJSON(user)})
}

func (s *State) handleSendRecoveryCode(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; !ok {
		writeError(w, http.StatusNotFound, "no such user")
		return
	}
	// A real deployment sends the code out of band.
	s.codes[username] = RecoveryCode
	writeJSON(w, http.StatusOK, map[string]string{"message": "recovery code sent"})
}

func (s *State) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var body struct {
		User struct {
			Code     string `json:"code"`
			Password string `json:"password"`
		} `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		writeError(w, http.StatusNotFound, "no such user")
		return
	}
	code, pending := s.codes[username]
	if !pending || code != body.User.Code {
		writeError(w, http.StatusUnauthorized, "invalid recovery code")
		return
	}

	user.Password = body.User.Password
	delete(s.codes, username)
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
