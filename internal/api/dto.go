package api

import (
	"encoding/json"
	"fmt"

	"github.com/hacksnooze/snooze/internal/domain"
)

// flexID decodes a story id that the API emits either as a JSON number
// or as a string, normalizing to the canonical string form. Strict
// comparison of un-normalized ids is a known source of silent lookup
// failures with this API.
type flexID domain.StoryID

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexID(n.String())
		return nil
	}

	return fmt.Errorf("story id is neither string nor number: %s", data)
}

type storyDTO struct {
	StoryID  flexID `json:"storyId"`
	Author   string `json:"author"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

func (d storyDTO) toDomain() domain.Story {
	return domain.Story{
		ID:       domain.StoryID(d.StoryID),
		Author:   d.Author,
		Title:    d.Title,
		URL:      d.URL,
		Username: d.Username,
	}
}

func storiesToDomain(dtos []storyDTO) []domain.Story {
	stories := make([]domain.Story, 0, len(dtos))
	for _, d := range dtos {
		stories = append(stories, d.toDomain())
	}
	return stories
}

type userDTO struct {
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Favorites []storyDTO `json:"favorites"`
	Stories   []storyDTO `json:"stories"`
}

func (d userDTO) toProfile() domain.Profile {
	return domain.Profile{
		Name:       d.Name,
		Favorites:  storiesToDomain(d.Favorites),
		OwnStories: storiesToDomain(d.Stories),
	}
}

// request envelopes; the API wraps payloads under "user" / "story" keys

type userEnvelope struct {
	User interface{} `json:"user"`
}

type storyEnvelope struct {
	Story NewStory `json:"story"`
}

type signupBody struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type profileBody struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

type recoveryBody struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

// response shapes

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userResponse struct {
	User userDTO `json:"user"`
}

type storiesResponse struct {
	Stories []storyDTO `json:"stories"`
}

type messageResponse struct {
	Message string `json:"message"`
}
