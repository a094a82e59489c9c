package api

import (
	"context"
	"net/http"

	"github.com/hacksnooze/snooze/internal/domain"
)

// Signup is the payload for account creation. Phone is optional and
// omitted from the request entirely when empty.
type Signup struct {
	Username string
	Password string
	Name     string
	Phone    string
}

// ProfileUpdate is the payload for a profile patch. A blank Password
// means "keep the current one" and is never transmitted.
type ProfileUpdate struct {
	Name     string
	Password string
}

// UserService issues account lifecycle requests. Stateless; tokens are
// supplied per call.
type UserService struct {
	c *Client
}

// Create signs up a new account and returns a populated session. The
// echoed profile starts with empty favorites and stories.
func (u *UserService) Create(ctx context.Context, s Signup) (domain.Session, error) {
	if s.Username == "" {
		return domain.Session{}, &ValidationError{Field: "username", Reason: "required"}
	}
	if s.Password == "" {
		return domain.Session{}, &ValidationError{Field: "password", Reason: "required"}
	}
	if s.Name == "" {
		return domain.Session{}, &ValidationError{Field: "name", Reason: "required"}
	}

	body := userEnvelope{User: signupBody{
		Name:     s.Name,
		Username: s.Username,
		Password: s.Password,
		Phone:    s.Phone,
	}}

	var resp authResponse
	if err := u.c.do(ctx, http.MethodPost, "/signup", "", body, &resp); err != nil {
		return domain.Session{}, err
	}

	profile := resp.User.toProfile()
	return domain.Session{
		Username:   resp.User.Username,
		Name:       profile.Name,
		Token:      resp.Token,
		Favorites:  profile.Favorites,
		OwnStories: profile.OwnStories,
	}, nil
}

// Login exchanges credentials for a bearer token. It does not populate
// favorites or stories; callers follow up with FetchProfile.
func (u *UserService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", &ValidationError{Field: "username", Reason: "required"}
	}
	if password == "" {
		return "", &ValidationError{Field: "password", Reason: "required"}
	}

	var resp authResponse
	body := userEnvelope{User: loginBody{Username: username, Password: password}}
	if err := u.c.do(ctx, http.MethodPost, "/login", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// FetchProfile retrieves the authoritative per-user state. This is the
// single resync point called after every mutating operation.
func (u *UserService) FetchProfile(ctx context.Context, token, username string) (domain.Profile, error) {
	var resp userResponse
	if err := u.c.do(ctx, http.MethodGet, "/users/"+username, token, nil, &resp); err != nil {
		return domain.Profile{}, err
	}
	return resp.User.toProfile(), nil
}

// UpdateProfile patches the display name and, when non-blank, the
// password.
func (u *UserService) UpdateProfile(ctx context.Context, token, username string, update ProfileUpdate) error {
	body := userEnvelope{User: profileBody{Name: update.Name, Password: update.Password}}
	return u.c.do(ctx, http.MethodPatch, "/users/"+username, token, body, nil)
}

// DeleteAccount removes the account.
func (u *UserService) DeleteAccount(ctx context.Context, token, username string) error {
	return u.c.do(ctx, http.MethodDelete, "/users/"+username, token, nil, nil)
}

// AddFavorite marks a story as a favorite. The server does not make
// this idempotent; callers must check membership first.
func (u *UserService) AddFavorite(ctx context.Context, token, username string, id domain.StoryID) error {
	return u.c.do(ctx, http.MethodPost, "/users/"+username+"/favorites/"+string(id), token, nil, nil)
}

// RemoveFavorite removes a story from the favorites. Same idempotency
// caveat as AddFavorite.
func (u *UserService) RemoveFavorite(ctx context.Context, token, username string, id domain.StoryID) error {
	return u.c.do(ctx, http.MethodDelete, "/users/"+username+"/favorites/"+string(id), token, nil, nil)
}

// SendRecoveryCode triggers out-of-band delivery of a reset code.
func (u *UserService) SendRecoveryCode(ctx context.Context, username string) error {
	if username == "" {
		return &ValidationError{Field: "username", Reason: "required"}
	}
	return u.c.do(ctx, http.MethodPost, "/users/"+username+"/recovery", "", nil, nil)
}

// ResetPassword redeems a recovery code for a new password. It does
// not return a token; callers log in afterwards for a fresh session.
func (u *UserService) ResetPassword(ctx context.Context, code, username, newPassword string) (string, error) {
	if code == "" {
		return "", &ValidationError{Field: "code", Reason: "required"}
	}
	if newPassword == "" {
		return "", &ValidationError{Field: "password", Reason: "required"}
	}

	var resp messageResponse
	body := userEnvelope{User: recoveryBody{Code: code, Password: newPassword}}
	if err := u.c.do(ctx, http.MethodPatch, "/users/"+username+"/recovery", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
