// Package controller implements the command layer between user intent
// and the remote API. Every command resolves to a Result: errors are
// caught at the command boundary and converted to a user-visible
// alert, and mutating commands finish with an awaited profile resync
// before the result's snapshot is built.
package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hacksnooze/snooze/internal/api"
	"github.com/hacksnooze/snooze/internal/domain"
	"github.com/hacksnooze/snooze/internal/logger"
	"github.com/hacksnooze/snooze/internal/session"
)

// Controller owns the feed state and composes the session manager with
// the two remote services. It is not safe for concurrent use; commands
// are expected to run serialized on a single logical timeline, each
// awaited before the next starts.
type Controller struct {
	sessions *session.Manager
	stories  *api.StoryService
	users    *api.UserService
	log      logger.Logger

	feed domain.Feed
}

// New builds a Controller starting logged out, viewing all stories.
func New(client *api.Client, sessions *session.Manager, log logger.Logger) *Controller {
	return &Controller{
		sessions: sessions,
		stories:  client.Stories(),
		users:    client.Users(),
		log:      log,
		feed:     domain.Feed{Mode: domain.ViewAll},
	}
}

// Startup restores any stored session and fetches the front page.
func (c *Controller) Startup(ctx context.Context) Result {
	restored, err := c.sessions.Restore(ctx)
	if err != nil {
		c.log.Warn("session restore failed", logger.Error(err))
	}

	if err := c.refreshFeed(ctx); err != nil {
		return c.fail(err, "could not load stories")
	}
	if restored {
		return c.ok(fmt.Sprintf("welcome back, %s", c.sessions.Current().Name))
	}
	return c.ok("")
}

// Login authenticates, resyncs the profile and refreshes the feed, in
// that order, each step awaited. On any failure the client stays
// logged out.
func (c *Controller) Login(ctx context.Context, username, password string) Result {
	token, err := c.users.Login(ctx, username, password)
	if err != nil {
		return c.fail(err, "login failed")
	}

	if err := c.sessions.Begin(ctx, token, username); err != nil {
		return c.fail(err, "login failed")
	}
	if err := c.sessions.Resync(ctx); err != nil {
		_ = c.sessions.End(ctx)
		return c.fail(err, "login failed")
	}
	if err := c.refreshFeed(ctx); err != nil {
		return c.fail(err, "logged in, but could not load stories")
	}
	return c.ok(fmt.Sprintf("logged in as %s", c.sessions.Current().Name))
}

// Signup creates an account and then follows the same post-steps as
// login.
func (c *Controller) Signup(ctx context.Context, s api.Signup) Result {
	created, err := c.users.Create(ctx, s)
	if err != nil {
		return c.fail(err, "signup failed")
	}

	if err := c.sessions.Begin(ctx, created.Token, created.Username); err != nil {
		return c.fail(err, "signup failed")
	}
	if err := c.sessions.Resync(ctx); err != nil {
		_ = c.sessions.End(ctx)
		return c.fail(err, "signup failed")
	}
	if err := c.refreshFeed(ctx); err != nil {
		return c.fail(err, "signed up, but could not load stories")
	}
	return c.ok(fmt.Sprintf("account created, logged in as %s", c.sessions.Current().Name))
}

// Logout clears the session and durable credentials. No server call.
// The view falls back to all stories; favorites need a session.
func (c *Controller) Logout(ctx context.Context) Result {
	if err := c.sessions.End(ctx); err != nil {
		c.log.Warn("failed to clear stored credentials", logger.Error(err))
	}
	c.feed.Mode = domain.ViewAll

	if err := c.refreshFeed(ctx); err != nil {
		return c.fail(err, "logged out, but could not reload stories")
	}
	return c.ok("logged out")
}

// ToggleFavorite adds or removes a favorite depending on current
// membership. The server call is not idempotent, so the branch below
// is what keeps a double toggle from double-applying.
func (c *Controller) ToggleFavorite(ctx context.Context, id domain.StoryID) Result {
	sess := c.sessions.Current()
	if !sess.LoggedIn() {
		return c.alert("log in to manage favorites")
	}

	var err error
	var msg string
	if sess.IsFavorite(id) {
		err = c.users.RemoveFavorite(ctx, sess.Token, sess.Username, id)
		msg = "removed from favorites"
	} else {
		err = c.users.AddFavorite(ctx, sess.Token, sess.Username, id)
		msg = "added to favorites"
	}
	if err != nil {
		return c.fail(err, "could not update favorites")
	}

	if err := c.sessions.ResyncAfterMutation(ctx); err != nil {
		return c.fail(err, "favorite saved, but refresh failed")
	}
	return c.ok(msg)
}

// CreateStory submits a new story authored under the session's display
// name, then resyncs and, when viewing all stories, refreshes the feed
// so the new entry can appear.
func (c *Controller) CreateStory(ctx context.Context, title, url string) Result {
	sess := c.sessions.Current()
	if !sess.LoggedIn() {
		return c.alert("log in to submit stories")
	}

	story := api.NewStory{Author: sess.Name, Title: title, URL: url}
	if err := c.stories.Create(ctx, sess.Token, story); err != nil {
		return c.fail(err, "could not submit story")
	}

	if err := c.sessions.ResyncAfterMutation(ctx); err != nil {
		return c.fail(err, "story submitted, but refresh failed")
	}
	if c.feed.Mode == domain.ViewAll {
		if err := c.refreshFeed(ctx); err != nil {
			return c.fail(err, "story submitted, but refresh failed")
		}
	}
	return c.ok("story submitted")
}

// DeleteStory removes an owned story. The affordance is refused for
// stories the session does not own regardless of the author label. A
// delete of an id the server already dropped counts as success.
func (c *Controller) DeleteStory(ctx context.Context, id domain.StoryID) Result {
	sess := c.sessions.Current()
	if !sess.LoggedIn() {
		return c.alert("log in to delete stories")
	}
	if !sess.Owns(id) {
		return c.alert("you can only delete your own stories")
	}

	if err := c.stories.Delete(ctx, sess.Token, id); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			c.log.Debug("story already gone on delete", logger.String("story_id", string(id)))
		} else {
			return c.fail(err, "could not delete story")
		}
	}

	c.feed.Stories = domain.RemoveStory(c.feed.Stories, id)

	if err := c.sessions.ResyncAfterMutation(ctx); err != nil {
		return c.fail(err, "story deleted, but refresh failed")
	}
	return c.ok("story deleted")
}

// EditStory patches an owned story, then resyncs and re-renders.
func (c *Controller) EditStory(ctx context.Context, id domain.StoryID, title, url string) Result {
	sess := c.sessions.Current()
	if !sess.LoggedIn() {
		return c.alert("log in to edit stories")
	}
	if !sess.Owns(id) {
		return c.alert("you can only edit your own stories")
	}

	story := api.NewStory{Author: sess.Name, Title: title, URL: url}
	if err := c.stories.Update(ctx, sess.Token, id, story); err != nil {
		return c.fail(err, "could not update story")
	}

	if err := c.sessions.ResyncAfterMutation(ctx); err != nil {
		return c.fail(err, "story updated, but refresh failed")
	}
	if c.feed.Mode == domain.ViewAll {
		if err := c.refreshFeed(ctx); err != nil {
			return c.fail(err, "story updated, but refresh failed")
		}
	}
	return c.ok("story updated")
}

// ToggleView flips between the front page and favorites. Pure local
// state; favorites render from the last-fetched profile.
func (c *Controller) ToggleView(_ context.Context) Result {
	if !c.sessions.Current().LoggedIn() {
		return c.alert("log in to view favorites")
	}
	c.feed.Mode = c.feed.Mode.Toggle()
	return c.ok("")
}

// UpdateProfile patches the display name and optionally the password.
// The name shown afterwards is the submitted value, matching the
// existing product behavior (see DESIGN.md).
func (c *Controller) UpdateProfile(ctx context.Context, name, password string) Result {
	sess := c.sessions.Current()
	if !sess.LoggedIn() {
		return c.alert("log in to update your profile")
	}

	update := api.ProfileUpdate{Name: name, Password: password}
	if err := c.users.UpdateProfile(ctx, sess.Token, sess.Username, update); err != nil {
		return c.fail(err, "could not update profile")
	}

	if err := c.sessions.ResyncAfterMutation(ctx); err != nil {
		return c.fail(err, "profile updated, but refresh failed")
	}
	c.sessions.Current().Name = name
	return c.ok("profile updated")
}

// DeleteAccount removes the account and then behaves as logout.
func (c *Controller) DeleteAccount(ctx context.Context) Result {
	sess := c.sessions.Current()
	if !sess.LoggedIn() {
		return c.alert("not logged in")
	}

	if err := c.users.DeleteAccount(ctx, sess.Token, sess.Username); err != nil {
		return c.fail(err, "could not delete account")
	}
	return c.Logout(ctx)
}

// RequestRecoveryCode starts the password recovery flow and stashes
// the username for the second step.
func (c *Controller) RequestRecoveryCode(ctx context.Context, username string) Result {
	if err := c.users.SendRecoveryCode(ctx, username); err != nil {
		return c.fail(err, "could not request a recovery code")
	}
	if err := c.sessions.StashRecoveryUsername(ctx, username); err != nil {
		c.log.Warn("failed to stash recovery username", logger.Error(err))
	}
	return c.ok("recovery code sent")
}

// SubmitRecoveryCode redeems the code for a new password and performs
// an implicit login with it. username may be empty, in which case the
// stashed recovery username is used.
func (c *Controller) SubmitRecoveryCode(ctx context.Context, code, username, newPassword string) Result {
	if username == "" {
		stashed, err := c.sessions.RecoveryUsername(ctx)
		if err != nil || stashed == "" {
			return c.alert("no recovery in progress; request a code first")
		}
		username = stashed
	}

	msg, err := c.users.ResetPassword(ctx, code, username, newPassword)
	if err != nil {
		return c.fail(err, "password reset failed")
	}
	if err := c.sessions.ClearRecoveryUsername(ctx); err != nil {
		c.log.Warn("failed to clear recovery username", logger.Error(err))
	}

	result := c.Login(ctx, username, newPassword)
	if result.Err != nil {
		return result
	}
	if msg != "" {
		result.Message = msg + "; " + result.Message
	}
	return result
}

// Refresh re-fetches the front page and, when logged in, the profile.
func (c *Controller) Refresh(ctx context.Context) Result {
	if c.sessions.Current().LoggedIn() {
		if err := c.sessions.Resync(ctx); err != nil {
			return c.fail(err, "could not refresh profile")
		}
	}
	if err := c.refreshFeed(ctx); err != nil {
		return c.fail(err, "could not refresh stories")
	}
	return c.ok("")
}

// refreshFeed replaces the front page wholesale.
func (c *Controller) refreshFeed(ctx context.Context) error {
	stories, err := c.stories.List(ctx)
	if err != nil {
		return err
	}
	c.feed.Stories = stories
	return nil
}
