package controller

import (
	"errors"
	"fmt"

	"github.com/hacksnooze/snooze/internal/api"
	"github.com/hacksnooze/snooze/internal/domain"
)

// Snapshot is the complete render input for one moment in time. The
// renderer is a pure function of this value; it never reaches back
// into controller or session state.
type Snapshot struct {
	LoggedIn bool
	Username string
	Name     string
	Mode     domain.ViewMode
	Items    []domain.FeedItem
}

// Result is what every command resolves to. Message and Alert are
// user-visible; Err carries the underlying error for programmatic
// callers. Snapshot is taken after all state settled, so rendering it
// is always consistent with the server as of the final resync.
type Result struct {
	Snapshot Snapshot
	Message  string
	Alert    string
	Err      error
}

// snapshot captures the current session and feed.
func (c *Controller) snapshot() Snapshot {
	sess := c.sessions.Current()
	return Snapshot{
		LoggedIn: sess.LoggedIn(),
		Username: sess.Username,
		Name:     sess.Name,
		Mode:     c.feed.Mode,
		Items:    c.feed.Items(sess),
	}
}

func (c *Controller) ok(message string) Result {
	return Result{Snapshot: c.snapshot(), Message: message}
}

// alert is a client-side refusal: no request was made, state is
// unchanged.
func (c *Controller) alert(text string) Result {
	return Result{Snapshot: c.snapshot(), Alert: text}
}

// fail converts an error into a user-visible alert. Commands that
// fail leave state unchanged except where the server already applied
// part of a multi-step operation.
func (c *Controller) fail(err error, context string) Result {
	return Result{Snapshot: c.snapshot(), Alert: alertText(err, context), Err: err}
}

func alertText(err error, context string) string {
	var vErr *api.ValidationError
	if errors.As(err, &vErr) {
		return fmt.Sprintf("%s: %s is %s", context, vErr.Field, vErr.Reason)
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Sprintf("%s: %s", context, apiErr.Message)
		}
		return fmt.Sprintf("%s (server returned %d)", context, apiErr.Status)
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return context + ": network problem, try again"
	}

	return context
}
