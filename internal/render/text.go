// Package render turns a controller snapshot into terminal output. It
// is a pure consumer: everything it needs arrives in the Result.
package render

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/hacksnooze/snooze/internal/controller"
	"github.com/hacksnooze/snooze/internal/domain"
)

// Text writes a plain-text rendering of command results.
type Text struct {
	w io.Writer
}

// NewText creates a renderer writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Render prints the result: alert or message first, then the feed.
func (t *Text) Render(res controller.Result) {
	if res.Alert != "" {
		fmt.Fprintf(t.w, "! %s\n", res.Alert)
	}
	if res.Message != "" {
		fmt.Fprintf(t.w, "%s\n", res.Message)
	}

	snap := res.Snapshot
	if snap.LoggedIn {
		fmt.Fprintf(t.w, "-- %s (@%s) | view: %s --\n", snap.Name, snap.Username, snap.Mode)
	} else {
		fmt.Fprintf(t.w, "-- not logged in | view: %s --\n", snap.Mode)
	}

	if len(snap.Items) == 0 {
		fmt.Fprintln(t.w, "(no stories)")
		return
	}

	for i, item := range snap.Items {
		fmt.Fprintf(t.w, "%2d. %s %s (%s)\n", i+1, star(item.Flags), item.Story.Title, Hostname(item.Story.URL))
		fmt.Fprintf(t.w, "      posted by %s%s  [%s]\n", item.Story.Author, ownedTag(item.Flags), item.Story.ID)
	}
}

func star(f domain.StoryFlags) string {
	switch {
	case !f.Starrable:
		return " "
	case f.Favorited:
		return "*"
	default:
		return "-"
	}
}

func ownedTag(f domain.StoryFlags) string {
	if f.Owned {
		return " (yours: delete/edit available)"
	}
	return ""
}

// Hostname extracts the display host of a story URL, keeping only the
// last two labels ("news.ycombinator.com" -> "ycombinator.com").
// Unparsable URLs are shown as-is.
func Hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	labels := strings.Split(u.Hostname(), ".")
	if len(labels) > 2 {
		labels = labels[len(labels)-2:]
	}
	return strings.Join(labels, ".")
}
