package render

import (
	"strings"
	"testing"

	"github.com/hacksnooze/snooze/internal/controller"
	"github.com/hacksnooze/snooze/internal/domain"
)

func TestHostname(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain host", raw: "http://a.b.com/path", want: "b.com"},
		{name: "two labels kept", raw: "https://example.org", want: "example.org"},
		{name: "deep subdomain trimmed", raw: "https://a.b.c.example.org/x", want: "example.org"},
		{name: "unparsable shown raw", raw: "not a url", want: "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hostname(tt.raw); got != tt.want {
				t.Errorf("Hostname(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRenderFeed(t *testing.T) {
	var buf strings.Builder
	r := NewText(&buf)

	r.Render(controller.Result{
		Message: "logged in as Kay",
		Snapshot: controller.Snapshot{
			LoggedIn: true,
			Username: "kay",
			Name:     "Kay",
			Mode:     domain.ViewAll,
			Items: []domain.FeedItem{
				{
					Story: domain.Story{ID: "1", Title: "first", URL: "http://a.b.com", Author: "Kay"},
					Flags: domain.StoryFlags{Owned: true, Favorited: true, Starrable: true},
				},
				{
					Story: domain.Story{ID: "2", Title: "second", URL: "http://c.d.com", Author: "Other"},
					Flags: domain.StoryFlags{Starrable: true},
				},
			},
		},
	})

	out := buf.String()
	for _, want := range []string{"logged in as Kay", "Kay (@kay)", "* first", "- second", "b.com", "delete/edit available"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmptyFeed(t *testing.T) {
	var buf strings.Builder
	NewText(&buf).Render(controller.Result{})

	out := buf.String()
	if !strings.Contains(out, "not logged in") || !strings.Contains(out, "(no stories)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRenderAlert(t *testing.T) {
	var buf strings.Builder
	NewText(&buf).Render(controller.Result{Alert: "login failed: invalid credentials"})

	if !strings.Contains(buf.String(), "! login failed: invalid credentials") {
		t.Errorf("alert not rendered:\n%s", buf.String())
	}
}
