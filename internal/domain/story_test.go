package domain

import "testing"

func TestFindStory(t *testing.T) {
	stories := []Story{
		{ID: "1", Title: "first"},
		{ID: "2", Title: "second"},
		{ID: "3", Title: "third"},
	}

	tests := []struct {
		name string
		id   StoryID
		want int
	}{
		{name: "first element", id: "1", want: 0},
		{name: "last element", id: "3", want: 2},
		{name: "missing", id: "4", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindStory(stories, tt.id); got != tt.want {
				t.Errorf("FindStory(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestRemoveStory(t *testing.T) {
	stories := []Story{
		{ID: "1"},
		{ID: "2"},
		{ID: "3"},
	}

	got := RemoveStory(stories, "2")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("RemoveStory = %v, want [1 3]", got)
	}

	// Removing an absent id is a no-op copy.
	got = RemoveStory(stories, "99")
	if len(got) != 3 {
		t.Errorf("RemoveStory of absent id changed length: %v", got)
	}

	// Input untouched.
	if len(stories) != 3 {
		t.Errorf("input slice was modified: %v", stories)
	}
}
