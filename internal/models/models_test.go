package models

import "testing"

func TestTrackKey(t *testing.T) {
	tc := []struct {
		name  string
		track Track
		want  string
	}{
		{"lowercases name and artist", Track{Name: "Karma Police", Artist: "Radiohead"}, "karma police by radiohead"},
		{"already lowercase", Track{Name: "everlong", Artist: "foo fighters"}, "everlong by foo fighters"},
		{"name containing by", Track{Name: "Stand By Me", Artist: "Ben E. King"}, "stand by me by ben e. king"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.Key(); got != tt.want {
				t.Errorf("Key() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCandidateKey(t *testing.T) {
	candidate := Candidate{Title: "Creep", Artist: "Radiohead"}
	track := Track{Name: "CREEP", Artist: "radiohead"}

	if candidate.Key() != track.Key() {
		t.Errorf("expected matching keys, got %q and %q", candidate.Key(), track.Key())
	}
}

func TestSpotifyURL(t *testing.T) {
	track := Track{ID: "4uLU6hMCjMI75M1A2tKUQC"}

	want := "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC"
	if got := track.SpotifyURL(); got != want {
		t.Errorf("SpotifyURL() = %v, want %v", got, want)
	}
}
