package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/reprise/internal/models"
)

var (
	_ list.Item = recommendationItem{}
)

// recommendationItem wraps [models.Recommendation] to implement [list.Item].
type recommendationItem struct {
	rec  models.Recommendation
	rank int
}

func (i recommendationItem) FilterValue() string { return i.rec.Title }
func (i recommendationItem) Title() string {
	return fmt.Sprintf("%d. %s", i.rank, i.rec.Title)
}
func (i recommendationItem) Description() string {
	desc := i.rec.Artist
	if i.rec.Album != "" && i.rec.Album != models.UnknownAlbum {
		desc = fmt.Sprintf("%s • %s", desc, i.rec.Album)
	}
	return fmt.Sprintf("%s • suggested %dx", desc, i.rec.Count)
}
