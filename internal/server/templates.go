package server

import (
	_ "embed"
	"html/template"

	"github.com/desertthunder/reprise/internal/models"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// pageData carries everything the page template renders: an error message
// and the ranked recommendations, either of which may be empty.
type pageData struct {
	Error           string
	Recommendations []models.Recommendation
}
