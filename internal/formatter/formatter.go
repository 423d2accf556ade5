// package formatter provides functions to export recommendation lists to various formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/reprise/internal/models"
	"github.com/desertthunder/reprise/internal/shared"
	"github.com/gosimple/slug"
)

// Format identifies an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat resolves a format name or a common alias for it.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt", "plain":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
	}
}

// Ext returns the file extension used for the format.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return string(f)
	}
}

// ExportToCSV converts recommendations to CSV format with columns: Rank, Title, Artist, Album, Views, Count, Spotify URL
func ExportToCSV(recommendations []models.Recommendation) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "Title", "Artist", "Album", "Views", "Count", "Spotify URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, rec := range recommendations {
		record := []string{
			strconv.Itoa(i + 1),
			rec.Title,
			rec.Artist,
			rec.Album,
			rec.Views,
			strconv.Itoa(rec.Count),
			rec.SpotifyURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts recommendations to indented JSON
func ExportToJSON(recommendations []models.Recommendation) ([]byte, error) {
	return shared.MarshalJSON(recommendations, true)
}

// ExportToMarkdown converts recommendations to a Markdown listing under the given title
func ExportToMarkdown(recommendations []models.Recommendation, title string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(recommendations)))

	buf.WriteString("## Recommendations\n\n")
	for i, rec := range recommendations {
		albumPart := ""
		if rec.Album != "" && rec.Album != models.UnknownAlbum {
			albumPart = fmt.Sprintf(" (%s)", rec.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s views, x%d]\n", i+1, rec.Artist, rec.Title, albumPart, rec.Views, rec.Count))
	}

	return buf.Bytes(), nil
}

// ExportToText converts recommendations to plain text format
func ExportToText(recommendations []models.Recommendation, title string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(recommendations)))

	for i, rec := range recommendations {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (x%d)\n", i+1, rec.Artist, rec.Title, rec.Count))
	}

	return buf.Bytes(), nil
}

// Export renders recommendations in the requested format.
func Export(recommendations []models.Recommendation, title string, format Format) ([]byte, error) {
	if title == "" {
		title = "Recommendations"
	}

	switch format {
	case FormatCSV:
		return ExportToCSV(recommendations)
	case FormatJSON:
		return ExportToJSON(recommendations)
	case FormatMarkdown:
		return ExportToMarkdown(recommendations, title)
	case FormatText:
		return ExportToText(recommendations, title)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport renders recommendations and writes them to a file, returning
// the path written.
//
// Defaults to recommendations_{title-slug}.{ext} as the filename.
func WriteExport(recommendations []models.Recommendation, title string, format Format, path string) (string, error) {
	if path == "" {
		base := slug.Make(title)
		if base == "" {
			base = "playlist"
		}
		path = fmt.Sprintf("recommendations_%s.%s", base, format.Ext())
	}

	data, err := Export(recommendations, title, format)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
