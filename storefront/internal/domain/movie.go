package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Media types accepted by the rental API.
const (
	MediaTypeCD            = "CD"
	MediaTypeVideocassette = "Видеокассета"
)

// earliest plausible film release year
const firstReleaseYear = 1888

var ErrInvalidMovie = errors.New("invalid movie")

type Movie struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Topic            string `json:"topic"`
	Description      string `json:"description"`
	MainActors       string `json:"mainActors"`
	Director         string `json:"director"`
	Scriptwriter     string `json:"scriptwriter"`
	MediaType        string `json:"mediaType"`
	RecordingCompany string `json:"recordingCompany"`
	ReleaseYear      int    `json:"releaseYear"`
	ImageURL         string `json:"imageUrl"`
}

// Validate checks the fields an administrator must fill before a movie is
// sent to the rental API.
func (m Movie) Validate(now time.Time) error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidMovie)
	}
	if strings.TrimSpace(m.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidMovie)
	}
	switch m.MediaType {
	case MediaTypeCD, MediaTypeVideocassette:
	case "":
		return fmt.Errorf("%w: media type is required", ErrInvalidMovie)
	default:
		return fmt.Errorf("%w: unknown media type %q", ErrInvalidMovie, m.MediaType)
	}
	if m.ReleaseYear != 0 && (m.ReleaseYear < firstReleaseYear || m.ReleaseYear > now.Year()+1) {
		return fmt.Errorf("%w: release year %d out of range", ErrInvalidMovie, m.ReleaseYear)
	}
	return nil
}

// Matches reports whether the movie title or topic contains query,
// ignoring case. An empty query matches everything.
func (m Movie) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Topic), q)
}
