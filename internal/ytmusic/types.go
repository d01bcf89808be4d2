package ytmusic

import (
	"errors"
	"fmt"
)

// Filter restricts a search to one result category.
type Filter string

const FilterSongs Filter = "songs"

// searchParams are the protobuf-encoded "params" values the web client
// sends for each filter, without the spelling-correction override.
var searchParams = map[Filter]string{
	FilterSongs: "EgWKAQIIAWoMEA4QChADEAQQCRAF",
}

// resultType is the singular label carried by each parsed result.
func (f Filter) resultType() string {
	switch f {
	case FilterSongs:
		return "song"
	}
	return ""
}

func (f Filter) category() string {
	switch f {
	case FilterSongs:
		return "Songs"
	}
	return ""
}

var (
	// ErrBackend covers transport failures and non-2xx responses.
	ErrBackend = errors.New("ytmusic backend error")
	// ErrMalformedResponse is returned when the body is not the expected JSON.
	ErrMalformedResponse = errors.New("ytmusic malformed response")
	ErrInvalidFilter     = errors.New("unsupported search filter")
	ErrInvalidLimit      = errors.New("search limit must be at least 1")
)

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("YouTube Music API error: %d %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrBackend }

type Artist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type Album struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int64  `json:"width,omitempty"`
	Height int64  `json:"height,omitempty"`
}

// Song is one search result. Keys mirror the web API client conventions.
type Song struct {
	Category        string      `json:"category"`
	ResultType      string      `json:"resultType"`
	Title           string      `json:"title"`
	Album           *Album      `json:"album"`
	VideoID         string      `json:"videoId"`
	VideoType       string      `json:"videoType,omitempty"`
	Duration        string      `json:"duration,omitempty"`
	Year            *string     `json:"year"`
	Artists         []Artist    `json:"artists"`
	DurationSeconds int         `json:"duration_seconds,omitempty"`
	IsExplicit      bool        `json:"isExplicit"`
	Thumbnails      []Thumbnail `json:"thumbnails"`
}

// WatchURL is the music.youtube.com page for a video id.
func WatchURL(videoID string) string {
	return origin + "/watch?v=" + videoID
}
