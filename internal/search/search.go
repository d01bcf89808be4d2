package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gopak/ytmsearch/internal/logging"
	"github.com/gopak/ytmsearch/internal/ytmusic"
)

const (
	// Filter and Limit are fixed for every query this package issues.
	Filter = ytmusic.FilterSongs
	Limit  = 1
)

var (
	ErrEmptyQuery = errors.New("empty query")
	ErrNoResults  = errors.New("no results found for your query")
)

// Capability is the external search backend.
type Capability interface {
	Search(ctx context.Context, query string, filter ytmusic.Filter, limit int) ([]ytmusic.Song, error)
}

// Factory builds a fresh Capability for a single query.
type Factory func() Capability

type Searcher struct {
	newCapability Factory
}

func New(f Factory) *Searcher { return &Searcher{newCapability: f} }

// JoinQuery joins arguments with single spaces. No trimming is applied, so
// whitespace-only arguments produce a non-empty query.
func JoinQuery(args []string) string { return strings.Join(args, " ") }

// TopSong returns at most one song for args. An empty joined query returns
// an empty list without constructing a capability.
func (s *Searcher) TopSong(ctx context.Context, args []string) ([]ytmusic.Song, error) {
	query := JoinQuery(args)
	if len(query) == 0 {
		logging.Debug("empty query, skipping search")
		return []ytmusic.Song{}, nil
	}
	logging.Debug(fmt.Sprintf("search: query=%q filter=%s limit=%d", query, Filter, Limit))
	songs, err := s.newCapability().Search(ctx, query, Filter, Limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if songs == nil {
		songs = []ytmusic.Song{}
	}
	logging.Debug(fmt.Sprintf("search: %d result(s)", len(songs)))
	return songs, nil
}

// First is TopSong for callers that need exactly one song.
func (s *Searcher) First(ctx context.Context, args []string) (ytmusic.Song, error) {
	if len(JoinQuery(args)) == 0 {
		return ytmusic.Song{}, ErrEmptyQuery
	}
	songs, err := s.TopSong(ctx, args)
	if err != nil {
		return ytmusic.Song{}, err
	}
	if len(songs) == 0 {
		return ytmusic.Song{}, fmt.Errorf("%q: %w", JoinQuery(args), ErrNoResults)
	}
	return songs[0], nil
}
