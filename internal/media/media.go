// Package media resolves a YouTube Music video id into playable media
// metadata by running yt-dlp (or a compatible youtube-dl fork).
package media

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gopak/ytmsearch/internal/config"
	"github.com/gopak/ytmsearch/internal/executil"
	"github.com/gopak/ytmsearch/internal/logging"
	"github.com/gopak/ytmsearch/internal/ytmusic"
)

const DefaultBinary = "yt-dlp"

var ErrNoMedia = errors.New("no media metadata returned")

type Resource struct {
	ID          *string  `json:"id"`
	URL         *string  `json:"url"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Duration    *float64 `json:"duration"`
	ViewCount   *uint64  `json:"view_count"`
	Uploader    *string  `json:"uploader"`
}

// DisplayTitle falls back to the URL when the title is missing.
func (r Resource) DisplayTitle() string {
	if r.Title != nil {
		return *r.Title
	}
	if r.URL != nil {
		return *r.URL
	}
	return ""
}

type runFunc func(ctx context.Context, c config.Command, args ...string) executil.Result

type Resolver struct {
	cmd config.Command
	run runFunc
}

func NewResolver(cmd config.Command) *Resolver {
	if cmd.Binary == "" {
		cmd.Binary = DefaultBinary
	}
	return &Resolver{cmd: cmd, run: executil.Run}
}

func dumpArgs(uri string) []string {
	return []string{
		"--dump-json",
		"-f", "webm[abr>0]/bestaudio/best",
		"-R", "10",
		"--ignore-config",
		"--no-warnings",
		"--flat-playlist",
		uri,
	}
}

// Resolve returns the first JSON object yt-dlp prints for videoID.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (Resource, error) {
	if videoID == "" {
		return Resource{}, errors.New("empty video id")
	}
	args := dumpArgs(ytmusic.WatchURL(videoID))
	logging.Debug(fmt.Sprintf("media [resolve]: %s %s", r.cmd.Binary, strings.Join(append(append([]string{}, r.cmd.Args...), args...), " ")))
	res := r.run(ctx, r.cmd, args...)
	if res.Code != 0 {
		return Resource{}, fmt.Errorf("%s failed: exit %d: %s", r.cmd.Binary, res.Code, strings.TrimSpace(res.Stderr))
	}
	items, err := parseDump(res.Stdout)
	if err != nil {
		return Resource{}, err
	}
	if len(items) == 0 {
		return Resource{}, ErrNoMedia
	}
	return items[0], nil
}

// parseDump decodes one JSON object per line, skipping blank lines.
func parseDump(out string) ([]Resource, error) {
	var items []Resource
	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var r Resource
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, fmt.Errorf("decode media metadata: %w", err)
		}
		items = append(items, r)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
