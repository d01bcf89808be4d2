package ytmusic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	pathTabbedSections = "contents.tabbedSearchResultsRenderer.tabs.0.tabRenderer.content.sectionListRenderer.contents"
	pathSections       = "contents.sectionListRenderer.contents"

	pathFlexColumn = "musicResponsiveListItemFlexColumnRenderer.text.runs"
	pathPlayButton = "overlay.musicItemThumbnailOverlayRenderer.content.musicPlayButtonRenderer.playNavigationEndpoint"
	pathThumbnails = "thumbnail.musicThumbnailRenderer.thumbnail.thumbnails"
	pathBadgeLabel = "badges.0.musicInlineBadgeRenderer.accessibilityData.accessibilityData.label"
)

var (
	durationRe = regexp.MustCompile(`^(\d+:)*\d+:\d+$`)
	yearRe     = regexp.MustCompile(`^\d{4}$`)
	viewsRe    = regexp.MustCompile(`^\d([^ ])* [^ ]*$`)
)

// parseSearchResponse walks the section list of a search response. A
// response without sections is an empty result.
func parseSearchResponse(raw []byte, filter Filter) ([]Song, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformedResponse)
	}

	sections := doc.Get(pathTabbedSections)
	if !sections.Exists() {
		sections = doc.Get(pathSections)
	}
	songs := []Song{}
	if !sections.Exists() {
		return songs, nil
	}

	sections.ForEach(func(_, section gjson.Result) bool {
		shelf := section.Get("musicShelfRenderer")
		if !shelf.Exists() {
			return true
		}
		category := shelf.Get("title.runs.0.text").String()
		if category == "" {
			category = filter.category()
		}
		shelf.Get("contents").ForEach(func(_, item gjson.Result) bool {
			data := item.Get("musicResponsiveListItemRenderer")
			if !data.Exists() {
				return true
			}
			if s, ok := parseSong(data, filter, category); ok {
				songs = append(songs, s)
			}
			return true
		})
		return true
	})
	return songs, nil
}

func parseSong(data gjson.Result, filter Filter, category string) (Song, bool) {
	s := Song{
		Category:   category,
		ResultType: filter.resultType(),
		Title:      flexColumn(data, 0).Get("0.text").String(),
		Artists:    []Artist{},
		Thumbnails: []Thumbnail{},
	}

	s.VideoID = data.Get("playlistItemData.videoId").String()
	play := data.Get(pathPlayButton)
	if s.VideoID == "" {
		s.VideoID = play.Get("watchEndpoint.videoId").String()
	}
	// Songs that cannot be played (region locked, removed) carry no id.
	if s.VideoID == "" {
		return Song{}, false
	}
	s.VideoType = play.Get("watchEndpoint.watchEndpointMusicSupportedConfigs.watchEndpointMusicConfig.musicVideoType").String()

	parseRuns(&s, flexColumn(data, 1))

	s.IsExplicit = data.Get(pathBadgeLabel).Exists()
	data.Get(pathThumbnails).ForEach(func(_, t gjson.Result) bool {
		s.Thumbnails = append(s.Thumbnails, Thumbnail{
			URL:    t.Get("url").String(),
			Width:  t.Get("width").Int(),
			Height: t.Get("height").Int(),
		})
		return true
	})
	return s, true
}

func flexColumn(data gjson.Result, i int) gjson.Result {
	return data.Get("flexColumns." + strconv.Itoa(i) + "." + pathFlexColumn)
}

// parseRuns reads the second flex column: artists, album, views and
// duration separated by " • " runs.
func parseRuns(s *Song, runs gjson.Result) {
	for i, run := range runs.Array() {
		// odd runs are separators
		if i%2 == 1 {
			continue
		}
		text := run.Get("text").String()
		if nav := run.Get("navigationEndpoint.browseEndpoint"); nav.Exists() {
			id := nav.Get("browseId").String()
			pageType := nav.Get("browseEndpointContextSupportedConfigs.browseEndpointContextMusicConfig.pageType").String()
			if pageType == "MUSIC_PAGE_TYPE_ALBUM" || strings.HasPrefix(id, "MPRE") || strings.Contains(id, "release_detail") {
				s.Album = &Album{Name: text, ID: id}
			} else {
				s.Artists = append(s.Artists, Artist{Name: text, ID: id})
			}
			continue
		}
		switch {
		case durationRe.MatchString(text):
			s.Duration = text
			s.DurationSeconds = parseDuration(text)
		case yearRe.MatchString(text):
			y := text
			s.Year = &y
		case i > 0 && viewsRe.MatchString(text):
			// view counts are not part of a song result
		case strings.TrimSpace(text) != "":
			s.Artists = append(s.Artists, Artist{Name: text})
		}
	}
}

// parseDuration converts [h:]m:s into seconds.
func parseDuration(text string) int {
	total := 0
	for _, part := range strings.Split(text, ":") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}
