package console

import (
	"strconv"
	"strings"

	"github.com/gopak/ytmsearch/internal/media"
	"github.com/gopak/ytmsearch/internal/ytmusic"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func renderSongs(songs []ytmusic.Song) string {
	if len(songs) == 0 {
		return text.FgHiBlack.Sprint("no results") + "\n"
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Title", "Artists", "Album", "Duration", "Video ID"})
	for _, s := range songs {
		names := make([]string, 0, len(s.Artists))
		for _, a := range s.Artists {
			names = append(names, a.Name)
		}
		album := ""
		if s.Album != nil {
			album = s.Album.Name
		}
		title := s.Title
		if s.IsExplicit {
			title += " " + text.Bold.Sprint("[E]")
		}
		tw.AppendRow(table.Row{orDash(title), orDash(strings.Join(names, ", ")), orDash(album), orDash(s.Duration), s.VideoID})
	}
	return tw.Render() + "\n"
}

func renderMedia(r media.Resource) string {
	str := func(p *string) string {
		if p == nil {
			return "-"
		}
		return orDash(*p)
	}
	duration := "-"
	if r.Duration != nil {
		duration = strconv.FormatFloat(*r.Duration, 'f', -1, 64) + "s"
	}
	views := "-"
	if r.ViewCount != nil {
		views = strconv.FormatUint(*r.ViewCount, 10)
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendRows([]table.Row{
		{"ID", str(r.ID)},
		{"Title", orDash(r.DisplayTitle())},
		{"Uploader", str(r.Uploader)},
		{"Duration", duration},
		{"Views", views},
		{"URL", str(r.URL)},
	})
	return tw.Render() + "\n"
}
