package console

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gopak/ytmsearch/internal/media"
	"github.com/gopak/ytmsearch/internal/ytmusic"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatTable:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want json or table)", s)
}

// WriteJSON writes v as compact JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// ConsoleUI prints results on out in the selected format.
type ConsoleUI struct {
	out    io.Writer
	format Format
}

func NewConsoleUI(out io.Writer, format Format) *ConsoleUI {
	return &ConsoleUI{out: out, format: format}
}

func (c *ConsoleUI) PrintSongs(songs []ytmusic.Song) error {
	if songs == nil {
		songs = []ytmusic.Song{}
	}
	if c.format == FormatTable {
		_, err := fmt.Fprint(c.out, renderSongs(songs))
		return err
	}
	return WriteJSON(c.out, songs)
}

func (c *ConsoleUI) PrintMedia(r media.Resource) error {
	if c.format == FormatTable {
		_, err := fmt.Fprint(c.out, renderMedia(r))
		return err
	}
	return WriteJSON(c.out, r)
}
