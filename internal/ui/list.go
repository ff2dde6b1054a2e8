package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
)

var (
	_ list.Item         = trackItem{}
	_ list.ItemDelegate = trackDelegate{}
)

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Filename }
func (i trackItem) Title() string       { return i.track.Filename }
func (i trackItem) Description() string {
	var parts []string
	if i.track.Title != "" {
		parts = append(parts, i.track.Label())
	}
	if i.track.Duration > 0 {
		parts = append(parts, shared.FormatDuration(i.track.Duration))
	}
	return strings.Join(parts, " • ")
}

func toItems(p *models.Playlist) []list.Item {
	tracks := p.Tracks()
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}
	return items
}

// trackDelegate renders one row per track, marking the cursor and the picked entry.
type trackDelegate struct {
	sel     *Selection
	palette *Palette
}

func (d trackDelegate) Height() int                             { return 1 }
func (d trackDelegate) Spacing() int                            { return 0 }
func (d trackDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d trackDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(trackItem)
	if !ok {
		return
	}

	line := fmt.Sprintf("%2d. %s", index+1, it.Title())
	if desc := it.Description(); desc != "" {
		line = fmt.Sprintf("%s  %s", line, d.palette.muted.Render(desc))
	}

	picked, isPicked := d.sel.Picked()
	switch {
	case isPicked && index == picked:
		fmt.Fprint(w, d.palette.picked.Render("[ "+line+" ]"))
	case index == d.sel.Cursor():
		fmt.Fprint(w, d.palette.cursor.Render("> "+line))
	default:
		fmt.Fprint(w, "  "+line)
	}
}
