package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mp3x/internal/models"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header (title + folder + output + blank) and footer (status + help) lines around the list
	chromeHeight = 8
)

// ProbeFunc loads display metadata for tracks, preserving order.
type ProbeFunc func(ctx context.Context, tracks []models.Track) []models.Track

// ModelOpts contains the dependencies and labels of a [Model].
type ModelOpts struct {
	Input   string     // Input folder, shown in the header
	Output  string     // Output file, shown in the header
	Palette *Palette   // Defaults to the built-in palette
	Probe   ProbeFunc  // Optional metadata loader run on Init
	Logger  *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	sel     *Selection
	list    list.Model
	help    help.Model
	keys    keyMap
	palette *Palette
	probe   ProbeFunc
	logger  *log.Logger
	input   string
	output  string
	cancel  context.CancelFunc
}

// NewModel creates a new TUI model over playlist.
func NewModel(ctx context.Context, playlist *models.Playlist, opts ModelOpts) *Model {
	if opts.Palette == nil {
		opts.Palette = styles
	}
	if opts.Logger == nil {
		opts.Logger = log.New(nopWriter{})
	}

	ctx, cancel := context.WithCancel(ctx)
	sel := NewSelection(playlist)
	l := list.New(toItems(playlist), trackDelegate{sel: sel, palette: opts.Palette}, defaultWidth, defaultHeight-chromeHeight)
	l.Title = "MP3 files found"
	l.Styles.Title = opts.Palette.title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return &Model{
		ctx:     ctx,
		sel:     sel,
		list:    l,
		help:    help.New(),
		keys:    newKeyMap(),
		palette: opts.Palette,
		probe:   opts.Probe,
		logger:  opts.Logger,
		input:   opts.Input,
		output:  opts.Output,
		cancel:  cancel,
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// Init starts the metadata probe, if one is configured.
//
// The probe runs on the model's context, which is cancelled once the user combines or quits.
func (m *Model) Init() tea.Cmd {
	if m.probe == nil {
		return nil
	}
	tracks := m.sel.Playlist().Tracks()
	return func() tea.Msg {
		return metadataLoadedMsg(m.probe(m.ctx, tracks))
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(msg.Height-chromeHeight, 1))
		m.list.Select(m.sel.Cursor())
		return m, nil

	case Msg:
		switch msg.kind {
		case MsgMetadataLoaded:
			if tracks, ok := msg.data.([]models.Track); ok {
				m.sel.Playlist().Enrich(tracks)
				m.logger.Debug("metadata loaded", "tracks", len(tracks))
				return m, m.sync()
			}
		}
		return m, nil

	case tea.KeyMsg:
		k := m.keys.resolve(msg)
		before := m.sel.Mode()
		if !m.sel.Apply(k) {
			return m, nil
		}
		m.logger.Debug("key", "key", msg.String(), "from", before, "to", m.sel.Mode(), "cursor", m.sel.Cursor())
		if m.sel.Mode() == Terminated {
			m.cancel()
			return m, tea.Quit
		}
		return m, m.sync()
	}

	return m, nil
}

// sync pushes the playlist order and cursor into the list component.
func (m *Model) sync() tea.Cmd {
	cmd := m.list.SetItems(toItems(m.sel.Playlist()))
	m.list.Select(m.sel.Cursor())
	return cmd
}

// View renders the header, the track list and the key help.
func (m *Model) View() string {
	if m.sel.Mode() == Terminated {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Input folder: %s\n", m.input))
	b.WriteString(fmt.Sprintf("Output file: %s\n\n", m.output))
	b.WriteString(m.list.View())
	b.WriteString("\n\n")

	if picked, ok := m.sel.Picked(); ok {
		name := m.sel.Playlist().At(picked).Filename
		b.WriteString(m.palette.warn.Render(fmt.Sprintf("Moving %s: up/down reorders it, enter drops it", name)))
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView(m.keys.pickedHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}

// Outcome reports how the session ended.
func (m *Model) Outcome() Outcome { return m.sel.Outcome() }

// Playlist returns the playlist in its current order.
func (m *Model) Playlist() *models.Playlist { return m.sel.Playlist() }

// Selection exposes the underlying state machine.
func (m *Model) Selection() *Selection { return m.sel }
