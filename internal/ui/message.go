package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mp3x/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgMetadataLoaded MsgKind = iota
)

// metadataLoadedMsg is the constructor for [MsgMetadataLoaded]
func metadataLoadedMsg(tracks []models.Track) Msg {
	return Msg{kind: MsgMetadataLoaded, data: tracks}
}
