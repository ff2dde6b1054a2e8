package ui

import "github.com/desertthunder/mp3x/internal/models"

// Key is a terminal key event after it has been mapped onto the list's actions.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyCombine
	KeyQuit
)

// Mode is the state of the selection list.
type Mode int

const (
	Browsing Mode = iota
	Picked
	Terminated
)

func (m Mode) String() string {
	switch m {
	case Browsing:
		return "browsing"
	case Picked:
		return "picked"
	case Terminated:
		return "terminated"
	default:
		return ""
	}
}

// Outcome is how the list was left.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCombine
	OutcomeQuit
)

// Selection holds the cursor and the at-most-one picked entry over a playlist.
//
// While an entry is picked it always sits under the cursor: moving the cursor moves the entry.
type Selection struct {
	playlist *models.Playlist
	cursor   int
	picked   int
	outcome  Outcome
}

// NewSelection starts browsing at the top of playlist with nothing picked.
func NewSelection(playlist *models.Playlist) *Selection {
	return &Selection{playlist: playlist, picked: -1}
}

// Apply feeds one key into the state machine and reports whether anything changed.
//
// Combine and quit are accepted in every mode and drop any picked entry first.
// Keys arriving after termination, and unknown keys, are ignored.
func (s *Selection) Apply(k Key) bool {
	if s.outcome != OutcomeNone {
		return false
	}

	switch k {
	case KeyUp:
		return s.move(-1)
	case KeyDown:
		return s.move(1)
	case KeyEnter:
		if s.playlist.Len() == 0 {
			return false
		}
		if s.picked < 0 {
			s.picked = s.cursor
		} else {
			s.picked = -1
		}
		return true
	case KeyCombine:
		s.picked = -1
		s.outcome = OutcomeCombine
		return true
	case KeyQuit:
		s.picked = -1
		s.outcome = OutcomeQuit
		return true
	default:
		return false
	}
}

// move shifts the cursor by delta, swapping the picked entry along with it. No wraparound.
func (s *Selection) move(delta int) bool {
	next := s.cursor + delta
	if next < 0 || next >= s.playlist.Len() {
		return false
	}
	if s.picked >= 0 {
		s.playlist.Swap(s.picked, next)
		s.picked = next
	}
	s.cursor = next
	return true
}

func (s *Selection) Cursor() int { return s.cursor }

// Picked returns the picked index and whether an entry is picked.
func (s *Selection) Picked() (int, bool) { return s.picked, s.picked >= 0 }

func (s *Selection) Outcome() Outcome { return s.outcome }

func (s *Selection) Playlist() *models.Playlist { return s.playlist }

// Mode derives the current state from the fields.
func (s *Selection) Mode() Mode {
	switch {
	case s.outcome != OutcomeNone:
		return Terminated
	case s.picked >= 0:
		return Picked
	default:
		return Browsing
	}
}
