// package models defines the data model for the MP3 combiner
package models

import (
	"fmt"
	"time"
)

// Track is a single MP3 file in the input folder.
type Track struct {
	Filename string        // Base name, e.g. track01.mp3
	Path     string        // Absolute path; identity of the track
	Index    int           // Current position in the playlist
	Title    string        // ID3 title, if probed
	Artist   string        // ID3 artist, if probed
	Duration time.Duration // Estimated from MPEG frames, if probed
}

// Label returns "artist - title" when tag data is present, otherwise the filename.
func (t Track) Label() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return fmt.Sprintf("%s - %s", t.Artist, t.Title)
	case t.Title != "":
		return t.Title
	default:
		return t.Filename
	}
}

// Playlist is the ordered sequence of tracks to combine.
type Playlist struct {
	tracks []Track
}

// NewPlaylist builds a playlist from tracks, stamping each Index with its position.
//
// Returns an error when two tracks share the same path.
func NewPlaylist(tracks []Track) (*Playlist, error) {
	seen := make(map[string]struct{}, len(tracks))
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		if _, dup := seen[t.Path]; dup {
			return nil, fmt.Errorf("duplicate track path: %s", t.Path)
		}
		seen[t.Path] = struct{}{}
		t.Index = i
		out[i] = t
	}
	return &Playlist{tracks: out}, nil
}

// Len returns the number of tracks.
func (p *Playlist) Len() int { return len(p.tracks) }

// At returns the track at position i.
func (p *Playlist) At(i int) Track { return p.tracks[i] }

// Tracks returns a copy of the current order.
func (p *Playlist) Tracks() []Track {
	out := make([]Track, len(p.tracks))
	copy(out, p.tracks)
	return out
}

// Paths returns the absolute paths in the current order.
func (p *Playlist) Paths() []string {
	out := make([]string, len(p.tracks))
	for i, t := range p.tracks {
		out[i] = t.Path
	}
	return out
}

// Swap exchanges the tracks at i and j and re-stamps their indices.
func (p *Playlist) Swap(i, j int) {
	p.tracks[i], p.tracks[j] = p.tracks[j], p.tracks[i]
	p.tracks[i].Index = i
	p.tracks[j].Index = j
}

// Enrich copies probed metadata onto tracks with a matching path, leaving order untouched.
func (p *Playlist) Enrich(meta []Track) {
	byPath := make(map[string]Track, len(meta))
	for _, m := range meta {
		byPath[m.Path] = m
	}
	for i := range p.tracks {
		m, ok := byPath[p.tracks[i].Path]
		if !ok {
			continue
		}
		p.tracks[i].Title = m.Title
		p.tracks[i].Artist = m.Artist
		p.tracks[i].Duration = m.Duration
	}
}

// Segment is a block of decoded audio (a track or a gap) held by a codec backend.
type Segment interface {
	Duration() time.Duration
}
