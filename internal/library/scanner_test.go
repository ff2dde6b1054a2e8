package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/mp3x/internal/shared"
	tu "github.com/desertthunder/mp3x/internal/testing"
)

func TestIsMP3(t *testing.T) {
	tc := []struct {
		name string
		want bool
	}{
		{name: "song.mp3", want: true},
		{name: "SONG.MP3", want: true},
		{name: "Song.Mp3", want: true},
		{name: "song.mp3.txt", want: false},
		{name: "song.wav", want: false},
		{name: "mp3", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMP3(tt.name); got != tt.want {
				t.Errorf("IsMP3(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestScan(t *testing.T) {
	t.Run("returns mp3 files in lexicographic order", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"track03.mp3", "track01.mp3", "Track02.MP3", "notes.txt", "cover.jpg"} {
			tu.WriteFile(t, dir, name, []byte("x"))
		}

		tracks, err := Scan(dir)
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}

		want := []string{"Track02.MP3", "track01.mp3", "track03.mp3"}
		if len(tracks) != len(want) {
			t.Fatalf("expected %d tracks, got %d", len(want), len(tracks))
		}
		for i, name := range want {
			if tracks[i].Filename != name {
				t.Errorf("track %d = %s, want %s", i, tracks[i].Filename, name)
			}
			if tracks[i].Index != i {
				t.Errorf("track %d has index %d", i, tracks[i].Index)
			}
			if !filepath.IsAbs(tracks[i].Path) {
				t.Errorf("expected absolute path, got %s", tracks[i].Path)
			}
			if filepath.Base(tracks[i].Path) != name {
				t.Errorf("path %s does not end in %s", tracks[i].Path, name)
			}
		}
	})

	t.Run("ignores subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		tu.WriteFile(t, dir, "a.mp3", []byte("x"))
		if err := os.Mkdir(filepath.Join(dir, "folder.mp3"), 0o755); err != nil {
			t.Fatalf("failed to create subdirectory: %v", err)
		}
		tu.WriteFile(t, filepath.Join(dir, "folder.mp3"), "nested.mp3", []byte("x"))

		tracks, err := Scan(dir)
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(tracks) != 1 || tracks[0].Filename != "a.mp3" {
			t.Errorf("expected only a.mp3, got %+v", tracks)
		}
	})

	t.Run("relative folder yields absolute paths", func(t *testing.T) {
		dir := t.TempDir()
		tu.WriteFile(t, dir, "a.mp3", []byte("x"))
		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get wd: %v", err)
		}
		rel, err := filepath.Rel(wd, dir)
		if err != nil {
			t.Skipf("temp dir not relative to wd: %v", err)
		}

		tracks, err := Scan(rel)
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if tracks[0].Path != filepath.Join(dir, "a.mp3") {
			t.Errorf("expected %s, got %s", filepath.Join(dir, "a.mp3"), tracks[0].Path)
		}
	})

	tc := []struct {
		name  string
		setup func(t *testing.T) string
		want  error
	}{
		{
			name:  "missing folder",
			setup: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing") },
			want:  shared.ErrInvalidFolder,
		},
		{
			name: "path is a file",
			setup: func(t *testing.T) string {
				return tu.WriteFile(t, t.TempDir(), "a.mp3", []byte("x"))
			},
			want: shared.ErrInvalidFolder,
		},
		{
			name:  "empty folder",
			setup: func(t *testing.T) string { return t.TempDir() },
			want:  shared.ErrNoFilesFound,
		},
		{
			name: "folder without mp3 files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				tu.WriteFile(t, dir, "a.wav", []byte("x"))
				tu.WriteFile(t, dir, "b.txt", []byte("x"))
				return dir
			},
			want: shared.ErrNoFilesFound,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(tt.setup(t))
			if !errors.Is(err, tt.want) {
				t.Errorf("Scan() error = %v, want %v", err, tt.want)
			}
		})
	}
}
