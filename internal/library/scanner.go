package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
	"github.com/samber/lo"
)

const mp3Ext = ".mp3"

// IsMP3 reports whether name carries the MP3 extension, ignoring case.
func IsMP3(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), mp3Ext)
}

// Scan lists the MP3 files directly inside folder, sorted by filename.
//
// Fails with [shared.ErrInvalidFolder] when folder is missing or not a directory,
// and with [shared.ErrNoFilesFound] when it holds no MP3 files.
func Scan(folder string) ([]models.Track, error) {
	info, err := os.Stat(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: input folder '%s' not found", shared.ErrInvalidFolder, folder)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidFolder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: '%s' is not a directory", shared.ErrInvalidFolder, folder)
	}

	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidFolder, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read folder: %v", shared.ErrInvalidFolder, err)
	}

	names := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return e.Name(), !e.IsDir() && IsMP3(e.Name())
	})
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoFilesFound, folder)
	}
	sort.Strings(names)

	return lo.Map(names, func(name string, i int) models.Track {
		return models.Track{Filename: name, Path: filepath.Join(abs, name), Index: i}
	}), nil
}
