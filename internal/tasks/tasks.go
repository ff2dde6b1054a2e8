// package tasks implements the sequential decode, gap and encode pipeline.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
	"github.com/samber/lo"
)

const (
	// Gap is the silence inserted between two successfully decoded tracks.
	Gap = 3 * time.Second
	// Bitrate of the output file in kbps.
	Bitrate = 320
)

// Codec is the audio backend used by the [Assembler].
type Codec interface {
	// Decode reads the file at path into a segment.
	Decode(path string) (models.Segment, error)
	// Silence returns a silent segment of length d.
	Silence(d time.Duration) models.Segment
	// Encode writes segments, in order, as one MP3 at the given bitrate.
	Encode(ctx context.Context, segments []models.Segment, path string, bitrateKbps int) error
}

// SkippedTrack is a track left out of the output because it could not be decoded.
type SkippedTrack struct {
	Track models.Track
	Err   error
}

// PlacedTrack is a decoded track and where it landed in the output.
type PlacedTrack struct {
	Track  models.Track
	Start  time.Duration
	Length time.Duration
}

// AssemblyResult contains all data from a combine run.
type AssemblyResult struct {
	OutputPath    string
	TotalDuration time.Duration
	Processed     []models.Track
	Timeline      []PlacedTrack
	Skipped       []SkippedTrack
	Gaps          int
}

// Seconds returns the total duration in seconds.
func (r *AssemblyResult) Seconds() float64 {
	return r.TotalDuration.Seconds()
}

// Assembler combines tracks through a [Codec].
type Assembler struct {
	codec  Codec
	logger *log.Logger
}

// NewAssembler creates an Assembler. A nil logger discards log output.
func NewAssembler(codec Codec, logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.New(nopWriter{})
	}
	return &Assembler{codec: codec, logger: logger}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// sendProgress sends a progress update through the channel without blocking.
func (a *Assembler) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ValidateOutput rejects an output path that resolves to one of the playlist's inputs.
func ValidateOutput(playlist *models.Playlist, outputPath string) error {
	absOut, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrWrite, err)
	}
	if lo.Contains(playlist.Paths(), absOut) {
		return fmt.Errorf("%w: the list of input files includes the output file", shared.ErrInvalidArgument)
	}
	return nil
}

// Assemble decodes the playlist in order, joins the decoded tracks with [Gap] of silence
// and writes the result to outputPath.
func (a *Assembler) Assemble(ctx context.Context, playlist *models.Playlist, outputPath string, progress chan<- ProgressUpdate) (*AssemblyResult, error) {
	if a.codec == nil {
		return nil, fmt.Errorf("%w: no codec configured", shared.ErrEncoder)
	}
	if playlist == nil || playlist.Len() == 0 {
		return nil, shared.ErrEmptyResult
	}
	if outputPath == "" {
		return nil, fmt.Errorf("%w: output path is empty", shared.ErrMissingArgument)
	}

	if err := ValidateOutput(playlist, outputPath); err != nil {
		return nil, err
	}

	result := &AssemblyResult{OutputPath: outputPath}
	tracks := playlist.Tracks()
	total := len(tracks)
	var buffer []models.Segment
	var previous *models.Track

	for i, track := range tracks {
		a.sendProgress(progress, decodeUpdate(i+1, total, track))

		segment, err := a.codec.Decode(track.Path)
		if err != nil {
			err = fmt.Errorf("%w: %v", shared.ErrDecode, err)
			result.Skipped = append(result.Skipped, SkippedTrack{Track: track, Err: err})
			a.logger.Warn("skipping track", "file", track.Filename, "err", err)
			a.sendProgress(progress, skipUpdate(i+1, total, track, err))
			continue
		}

		if previous != nil {
			buffer = append(buffer, a.codec.Silence(Gap))
			result.TotalDuration += Gap
			result.Gaps++
			a.sendProgress(progress, gapUpdate(i+1, total, *previous))
		}

		buffer = append(buffer, segment)
		result.Timeline = append(result.Timeline, PlacedTrack{Track: track, Start: result.TotalDuration, Length: segment.Duration()})
		result.TotalDuration += segment.Duration()
		result.Processed = append(result.Processed, track)
		previous = &tracks[i]
		a.logger.Debug("decoded track", "file", track.Filename, "duration", segment.Duration())
	}

	if len(buffer) == 0 {
		return result, shared.ErrEmptyResult
	}

	a.sendProgress(progress, encodeUpdate(outputPath))
	if err := a.codec.Encode(ctx, buffer, outputPath, Bitrate); err != nil {
		if errors.Is(err, shared.ErrWrite) {
			return result, err
		}
		return result, fmt.Errorf("%w '%s': %w", shared.ErrWrite, outputPath, err)
	}

	a.logger.Info("combined audio written", "output", outputPath, "duration", result.TotalDuration, "skipped", len(result.Skipped))
	a.sendProgress(progress, doneUpdate(result))
	return result, nil
}
