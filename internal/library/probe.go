package library

import (
	"context"
	"os"
	"time"

	"github.com/bogem/id3v2"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mp3x/internal/models"
	"github.com/dmulholl/mp3lib"
	"golang.org/x/sync/errgroup"
)

// ProbeConcurrency bounds the number of files read at once by [Probe].
const ProbeConcurrency = 4

// Probe returns copies of tracks enriched with ID3 title/artist and an estimated duration.
//
// Order is preserved. A file that cannot be read keeps empty metadata; the failure is logged at debug level.
func Probe(ctx context.Context, tracks []models.Track, logger *log.Logger) []models.Track {
	out := make([]models.Track, len(tracks))
	copy(out, tracks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ProbeConcurrency)

	for i := range out {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			t := &out[i]

			title, artist, err := ReadTags(t.Path)
			if err != nil && logger != nil {
				logger.Debug("tag probe failed", "file", t.Filename, "err", err)
			}
			t.Title, t.Artist = title, artist

			d, err := EstimateDuration(t.Path)
			if err != nil && logger != nil {
				logger.Debug("duration probe failed", "file", t.Filename, "err", err)
			}
			t.Duration = d
			return nil
		})
	}

	_ = g.Wait()
	return out
}

// ReadTags returns the ID3v2 title and artist of the file at path.
func ReadTags(path string) (title, artist string, err error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Title", "Artist"}})
	if err != nil {
		return "", "", err
	}
	defer tag.Close()

	return tag.Title(), tag.Artist(), nil
}

// EstimateDuration walks the MPEG frames of the file at path and sums their sample counts.
//
// A leading Xing or VBRI header frame carries no audio and is not counted.
func EstimateDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var total time.Duration
	first := true
	for {
		frame := mp3lib.NextFrame(f)
		if frame == nil {
			break
		}
		if first {
			first = false
			if mp3lib.IsXingHeader(frame) || mp3lib.IsVbriHeader(frame) {
				continue
			}
		}
		if frame.SamplingRate > 0 {
			total += time.Duration(frame.SampleCount) * time.Second / time.Duration(frame.SamplingRate)
		}
	}
	return total, nil
}
