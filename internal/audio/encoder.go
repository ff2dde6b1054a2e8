package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// Encoder writes MP3 files with an external ffmpeg binary.
type Encoder struct {
	binary string
	run    func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewEncoder creates an Encoder that runs the ffmpeg found at binary (a path or a name on PATH).
func NewEncoder(binary string) *Encoder {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Encoder{binary: binary, run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// Args builds the ffmpeg arguments that transcode input to a constant-bitrate MP3 at output.
func Args(input, output string, bitrateKbps int) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", input,
		"-codec:a", "libmp3lame",
		"-b:a", strconv.Itoa(bitrateKbps) + "k",
		"-f", "mp3",
		output,
	}
}

// Encode writes segments in order to path as an MP3.
//
// The PCM is staged in a temporary WAV next to path and transcoded into a temporary
// MP3 that is renamed onto path on success. Temporary files are removed on every exit path.
// An existing destination must be writable and keeps its permissions.
func (c *BeepCodec) Encode(ctx context.Context, segments []models.Segment, path string, bitrateKbps int) error {
	if c.encoder == nil {
		return fmt.Errorf("%w: no encoder configured", shared.ErrEncoder)
	}

	streamers := make([]beep.Streamer, 0, len(segments))
	for _, s := range segments {
		seg, ok := s.(*Segment)
		if !ok {
			return fmt.Errorf("unsupported segment type %T", s)
		}
		streamers = append(streamers, seg.Streamer())
	}

	target, mode, err := prepareTarget(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(target)
	id := shared.GenerateID()
	wavPath := filepath.Join(dir, ".mp3x-"+id+".wav")
	tmpPath := filepath.Join(dir, ".mp3x-"+id+".mp3")
	defer os.Remove(wavPath)
	defer os.Remove(tmpPath)

	if err := writeWAV(wavPath, beep.Seq(streamers...)); err != nil {
		return fmt.Errorf("%w '%s': %v", shared.ErrWrite, path, err)
	}
	if err := c.encoder.Transcode(ctx, wavPath, tmpPath, bitrateKbps); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("%w '%s': %v", shared.ErrWrite, path, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("%w '%s': %v", shared.ErrWrite, path, err)
	}
	return nil
}

// prepareTarget resolves the file that Encode replaces and the mode it must keep.
//
// Symlinks are followed so the link itself survives. An existing destination has to be
// writable by the caller; a missing one is created with mode 0644.
func prepareTarget(path string) (string, os.FileMode, error) {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}

	info, err := os.Stat(target)
	if errors.Is(err, os.ErrNotExist) {
		return target, 0o644, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("%w '%s': %v", shared.ErrWrite, path, err)
	}
	if info.IsDir() {
		return "", 0, fmt.Errorf("%w '%s': is a directory", shared.ErrWrite, path)
	}

	f, err := os.OpenFile(target, os.O_WRONLY, 0)
	if err != nil {
		return "", 0, fmt.Errorf("%w '%s': %v", shared.ErrWrite, path, err)
	}
	f.Close()
	return target, info.Mode().Perm(), nil
}

func writeWAV(path string, s beep.Streamer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := wav.Encode(f, s, Format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Transcode runs ffmpeg to convert input into an MP3 at output.
func (e *Encoder) Transcode(ctx context.Context, input, output string, bitrateKbps int) error {
	stderr, err := e.run(ctx, e.binary, Args(input, output, bitrateKbps)...)
	if err == nil {
		return nil
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return fmt.Errorf("%w: %s: %v", shared.ErrEncoder, e.binary, execErr.Err)
	}
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		msg = err.Error()
	}
	return fmt.Errorf("%w '%s': ffmpeg: %s", shared.ErrWrite, output, msg)
}
