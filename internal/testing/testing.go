// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bogem/id3v2"
	"github.com/desertthunder/mp3x/internal/models"
)

// FakeSegment is a [models.Segment] that only knows its length.
type FakeSegment struct {
	Source string
	Length time.Duration
	Silent bool
}

func (s FakeSegment) Duration() time.Duration { return s.Length }

// FakeCodec is a test double for the assembler's codec backend.
//
// Decode succeeds for filenames present in Durations and fails for everything else.
// Encode writes a plain-text description of the segments to the output path.
type FakeCodec struct {
	Durations map[string]time.Duration
	EncodeErr error
	Encoded   []models.Segment
	Bitrate   int
	Decoded   []string
}

func (c *FakeCodec) Decode(path string) (models.Segment, error) {
	name := filepath.Base(path)
	c.Decoded = append(c.Decoded, name)
	d, ok := c.Durations[name]
	if !ok {
		return nil, fmt.Errorf("corrupt mp3: %s", name)
	}
	return FakeSegment{Source: name, Length: d}, nil
}

func (c *FakeCodec) Silence(d time.Duration) models.Segment {
	return FakeSegment{Source: "silence", Length: d, Silent: true}
}

func (c *FakeCodec) Encode(ctx context.Context, segments []models.Segment, path string, bitrateKbps int) error {
	c.Encoded = segments
	c.Bitrate = bitrateKbps
	if c.EncodeErr != nil {
		return c.EncodeErr
	}

	var b strings.Builder
	for _, s := range segments {
		fmt.Fprintf(&b, "%s %s\n", s.(FakeSegment).Source, s.Duration())
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// Sources lists the Source of each encoded segment, in order.
func (c *FakeCodec) Sources() []string {
	out := make([]string, len(c.Encoded))
	for i, s := range c.Encoded {
		out[i] = s.(FakeSegment).Source
	}
	return out
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MPEG-1 Layer III header fields for synthetic frames: 128 kbps, 44.1 kHz, no padding.
const (
	fakeBitrateIdx     = byte(0x09)
	fakeBitRate        = 128000
	FakeSampleRate     = 44100
	FakeSamplesInFrame = 1152
	frameHeaderSize    = 4
)

// FakeFrameDuration is the duration mp3lib reports for one synthetic frame.
const FakeFrameDuration = time.Duration(FakeSamplesInFrame) * time.Second / time.Duration(FakeSampleRate)

// FakeMP3 builds a byte stream of n valid MPEG frame headers with filler payloads.
//
// The payload is not real audio, so decoders may reject it; frame walkers accept it.
func FakeMP3(n int) []byte {
	frameLen := (144 * fakeBitRate) / FakeSampleRate
	buf := make([]byte, 0, n*frameLen)
	for i := range n {
		frame := make([]byte, frameLen)
		frame[0] = 0xFF
		frame[1] = 0xFB
		frame[2] = fakeBitrateIdx << 4
		frame[3] = 0x00
		for j := frameHeaderSize; j < frameLen; j++ {
			frame[j] = byte((j + i) & 0xFF)
		}
		buf = append(buf, frame...)
	}
	return buf
}

// SilentMP3 builds n decodable MPEG-1 Layer III frames of silence at [FakeSampleRate].
func SilentMP3(n int) []byte {
	return SilentMP3At(n, FakeSampleRate)
}

// SilentMP3At builds n decodable silent frames at sampleRate (44100, 48000 or 32000).
//
// Every frame is a 128 kbps header followed by a zeroed body, which decoders read as silence.
func SilentMP3At(n, sampleRate int) []byte {
	rateIdx := map[int]byte{44100: 0, 48000: 1, 32000: 2}[sampleRate]
	frameLen := (144 * fakeBitRate) / sampleRate
	buf := make([]byte, 0, n*frameLen)
	for range n {
		frame := make([]byte, frameLen)
		frame[0] = 0xFF
		frame[1] = 0xFB
		frame[2] = fakeBitrateIdx<<4 | rateIdx<<2
		buf = append(buf, frame...)
	}
	return buf
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteTaggedMP3 writes an ID3v2 tag with title and artist followed by n synthetic frames.
func WriteTaggedMP3(t *testing.T, dir, name, title, artist string, n int) string {
	t.Helper()
	tag := id3v2.NewEmptyTag()
	tag.SetTitle(title)
	tag.SetArtist(artist)

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatalf("Failed to encode tag: %v", err)
	}
	buf.Write(FakeMP3(n))
	return WriteFile(t, dir, name, buf.Bytes())
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

// AssertDirEntries fails unless dir contains exactly want entries.
func AssertDirEntries(t *testing.T, dir string, want int) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}
	if len(entries) != want {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("expected %d entries in %s, got %d: %v", want, dir, len(entries), names)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
