package audio

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
	tu "github.com/desertthunder/mp3x/internal/testing"
	"github.com/gopxl/beep/v2"
)

func TestSilence(t *testing.T) {
	codec := NewBeepCodec(nil, nil)
	seg := codec.Silence(3 * time.Second)

	if seg.Duration() != 3*time.Second {
		t.Errorf("expected 3s, got %v", seg.Duration())
	}
	if n := seg.(*Segment).Len(); n != 3*44100 {
		t.Errorf("expected %d samples, got %d", 3*44100, n)
	}
}

func TestDecode(t *testing.T) {
	codec := NewBeepCodec(nil, nil)

	t.Run("missing file", func(t *testing.T) {
		if _, err := codec.Decode(filepath.Join(t.TempDir(), "nope.mp3")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("not an mp3", func(t *testing.T) {
		path := tu.WriteFile(t, t.TempDir(), "junk.mp3", []byte("this is not audio at all"))
		if _, err := codec.Decode(path); err == nil {
			t.Error("expected error for junk file")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := tu.WriteFile(t, t.TempDir(), "empty.mp3", nil)
		if _, err := codec.Decode(path); err == nil {
			t.Error("expected error for empty file")
		}
	})
}

func TestDecodeSilentFrames(t *testing.T) {
	codec := NewBeepCodec(nil, nil)

	t.Run("44.1 kHz keeps every sample", func(t *testing.T) {
		path := tu.WriteFile(t, t.TempDir(), "silent.mp3", tu.SilentMP3(200))

		seg, err := codec.Decode(path)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}

		want := 200 * tu.FakeSamplesInFrame
		if n := seg.(*Segment).Len(); n != want {
			t.Errorf("expected %d samples, got %d", want, n)
		}
		if seg.Duration() != SampleRate.D(want) {
			t.Errorf("expected %v, got %v", SampleRate.D(want), seg.Duration())
		}
	})

	t.Run("48 kHz is resampled to 44.1 kHz", func(t *testing.T) {
		path := tu.WriteFile(t, t.TempDir(), "silent48.mp3", tu.SilentMP3At(200, 48000))

		seg, err := codec.Decode(path)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}

		// 200 frames of 1152 samples at 48 kHz last 4.8s
		want := 200 * tu.FakeSamplesInFrame * int(SampleRate) / 48000
		n := seg.(*Segment).Len()
		if n < want-tu.FakeSamplesInFrame || n > want+tu.FakeSamplesInFrame {
			t.Errorf("expected about %d samples, got %d", want, n)
		}
		if d := seg.Duration(); d < 4700*time.Millisecond || d > 4900*time.Millisecond {
			t.Errorf("expected about 4.8s, got %v", d)
		}
	})
}

func TestArgs(t *testing.T) {
	args := Args("in.wav", "out.mp3", 320)
	joined := strings.Join(args, " ")

	for _, want := range []string{"-i in.wav", "-codec:a libmp3lame", "-b:a 320k", "-y"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in %q", want, joined)
		}
	}
	if args[len(args)-1] != "out.mp3" {
		t.Errorf("expected output last, got %s", args[len(args)-1])
	}
}

// stubEncoder records the call and writes a fake MP3 at the output argument.
func stubEncoder(calls *[][]string, err error, stderr string) *Encoder {
	return &Encoder{
		binary: "ffmpeg",
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			*calls = append(*calls, append([]string{name}, args...))
			if err != nil {
				return []byte(stderr), err
			}
			return nil, os.WriteFile(args[len(args)-1], []byte("ID3"), 0o644)
		},
	}
}

func segments(codec *BeepCodec) []models.Segment {
	buffer := beep.NewBuffer(Format)
	buffer.Append(beep.Silence(1000))
	return []models.Segment{&Segment{buffer: buffer}, codec.Silence(10 * time.Millisecond)}
}

func TestEncode(t *testing.T) {
	t.Run("renames onto output and cleans up", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "combined.mp3")
		var calls [][]string
		codec := NewBeepCodec(stubEncoder(&calls, nil, ""), nil)

		if err := codec.Encode(context.Background(), segments(codec), out, 320); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}

		tu.AssertFileExists(t, out)
		tu.AssertDirEntries(t, dir, 1)
		if len(calls) != 1 {
			t.Fatalf("expected 1 ffmpeg call, got %d", len(calls))
		}
		if !strings.Contains(strings.Join(calls[0], " "), "-b:a 320k") {
			t.Errorf("expected 320k bitrate in %v", calls[0])
		}
	})

	t.Run("missing binary is ErrEncoder", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "combined.mp3")
		var calls [][]string
		notFound := &exec.Error{Name: "ffmpeg", Err: exec.ErrNotFound}
		codec := NewBeepCodec(stubEncoder(&calls, notFound, ""), nil)

		err := codec.Encode(context.Background(), segments(codec), out, 320)
		if !errors.Is(err, shared.ErrEncoder) {
			t.Errorf("expected ErrEncoder, got %v", err)
		}
		tu.AssertFileNotExists(t, out)
		tu.AssertDirEntries(t, dir, 0)
	})

	t.Run("ffmpeg failure is ErrWrite with stderr", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "combined.mp3")
		var calls [][]string
		codec := NewBeepCodec(stubEncoder(&calls, errors.New("exit status 1"), "Permission denied\n"), nil)

		err := codec.Encode(context.Background(), segments(codec), out, 320)
		if !errors.Is(err, shared.ErrWrite) {
			t.Errorf("expected ErrWrite, got %v", err)
		}
		if !strings.Contains(err.Error(), "Permission denied") {
			t.Errorf("expected stderr in error, got %v", err)
		}
		tu.AssertDirEntries(t, dir, 0)
	})

	t.Run("missing output directory is ErrWrite", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "missing", "combined.mp3")
		var calls [][]string
		codec := NewBeepCodec(stubEncoder(&calls, nil, ""), nil)

		err := codec.Encode(context.Background(), segments(codec), out, 320)
		if !errors.Is(err, shared.ErrWrite) {
			t.Errorf("expected ErrWrite, got %v", err)
		}
		if len(calls) != 0 {
			t.Error("expected ffmpeg not to run")
		}
	})

	t.Run("stages every sample of segments and gaps", func(t *testing.T) {
		dir := t.TempDir()
		src := tu.WriteFile(t, t.TempDir(), "silent.mp3", tu.SilentMP3(200))
		var wavSize int64
		encoder := &Encoder{
			binary: "ffmpeg",
			run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				info, err := os.Stat(args[slices.Index(args, "-i")+1])
				if err != nil {
					return nil, err
				}
				wavSize = info.Size()
				return nil, os.WriteFile(args[len(args)-1], []byte("ID3"), 0o644)
			},
		}
		codec := NewBeepCodec(encoder, nil)

		seg, err := codec.Decode(src)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		parts := []models.Segment{seg, codec.Silence(3 * time.Second), seg}

		if err := codec.Encode(context.Background(), parts, filepath.Join(dir, "combined.mp3"), 320); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}

		// 44 byte header, then 4 bytes per stereo 16-bit sample
		samples := 2*200*tu.FakeSamplesInFrame + 3*int(SampleRate)
		if want := int64(44 + samples*4); wavSize != want {
			t.Errorf("expected WAV of %d bytes, got %d", want, wavSize)
		}
		tu.AssertDirEntries(t, dir, 1)
	})

	t.Run("read-only output is ErrWrite and left intact", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores file permissions")
		}
		dir := t.TempDir()
		out := tu.WriteFile(t, dir, "combined.mp3", []byte("keep me"))
		if err := os.Chmod(out, 0o444); err != nil {
			t.Fatalf("chmod: %v", err)
		}
		var calls [][]string
		codec := NewBeepCodec(stubEncoder(&calls, nil, ""), nil)

		err := codec.Encode(context.Background(), segments(codec), out, 320)
		if !errors.Is(err, shared.ErrWrite) {
			t.Errorf("expected ErrWrite, got %v", err)
		}
		if len(calls) != 0 {
			t.Error("expected ffmpeg not to run")
		}
		if got := tu.MustReadFile(t, out); got != "keep me" {
			t.Errorf("output was replaced: %q", got)
		}
		tu.AssertDirEntries(t, dir, 1)
	})

	t.Run("existing output keeps its mode", func(t *testing.T) {
		dir := t.TempDir()
		out := tu.WriteFile(t, dir, "combined.mp3", []byte("old"))
		if err := os.Chmod(out, 0o600); err != nil {
			t.Fatalf("chmod: %v", err)
		}
		codec := NewBeepCodec(stubEncoder(new([][]string), nil, ""), nil)

		if err := codec.Encode(context.Background(), segments(codec), out, 320); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}

		info, err := os.Stat(out)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
		}
		if got := tu.MustReadFile(t, out); got != "ID3" {
			t.Errorf("expected new content, got %q", got)
		}
	})

	t.Run("symlinked output is written through", func(t *testing.T) {
		dir := t.TempDir()
		target := tu.WriteFile(t, dir, "real.mp3", []byte("old"))
		link := filepath.Join(dir, "link.mp3")
		if err := os.Symlink(target, link); err != nil {
			t.Fatalf("symlink: %v", err)
		}
		codec := NewBeepCodec(stubEncoder(new([][]string), nil, ""), nil)

		if err := codec.Encode(context.Background(), segments(codec), link, 320); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}

		info, err := os.Lstat(link)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			t.Errorf("expected %s to stay a symlink (err %v)", link, err)
		}
		if got := tu.MustReadFile(t, target); got != "ID3" {
			t.Errorf("expected link target to be rewritten, got %q", got)
		}
		tu.AssertDirEntries(t, dir, 2)
	})

	t.Run("directory at output path is ErrWrite", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "combined.mp3")
		if err := os.Mkdir(out, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		var calls [][]string
		codec := NewBeepCodec(stubEncoder(&calls, nil, ""), nil)

		if err := codec.Encode(context.Background(), segments(codec), out, 320); !errors.Is(err, shared.ErrWrite) {
			t.Errorf("expected ErrWrite, got %v", err)
		}
		if len(calls) != 0 {
			t.Error("expected ffmpeg not to run")
		}
	})

	t.Run("foreign segment type", func(t *testing.T) {
		codec := NewBeepCodec(stubEncoder(new([][]string), nil, ""), nil)
		seg := tu.FakeSegment{Length: time.Second}

		if err := codec.Encode(context.Background(), []models.Segment{seg}, filepath.Join(t.TempDir(), "o.mp3"), 320); err == nil {
			t.Error("expected error for unsupported segment")
		}
	})

	t.Run("nil encoder", func(t *testing.T) {
		codec := NewBeepCodec(nil, nil)
		err := codec.Encode(context.Background(), segments(codec), filepath.Join(t.TempDir(), "o.mp3"), 320)
		if !errors.Is(err, shared.ErrEncoder) {
			t.Errorf("expected ErrEncoder, got %v", err)
		}
	})
}

func TestNewEncoderDefaultsBinary(t *testing.T) {
	if e := NewEncoder(""); e.binary != "ffmpeg" {
		t.Errorf("expected ffmpeg, got %s", e.binary)
	}
	if e := NewEncoder("/usr/local/bin/ffmpeg"); e.binary != "/usr/local/bin/ffmpeg" {
		t.Errorf("unexpected binary %s", e.binary)
	}
}
