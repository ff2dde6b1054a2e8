package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mp3x/internal/models"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
)

// SampleRate is the rate every segment is normalised to.
const SampleRate = beep.SampleRate(44100)

// resampleQuality is passed to [beep.Resample].
const resampleQuality = 4

// Format is the PCM layout shared by all segments.
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// Segment is decoded audio held in memory, or a run of silence.
type Segment struct {
	buffer  *beep.Buffer
	silence int
}

var _ models.Segment = (*Segment)(nil)

// Len returns the number of samples in the segment.
func (s *Segment) Len() int {
	if s.buffer != nil {
		return s.buffer.Len()
	}
	return s.silence
}

func (s *Segment) Duration() time.Duration {
	return SampleRate.D(s.Len())
}

// Streamer returns a fresh streamer over the whole segment.
func (s *Segment) Streamer() beep.Streamer {
	if s.buffer != nil {
		return s.buffer.Streamer(0, s.buffer.Len())
	}
	return beep.Silence(s.silence)
}

// BeepCodec decodes with beep and encodes through an [Encoder].
type BeepCodec struct {
	encoder *Encoder
	logger  *log.Logger
}

// NewBeepCodec creates a codec that writes MP3s with the given encoder.
func NewBeepCodec(encoder *Encoder, logger *log.Logger) *BeepCodec {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &BeepCodec{encoder: encoder, logger: logger}
}

// Decode reads the MP3 at path fully into memory.
func (c *BeepCodec) Decode(path string) (models.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode mp3: %w", err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != SampleRate {
		c.logger.Debug("resampling", "file", path, "from", format.SampleRate, "to", SampleRate)
		src = beep.Resample(resampleQuality, format.SampleRate, SampleRate, streamer)
	}

	buffer := beep.NewBuffer(Format)
	buffer.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audio frames: %w", err)
	}
	if buffer.Len() == 0 {
		return nil, fmt.Errorf("no audio frames in %s", path)
	}

	return &Segment{buffer: buffer}, nil
}

// Silence returns d worth of silent samples.
func (c *BeepCodec) Silence(d time.Duration) models.Segment {
	return &Segment{silence: SampleRate.N(d)}
}
