package tasks

import (
	"fmt"

	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	DecodeTrack Phase = iota
	SkipTrack
	InsertGap
	EncodeOutput
	Done
)

func (p Phase) String() string {
	switch p {
	case DecodeTrack:
		return "decode_track"
	case SkipTrack:
		return "skip_track"
	case InsertGap:
		return "insert_gap"
	case EncodeOutput:
		return "encode_output"
	case Done:
		return "done"
	default:
		return ""
	}
}

func decodeUpdate(step, total int, tr models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DecodeTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Processing: %s", tr.Filename),
	}
}

func skipUpdate(step, total int, tr models.Track, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SkipTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Warning: Could not process file '%s'. Skipping. Error: %v", tr.Filename, err),
	}
}

// gapUpdate reports the gap placed after prev, the last decoded track.
func gapUpdate(step, total int, prev models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertGap,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Added %d seconds of silence after %s", int(Gap.Seconds()), prev.Filename),
	}
}

func encodeUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EncodeOutput,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Saving combined audio to %s...", path),
	}
}

func doneUpdate(result *AssemblyResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Successfully saved combined audio to %s (%s seconds)", result.OutputPath, shared.FormatSeconds(result.TotalDuration)),
	}
}
