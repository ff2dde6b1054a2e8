// package formatter renders the combine order, the output timeline and the run summary as text and CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
	"github.com/desertthunder/mp3x/internal/tasks"
)

// ExportOrderText lists the files in the order they will be combined, followed by the output path.
func ExportOrderText(playlist *models.Playlist, outputPath string) []byte {
	var buf bytes.Buffer

	buf.WriteString("Files will be combined in this order:\n")
	for i, track := range playlist.Tracks() {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, track.Filename))
	}
	buf.WriteString(fmt.Sprintf("\nOutput will be saved to: %s\n", outputPath))

	return buf.Bytes()
}

// ExportTimelineText lists where each decoded track starts in the combined file.
func ExportTimelineText(result *tasks.AssemblyResult) []byte {
	var buf bytes.Buffer
	if len(result.Timeline) == 0 {
		return nil
	}

	buf.WriteString("Timeline:\n")
	for i, placed := range result.Timeline {
		buf.WriteString(fmt.Sprintf("%2d. [%s] %s (%s)\n",
			i+1,
			shared.FormatDuration(placed.Start),
			placed.Track.Label(),
			shared.FormatDuration(placed.Length),
		))
	}

	return buf.Bytes()
}

// ExportSummaryText reports the output file, its total duration and any skipped files.
func ExportSummaryText(result *tasks.AssemblyResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Successfully saved combined audio to %s\n", result.OutputPath))
	buf.WriteString(fmt.Sprintf("Total duration: %s seconds\n", shared.FormatSeconds(result.TotalDuration)))
	buf.WriteString(fmt.Sprintf("Tracks: %d combined, %d skipped\n", len(result.Processed), len(result.Skipped)))

	if len(result.Skipped) > 0 {
		buf.WriteString("\nSkipped files:\n")
		for _, skipped := range result.Skipped {
			buf.WriteString(fmt.Sprintf("  - %s: %v\n", skipped.Track.Filename, skipped.Err))
		}
	}

	return buf.Bytes()
}

// ExportTimelineCSV converts the timeline to CSV with columns: Position, Filename, Title, Artist, Start, Length
//
// Start and Length are in seconds with millisecond precision.
func ExportTimelineCSV(result *tasks.AssemblyResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Filename", "Title", "Artist", "Start", "Length"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, placed := range result.Timeline {
		record := []string{
			strconv.Itoa(i + 1),
			placed.Track.Filename,
			placed.Track.Title,
			placed.Track.Artist,
			strconv.FormatFloat(placed.Start.Seconds(), 'f', 3, 64),
			strconv.FormatFloat(placed.Length.Seconds(), 'f', 3, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteTimelineCSV writes the timeline CSV to path.
//
// Defaults to the output path with a _tracklist.csv suffix.
func WriteTimelineCSV(result *tasks.AssemblyResult, path string) (string, error) {
	if path == "" {
		path = shared.TrimExt(result.OutputPath) + "_tracklist.csv"
	}

	data, err := ExportTimelineCSV(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}
