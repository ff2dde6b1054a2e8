package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mp3x/internal/formatter"
	"github.com/desertthunder/mp3x/internal/library"
	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
	"github.com/desertthunder/mp3x/internal/tasks"
	"github.com/desertthunder/mp3x/internal/ui"
	"github.com/urfave/cli/v3"
)

// Combine validates the arguments, lets the user order the folder's MP3 files and combines them.
func (r *Runner) Combine(ctx context.Context, cmd *cli.Command) error {
	if n := cmd.Args().Len(); n != 2 {
		r.writePlain("Usage: %s %s\n", cmd.Name, usageArgs)
		return fmt.Errorf("%w: expected %s, got %d arguments", shared.ErrMissingArgument, usageArgs, n)
	}
	if err := r.configure(cmd.String("config"), cmd.IsSet("config"), cmd.Bool("verbose")); err != nil {
		return err
	}

	return r.combine(ctx, cmd.Args().Get(0), cmd.Args().Get(1), cmd.String("tracklist"))
}

func (r *Runner) combine(ctx context.Context, input, output, tracklist string) error {
	tracks, err := library.Scan(input)
	if err != nil {
		return err
	}
	playlist, err := models.NewPlaylist(tracks)
	if err != nil {
		return err
	}
	r.logger.Debug("scanned input folder", "folder", input, "files", playlist.Len())
	if err := tasks.ValidateOutput(playlist, output); err != nil {
		return err
	}

	logger := shared.WithLogger(r.sessionLogger(), "output", output)
	model := ui.NewModel(ctx, playlist, ui.ModelOpts{
		Input:   input,
		Output:  output,
		Palette: ui.PaletteFromConfig(r.config.UI),
		Probe: func(ctx context.Context, tracks []models.Track) []models.Track {
			return library.Probe(ctx, tracks, logger)
		},
		Logger: logger,
	})

	if err := r.runUI(ctx, model); err != nil {
		return err
	}

	if model.Outcome() != ui.OutcomeCombine {
		logger.Info("user quit without combining")
		r.writePlain("Exiting MP3 combiner.\n")
		return nil
	}

	playlist = model.Playlist()
	r.writeBytes(formatter.ExportOrderText(playlist, output))
	r.writePlain("\n")

	result, err := r.assemble(ctx, playlist, output, logger)
	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writeBytes(formatter.ExportSummaryText(result))
	if timeline := formatter.ExportTimelineText(result); len(timeline) > 0 {
		r.writePlain("\n")
		r.writeBytes(timeline)
	}

	if tracklist != "" {
		path, err := formatter.WriteTimelineCSV(result, tracklist)
		if err != nil {
			return err
		}
		r.writePlain("\nTracklist saved to %s\n", path)
	}

	return nil
}

// assemble runs the [tasks.Assembler] while a goroutine prints its progress.
func (r *Runner) assemble(ctx context.Context, playlist *models.Playlist, output string, logger *log.Logger) (*tasks.AssemblyResult, error) {
	assembler := tasks.NewAssembler(r.resolveCodec(logger), logger)

	// one decode event per track, one skip or gap per track, then encode and done
	progressCh := make(chan tasks.ProgressUpdate, 2*playlist.Len()+2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.DecodeTrack, tasks.SkipTrack, tasks.InsertGap:
				r.writePlain("%s\n", update.Message)
			case tasks.EncodeOutput:
				r.writePlain("\n%s\n", update.Message)
			}
		}
	}()

	result, err := assembler.Assemble(ctx, playlist, output, progressCh)
	close(progressCh)
	<-done

	return result, err
}
