package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mp3x/internal/audio"
	"github.com/desertthunder/mp3x/internal/shared"
	"github.com/desertthunder/mp3x/internal/tasks"
	"github.com/desertthunder/mp3x/internal/ui"
)

const defaultConfigPath = "config.toml"

// UIFunc runs the interactive list until the user combines or quits.
type UIFunc func(ctx context.Context, model *ui.Model) error

// Runner holds all dependencies for the CLI and provides the command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	codec  tasks.Codec
	runUI  UIFunc
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	Codec  tasks.Codec // Defaults to the beep + ffmpeg codec built from Config
	RunUI  UIFunc      // Defaults to a full-screen bubbletea program
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.RunUI == nil {
		opts.RunUI = runProgram
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		codec:  opts.Codec,
		runUI:  opts.RunUI,
	}
}

func runProgram(ctx context.Context, model *ui.Model) error {
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// configure loads the config file and applies the log level.
//
// A missing file at the default path is not an error; an explicit path must exist.
func (r *Runner) configure(path string, explicit, verbose bool) error {
	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil || explicit:
			config, err := shared.LoadConfig(path)
			if err != nil {
				return err
			}
			r.config = config
		case !errors.Is(statErr, os.ErrNotExist):
			r.logger.Warn("ignoring config file", "path", path, "err", statErr)
		}
	}

	level := shared.ParseLogLevel(r.config.Log.Level)
	if verbose {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)
	return nil
}

// sessionLogger returns the logger used while the TUI owns the terminal.
//
// Logs go to the configured file so they do not tear the rendered list; without one, the runner's logger is used.
func (r *Runner) sessionLogger() *log.Logger {
	if r.config.Log.File == "" {
		return r.logger
	}
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		r.logger.Warn("falling back to stderr logging", "err", err)
		return r.logger
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	return fileLogger
}

// resolveCodec returns the injected codec or builds the production one from config.
func (r *Runner) resolveCodec(logger *log.Logger) tasks.Codec {
	if r.codec != nil {
		return r.codec
	}
	return audio.NewBeepCodec(audio.NewEncoder(r.config.Encoder.FFmpegPath), logger)
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
