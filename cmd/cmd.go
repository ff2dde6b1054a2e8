// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

const usageArgs = "<input_folder> <output_file.mp3>"

// rootCommand is the single mp3x command: scan, reorder, combine.
func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "mp3x",
		Usage:     "Reorder the MP3 files of a folder and combine them into one file",
		Version:   "0.1.0",
		ArgsUsage: usageArgs,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   defaultConfigPath,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "tracklist",
				Usage: "Also write a CSV of track start times to this path",
			},
		},
		Action: r.Combine,
	}
}
