package main

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/bakerboy448/compose-sanitizer/render/terminal"
	"github.com/bakerboy448/compose-sanitizer/sanitize"
)

func sanitizeCmd() *cli.Command {
	return &cli.Command{
		Name:      "sanitize",
		Usage:     "Sanitize a compose file (or console output containing one)",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: terminal, yaml, markdown, html, json",
				Value:   "terminal",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Also copy the sanitized YAML to the clipboard",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Override terminal width for card layout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			raw, err := readInput(cmd.Args().First())
			if err != nil {
				return err
			}

			res, err := sanitize.Run(raw, a.config())
			if err != nil {
				return err
			}

			rnd, err := a.renderer(cmd.String("output"))
			if err != nil {
				return err
			}
			if t, ok := rnd.(*terminal.Renderer); ok {
				t.Width = int(cmd.Int("width"))
			}

			if err := rnd.Render(os.Stdout, res); err != nil {
				return fmt.Errorf("render: %w", err)
			}

			if cmd.Bool("copy") {
				// Clipboard failure downgrades to a warning, never an error.
				if err := clipboard.WriteAll(res.Output); err != nil {
					log.Warn("copy to clipboard failed", "error", err)
				} else {
					log.Info("sanitized YAML copied to clipboard")
				}
			}

			return nil
		},
	}
}
