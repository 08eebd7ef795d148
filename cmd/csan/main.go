package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:  "csan",
		Usage: "Redact secrets from Docker Compose files and re-render them for sharing",
		Description: `
  __ ___ __ _ _ __
 / _/ __/ _' | '_ \
| (__\__ \ (_| | | | |
 \___|___/\__,_|_| |_|

 Paste-friendly compose sanitizer: strips secrets, noise, and home paths.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "error",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			sanitizeCmd(),
			serveCmd(),
			configCmd(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
