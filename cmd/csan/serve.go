package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/bakerboy448/compose-sanitizer/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the sanitizer as a local web UI",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
				Value: 8080,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return server.New(a.config(), int(cmd.Int("port"))).ListenAndServe()
		},
	}
}
