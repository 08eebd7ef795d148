package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/bakerboy448/compose-sanitizer/config"
	"github.com/bakerboy448/compose-sanitizer/redact"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "View or change the sensitive-pattern and safelist settings",
		Commands: []*cli.Command{
			configShowCmd(),
			configSetCmd(),
			configResetCmd(),
		},
	}
}

func configShowCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the active configuration",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			cfg := a.config()

			fmt.Println("Sensitive patterns:")
			for _, p := range cfg.Patterns {
				fmt.Printf("  %s\n", p)
			}
			fmt.Println("Safe keys:")
			for _, k := range cfg.SafeKeys {
				fmt.Printf("  %s\n", k)
			}
			if skipped := redact.New(cfg).Skipped(); len(skipped) > 0 {
				fmt.Println("Skipped (invalid regex):")
				for _, s := range skipped {
					fmt.Printf("  %s\n", s)
				}
			}
			return nil
		},
	}
}

func configSetCmd() *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: "Replace the pattern list and/or the safelist",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "pattern",
				Usage: "Sensitive-key regex (repeatable; replaces the whole list)",
			},
			&cli.StringSliceFlag{
				Name:  "safe-key",
				Usage: "Safelisted key name (repeatable; replaces the whole list)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			patterns := cmd.StringSlice("pattern")
			safeKeys := cmd.StringSlice("safe-key")
			if len(patterns) == 0 && len(safeKeys) == 0 {
				return fmt.Errorf("nothing to set: pass --pattern and/or --safe-key")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			cfg := a.config()
			if len(patterns) > 0 {
				cfg.Patterns = patterns
			}
			if len(safeKeys) > 0 {
				cfg.SafeKeys = safeKeys
			}
			if err := config.Save(a.store, cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			if skipped := redact.New(cfg).Skipped(); len(skipped) > 0 {
				fmt.Println("Warning: these patterns do not compile and will be ignored:")
				for _, s := range skipped {
					fmt.Printf("  %s\n", s)
				}
			}
			return nil
		},
	}
}

func configResetCmd() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Restore the default configuration",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := config.Reset(a.store); err != nil {
				return fmt.Errorf("reset config: %w", err)
			}
			fmt.Println("Configuration reset to defaults.")
			return nil
		},
	}
}
