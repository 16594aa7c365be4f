// Package main is the entry point for the chatcomplete CLI application.
package main

import (
	"context"
	"fmt"
	"os"

	cccli "github.com/NikitaCOEUR/chatcomplete/internal/cli"
	"github.com/NikitaCOEUR/chatcomplete/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "chatcomplete",
		Usage:                 "Complete words from recent chat history",
		Version:               version.String(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("CHATCOMPLETE_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (defaults to the global config, if any)",
				Sources: cli.EnvVars("CHATCOMPLETE_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "Run the completion action on an input line and print the result",
				ArgsUsage: "LOG...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Input line to complete",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "cursor",
						Value: -1,
						Usage: "Cursor position in characters (end of line if negative)",
					},
					&cli.IntFlag{
						Name:    "steps",
						Aliases: []string{"n"},
						Value:   1,
						Usage:   "Number of times the action is triggered",
					},
					&cli.BoolFlag{
						Name:    "reverse",
						Aliases: []string{"r"},
						Usage:   "Start from the oldest candidate",
					},
					&cli.StringFlag{
						Name:  "view",
						Usage: "Log to complete from (file name, first log by default)",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print every step",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := cccli.Complete(cccli.CompleteParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						Logs:       cmd.Args().Slice(),
						View:       cmd.String("view"),
						Input:      cmd.String("input"),
						Cursor:     int(cmd.Int("cursor")),
						Steps:      int(cmd.Int("steps")),
						Reverse:    cmd.Bool("reverse"),
						Verbose:    cmd.Bool("verbose"),
						Out:        cmd.Root().Writer,
					})
					return err
				},
			},
			{
				Name:      "chat",
				Usage:     "Open channel logs in an interactive client with completion",
				ArgsUsage: "LOG...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-follow",
						Usage: "Do not reload logs when they change on disk",
					},
					&cli.StringFlag{
						Name:    "log-file",
						Usage:   "Write logs to this file",
						Sources: cli.EnvVars("CHATCOMPLETE_LOG_FILE"),
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return cccli.Chat(cccli.ChatParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						LogFile:    cmd.String("log-file"),
						Logs:       cmd.Args().Slice(),
						NoFollow:   cmd.Bool("no-follow"),
					})
				},
			},
			{
				Name:      "status",
				Usage:     "Show the effective configuration and a summary of the given logs",
				ArgsUsage: "[LOG...]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return cccli.Status(cccli.StatusParams{
						ConfigPath: cmd.String("config"),
						Logs:       cmd.Args().Slice(),
					})
				},
			},
			{
				Name:  "init",
				Usage: "Create a sample config file in the current folder or the global config",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "global",
						Aliases: []string{"g"},
						Usage:   "Create global config file instead of local",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return cccli.Init(cmd.Bool("global"))
				},
			},
			{
				Name:  "edit",
				Usage: "Edit the config file given with --config, or the global config",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return cccli.Edit(cmd.String("config"))
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.String("config")
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return cccli.Validate(configPath)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return cccli.Schema(outputPath)
				},
			},
		},
	}
}
