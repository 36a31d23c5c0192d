// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// splashctl asks a running bootsplash to hide. Boot actors run it once the
// application is ready to take over the display.
//
// The socket path comes from --socket, then from the config file named by
// --config or BOOTSPLASH_CONFIG, then from the built-in default.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/gogpu/bootsplash/config"
	"github.com/gogpu/bootsplash/control"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	var (
		socketPath string
		configPath string
		command    string
		timeout    time.Duration
	)

	flagSet := pflag.NewFlagSet("splashctl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&socketPath, "socket", "s", "", "control socket path (default from config)")
	flagSet.StringVarP(&configPath, "config", "c", "", "config file (default $"+config.EnvVar+")")
	flagSet.StringVar(&command, "command", control.CommandHideSplash, "raw command to send")
	flagSet.DurationVar(&timeout, "timeout", 5*time.Second, "give up after this long")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	switch rest := flagSet.Args(); {
	case len(rest) == 0, len(rest) == 1 && rest[0] == "hide":
	default:
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	if socketPath == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		socketPath = cfg.Control.Socket
	}
	if socketPath == "" {
		return errors.New("control socket disabled in config; pass --socket")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := control.Send(ctx, socketPath, command); err != nil {
		return fmt.Errorf("sending %s to %s: %w", command, socketPath, err)
	}
	return nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `splashctl hides the boot splash.

Usage:
  splashctl [flags] [hide]

Flags:
%s`, flagSet.FlagUsages())
}
