/*
OpenClaw Touch Portal Plugin
Copyright (c) 2026 The OpenClawTPplugin Contributors.
SPDX-License-Identifier: GPL-3.0-or-later

This file is part of the OpenClaw Touch Portal Plugin.

The OpenClaw Touch Portal Plugin is free software: you can redistribute
it and/or modify it under the terms of the GNU General Public License as
published by the Free Software Foundation, either version 3 of the
License, or (at your option) any later version.

The OpenClaw Touch Portal Plugin is distributed in the hope that it will
be useful, but WITHOUT ANY WARRANTY; without even the implied warranty
of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the OpenClaw Touch Portal Plugin.  If not, see
<http://www.gnu.org/licenses/>.
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/dontcallmejames/OpenClawTPplugin/pkg/config"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/helpers"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/helpers/command"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/openclaw"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/service"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/touchportal"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	dataDir := flag.String(
		"data",
		"",
		"override the config and log directory",
	)
	printEntry := flag.Bool(
		"entry",
		false,
		"print the entry.tp document and exit",
	)
	showVersion := flag.Bool(
		"version",
		false,
		"print version and exit",
	)
	verbose := flag.Bool(
		"verbose",
		false,
		"also log to stderr",
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", config.AppName, config.AppVersion)
		return nil
	}

	if *printEntry {
		data, err := service.BuildEntry().JSON()
		if err != nil {
			return fmt.Errorf("error building entry document: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	dir := *dataDir
	if dir == "" {
		dir = filepath.Join(xdg.DataHome, config.AppName)
	}

	var logWriters []io.Writer
	if *verbose {
		logWriters = append(logWriters, os.Stderr)
	}
	if err := helpers.InitLogging(dir, logWriters); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(dir, config.BaseDefaults)
	if err != nil {
		log.Error().Err(err).Msg("error loading config")
		return fmt.Errorf("error loading config: %w", err)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Info().Msgf("%s v%s starting", config.AppName, config.AppVersion)

	panel, err := touchportal.Dial(cfg.TouchPortalAddr())
	if err != nil {
		log.Error().Err(err).Msg("error connecting to touch portal")
		return fmt.Errorf("error connecting to touch portal: %w", err)
	}
	defer func() {
		if closeErr := panel.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing touch portal connection")
		}
	}()

	if err := panel.Pair(config.PluginID); err != nil {
		log.Error().Err(err).Msg("error pairing with touch portal")
		return fmt.Errorf("error pairing with touch portal: %w", err)
	}

	agent := openclaw.NewClient(openclaw.NewRunner(cfg, &command.RealExecutor{}))
	svc := service.New(cfg, panel, agent, afero.NewOsFs(), clockwork.NewRealClock())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	runErr := make(chan error, 1)
	go func() {
		runErr <- svc.Run(ctx)
	}()

	select {
	case sig := <-sigs:
		log.Info().Msgf("received signal: %s", sig)
		cancel()
		if err := <-runErr; err != nil {
			return fmt.Errorf("service stopped: %w", err)
		}
	case err := <-runErr:
		if err != nil {
			log.Error().Err(err).Msg("service stopped with error")
			return fmt.Errorf("service stopped: %w", err)
		}
	}

	log.Info().Msg("service stopped")
	return nil
}
