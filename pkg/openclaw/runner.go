// OpenClaw Touch Portal Plugin
// Copyright (c) 2026 The OpenClawTPplugin Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of the OpenClaw Touch Portal Plugin.
//
// The OpenClaw Touch Portal Plugin is free software: you can redistribute
// it and/or modify it under the terms of the GNU General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// The OpenClaw Touch Portal Plugin is distributed in the hope that it will
// be useful, but WITHOUT ANY WARRANTY; without even the implied warranty
// of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with the OpenClaw Touch Portal Plugin.  If not, see
// <http://www.gnu.org/licenses/>.

package openclaw

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/dontcallmejames/OpenClawTPplugin/pkg/config"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

// Result is the outcome of one CLI invocation. Failures to run at all are
// folded in as ExitCode -1 with a human-readable Stderr, so callers deal
// with exactly one shape and check ExitCode before trusting Stdout.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Runner invokes the configured openclaw binary with the configured
// workspace as working directory, bounded by the configured timeout.
type Runner struct {
	cfg      *config.Instance
	executor command.Executor
}

func NewRunner(cfg *config.Instance, executor command.Executor) *Runner {
	return &Runner{
		cfg:      cfg,
		executor: executor,
	}
}

// Run executes one agent subcommand. It never returns an error: anything
// that stopped the command from completing is mapped onto the Result.
// There are no retries; the user re-triggers the action if it failed.
func (r *Runner) Run(ctx context.Context, args ...string) Result {
	agent := r.cfg.Agent()

	log.Debug().Msgf("openclaw: running %s %s", agent.BinPath, strings.Join(args, " "))

	runCtx, cancel := context.WithTimeout(ctx, agent.Timeout)
	defer cancel()

	out, err := r.executor.Capture(runCtx, agent.WorkspaceDir, agent.BinPath, args...)

	// A timed-out process is killed and often surfaces as a plain exit
	// error, so the deadline check has to come before anything else.
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) {
		log.Warn().Msgf("openclaw: command timed out after %s: %v", agent.Timeout, args)
		return Result{
			ExitCode: -1,
			Stderr:   fmt.Sprintf("command timed out after %s", agent.Timeout),
		}
	}

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			log.Warn().Msgf("openclaw: binary not found at %s", agent.BinPath)
			return Result{
				ExitCode: -1,
				Stderr:   fmt.Sprintf("openclaw not found at %s", agent.BinPath),
			}
		}
		log.Error().Err(err).Msgf("openclaw: command failed to run: %v", args)
		return Result{
			ExitCode: -1,
			Stderr:   err.Error(),
		}
	}

	return Result{
		ExitCode: out.ExitCode,
		Stdout:   strings.TrimSpace(out.Stdout),
		Stderr:   strings.TrimSpace(out.Stderr),
	}
}
