// OpenClaw Touch Portal Plugin
// Copyright (c) 2026 The OpenClawTPplugin Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of the OpenClaw Touch Portal plugin.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package command provides an abstraction over exec.Command for testability.
package command

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Output holds the separated results of a completed process.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs external commands and captures their output.
// This allows agent invocations to be mocked in tests without executing
// real system commands.
type Executor interface {
	// Capture runs a command in dir (process working directory, may be
	// empty) and waits for it to exit. A non-zero exit status is reported
	// through Output.ExitCode, not through the error: an error return means
	// the process could not be run at all (executable missing, context done
	// before completion, start failure).
	Capture(ctx context.Context, dir, name string, args ...string) (Output, error)
}

// RealExecutor uses actual exec.Command to execute system commands.
// This is the production implementation used in normal operation.
type RealExecutor struct{}

// Capture runs a system command using exec.CommandContext. Spawned
// processes never open a console window (relevant on Windows, where the
// panel runtime is a desktop app).
func (*RealExecutor) Capture(ctx context.Context, dir, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	hideWindow(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The process ran and exited; exit status is a result, not a failure.
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err //nolint:wrapcheck // wrapping exec errors loses important context
}
