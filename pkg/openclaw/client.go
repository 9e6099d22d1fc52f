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
	"strings"

	"github.com/rs/zerolog/log"
)

// Client exposes the agent subcommands the panel actually uses.
type Client struct {
	runner *Runner
}

func NewClient(runner *Runner) *Client {
	return &Client{runner: runner}
}

// FetchStatus probes the agent and always returns a displayable record.
// Primary probe is `status`; when that doesn't establish the agent as
// online, `gateway status` is tried as a weaker liveness signal. Neither
// probe failing is an error, it just means offline.
func (c *Client) FetchStatus(ctx context.Context) Status {
	status := DefaultStatus()

	primary := c.runner.Run(ctx, "status")
	if primary.OK() {
		status = ParseStatus(primary.Stdout)
	}
	if status.Connectivity == ConnectivityOnline {
		return status
	}

	log.Debug().Msg("openclaw: status probe not online, trying gateway")

	fallback := c.runner.Run(ctx, "gateway", "status")
	if fallback.OK() && strings.Contains(strings.ToLower(fallback.Stdout), "running") {
		return Status{
			Model:        "unknown",
			Connectivity: ConnectivityOnline,
			Uptime:       "gateway",
			Session:      "gateway",
		}
	}

	return status
}

// SendMessage forwards text to the agent's webchat channel. Slash commands
// like "/model x" and "/reasoning" ride the same verb.
func (c *Client) SendMessage(ctx context.Context, text string) Result {
	return c.runner.Run(ctx, "message", "webchat", text)
}

func (c *Client) GatewayRestart(ctx context.Context) Result {
	return c.runner.Run(ctx, "gateway", "restart")
}

func (c *Client) KillSubagents(ctx context.Context) Result {
	return c.runner.Run(ctx, "subagents", "kill", "all")
}
