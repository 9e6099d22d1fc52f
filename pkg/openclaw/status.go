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

// Package openclaw is the boundary to the local openclaw agent CLI:
// running subcommands, scraping their human-readable output into a
// status record, and the handful of verbs the panel buttons map to.
package openclaw

import "strings"

type Connectivity string

const (
	ConnectivityOnline  Connectivity = "online"
	ConnectivityOffline Connectivity = "offline"
)

// Status is the scraped view of the agent shown on the panel. Every field
// always has a displayable value; "unknown"/"0s"/"none" are the placeholders.
type Status struct {
	Model        string
	Connectivity Connectivity
	Uptime       string
	Session      string
}

func DefaultStatus() Status {
	return Status{
		Model:        "unknown",
		Connectivity: ConnectivityOffline,
		Uptime:       "0s",
		Session:      "none",
	}
}

// ParseStatus scrapes the free-text output of `openclaw status`. The CLI
// prints for humans, not for us, so this is a substring heuristic and not a
// parser: first matching line wins per field, unknown lines are skipped, and
// a format change upstream degrades to the default record instead of failing.
func ParseStatus(raw string) Status {
	status := DefaultStatus()

	modelSet := false
	uptimeSet := false

	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(line)

		if !modelSet &&
			strings.Contains(lower, "sessions") &&
			strings.Contains(lower, "default") {
			if model, ok := tokenAfter(line, "default"); ok {
				status.Model = model
			}
			status.Connectivity = ConnectivityOnline
			modelSet = true
		}

		if !uptimeSet &&
			strings.Contains(lower, "gateway") &&
			strings.Contains(lower, "running") {
			status.Uptime = "running"
			uptimeSet = true
		}

		// Overlaps with the sessions line on current CLI output, but the
		// agents summary has appeared without one, so it stays a separate
		// connectivity signal.
		if strings.Contains(lower, "agents") && strings.Contains(lower, "active") {
			status.Connectivity = ConnectivityOnline
		}
	}

	return status
}

// tokenAfter returns the whitespace-delimited token immediately following
// the first token equal to marker (case-insensitive). Reports false when
// marker is the last token or never appears on its own.
func tokenAfter(line, marker string) (string, bool) {
	fields := strings.Fields(line)
	for i, field := range fields {
		if strings.EqualFold(field, marker) && i+1 < len(fields) {
			return fields[i+1], true
		}
	}
	return "", false
}
