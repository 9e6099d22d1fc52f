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

package service

import (
	"github.com/rs/zerolog/log"

	"github.com/dontcallmejames/OpenClawTPplugin/pkg/helpers/syncutil"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/openclaw"
)

// Display mirrors the last known agent status onto the panel's states.
//
// LOCKING RULES
//
// The mutex guards only the stored record. Lock, replace, copy, unlock;
// state pushes to the panel happen outside the lock so a slow socket
// cannot stall readers.
type Display struct {
	panel  Panel
	mu     syncutil.Mutex
	status openclaw.Status
}

func NewDisplay(panel Panel) *Display {
	return &Display{
		panel:  panel,
		status: openclaw.DefaultStatus(),
	}
}

// Apply stores status as the new record and pushes every state to the
// panel. The record is always replaced whole, never field by field.
func (d *Display) Apply(status openclaw.Status) {
	d.mu.Lock()
	d.status = status
	current := d.status
	d.mu.Unlock()

	d.push(StateCurrentModel, current.Model)
	d.push(StateAgentStatus, string(current.Connectivity))
	d.push(StateUptime, current.Uptime)
	d.push(StateSession, current.Session)
}

// Connecting flags the agent status as connecting without touching the
// rest of the record. Shown between pairing and the first status fetch.
func (d *Display) Connecting() {
	d.push(StateAgentStatus, "connecting")
}

// Current returns a copy of the stored record.
func (d *Display) Current() openclaw.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *Display) push(id, value string) {
	if err := d.panel.UpdateState(id, value); err != nil {
		log.Error().Err(err).Msgf("display: state update failed: %s", id)
	}
}
