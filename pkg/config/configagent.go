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

package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultBinPath        = "/usr/local/bin/openclaw"
	DefaultTimeoutSeconds = 10
)

type Agent struct {
	BinPath        string `toml:"bin_path,omitempty"`
	WorkspaceDir   string `toml:"workspace_dir,omitempty"`
	TimeoutSeconds *int   `toml:"timeout_seconds,omitempty" validate:"omitempty,min=1,max=600"`
}

// AgentSettings is a resolved snapshot of the agent section: every field is
// populated, with defaults filled in for anything unset.
type AgentSettings struct {
	BinPath      string
	WorkspaceDir string
	Timeout      time.Duration
}

func (c *Instance) Agent() AgentSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()

	settings := AgentSettings{
		BinPath:      c.vals.Agent.BinPath,
		WorkspaceDir: c.vals.Agent.WorkspaceDir,
		Timeout:      DefaultTimeoutSeconds * time.Second,
	}
	if c.vals.Agent.TimeoutSeconds != nil {
		settings.Timeout = time.Duration(*c.vals.Agent.TimeoutSeconds) * time.Second
	}
	if settings.BinPath == "" {
		settings.BinPath = DefaultBinPath
	}
	if settings.WorkspaceDir == "" {
		settings.WorkspaceDir = defaultWorkspaceDir()
	}
	return settings
}

// SetAgent applies panel-supplied settings. Empty values keep whatever is
// already configured; the panel sends empty strings for settings the user
// never filled in.
func (c *Instance) SetAgent(binPath, workspaceDir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if binPath != "" {
		c.vals.Agent.BinPath = binPath
	}
	if workspaceDir != "" {
		c.vals.Agent.WorkspaceDir = workspaceDir
	}
}

func defaultWorkspaceDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".openclaw", "workspace")
	}
	return filepath.Join(home, ".openclaw", "workspace")
}
