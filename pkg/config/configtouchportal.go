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
	"net"
	"strconv"
)

const (
	DefaultTouchPortalHost = "127.0.0.1"
	DefaultTouchPortalPort = 12136
)

type TouchPortal struct {
	Port *int   `toml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Host string `toml:"host,omitempty"`
}

func (c *Instance) TouchPortalHost() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.touchPortalHostLocked()
}

// touchPortalHostLocked returns the panel host. Caller must hold mu (read or write).
func (c *Instance) touchPortalHostLocked() string {
	if c.vals.TouchPortal.Host == "" {
		return DefaultTouchPortalHost
	}
	return c.vals.TouchPortal.Host
}

func (c *Instance) TouchPortalPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.touchPortalPortLocked()
}

// touchPortalPortLocked returns the panel port. Caller must hold mu (read or write).
func (c *Instance) touchPortalPortLocked() int {
	if c.vals.TouchPortal.Port == nil {
		return DefaultTouchPortalPort
	}
	return *c.vals.TouchPortal.Port
}

func (c *Instance) TouchPortalAddr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return net.JoinHostPort(
		c.touchPortalHostLocked(),
		strconv.Itoa(c.touchPortalPortLocked()),
	)
}
