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

package touchportal

import (
	"encoding/json"
	"fmt"
)

// Entry is the plugin registration document (entry.tp) the panel loads to
// learn our actions, states and settings.
type Entry struct {
	Name       string     `json:"name"`
	ID         string     `json:"id"`
	Settings   []Setting  `json:"settings,omitempty"`
	Categories []Category `json:"categories"`
	SDK        int        `json:"sdk"`
	Version    int        `json:"version"`
}

type Setting struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Default  string `json:"default"`
	ReadOnly bool   `json:"readOnly"`
}

type Category struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Actions []Action `json:"actions"`
	States  []State  `json:"states"`
}

type Action struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Prefix string       `json:"prefix"`
	Type   string       `json:"type"`
	Format string       `json:"format,omitempty"`
	Data   []ActionData `json:"data,omitempty"`
}

type ActionData struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Label        string   `json:"label"`
	Default      string   `json:"default"`
	ValueChoices []string `json:"valueChoices,omitempty"`
}

type State struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Desc    string `json:"desc"`
	Default string `json:"default"`
}

// JSON renders the document indented, ready to write out as entry.tp.
func (e *Entry) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry document: %w", err)
	}
	return data, nil
}
