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
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/config"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/openclaw"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/touchportal"
)

// Identifiers registered in entry.tp. The dispatcher matches on the same
// constants the document is built from, so the two cannot drift apart.
const (
	PluginName = "OpenClaw Control"

	categoryID   = config.PluginID + ".main"
	categoryName = "OpenClaw"

	StateCurrentModel = "openclaw_current_model"
	StateAgentStatus  = "openclaw_agent_status"
	StateUptime       = "openclaw_uptime"
	StateSession      = "openclaw_session"

	ActionModelOpus        = "openclaw_model_opus"
	ActionModelSonnet      = "openclaw_model_sonnet"
	ActionModelGPT         = "openclaw_model_gpt"
	ActionModelDeepseek    = "openclaw_model_deepseek"
	ActionModelGemini      = "openclaw_model_gemini"
	ActionSwitchModel      = "openclaw_switch_model"
	ActionResetGateway     = "openclaw_reset_gateway"
	ActionTriggerHeartbeat = "openclaw_trigger_heartbeat"
	ActionKillSubagents    = "openclaw_kill_subagents"
	ActionToggleThinking   = "openclaw_toggle_thinking"

	// ActionDataModel is the data field id carrying the model selector on
	// the parameterized switch action.
	ActionDataModel = "model"

	SettingBinPath      = "openclaw_path"
	SettingWorkspaceDir = "openclaw_workspace"
)

type stateDefinition struct {
	ID      string
	Desc    string
	Default string
}

func stateDefinitions() []stateDefinition {
	defaults := openclaw.DefaultStatus()
	return []stateDefinition{
		{ID: StateCurrentModel, Desc: "OpenClaw: Current Model", Default: defaults.Model},
		{ID: StateAgentStatus, Desc: "OpenClaw: Agent Status", Default: string(defaults.Connectivity)},
		{ID: StateUptime, Desc: "OpenClaw: Uptime", Default: defaults.Uptime},
		{ID: StateSession, Desc: "OpenClaw: Session", Default: defaults.Session},
	}
}

// BuildEntry assembles the registration document the panel loads. Written
// out by `openclawtp -entry` during packaging.
func BuildEntry() *touchportal.Entry {
	states := make([]touchportal.State, 0, len(stateDefinitions()))
	for _, def := range stateDefinitions() {
		states = append(states, touchportal.State{
			ID:      def.ID,
			Type:    "text",
			Desc:    def.Desc,
			Default: def.Default,
		})
	}

	modelChoices := make([]string, 0, len(modelAliases))
	for _, action := range modelAliasOrder {
		modelChoices = append(modelChoices, modelAliases[action])
	}

	actions := []touchportal.Action{
		simpleAction(ActionModelOpus, "Switch to Claude Opus"),
		simpleAction(ActionModelSonnet, "Switch to Claude Sonnet"),
		simpleAction(ActionModelGPT, "Switch to GPT"),
		simpleAction(ActionModelDeepseek, "Switch to DeepSeek"),
		simpleAction(ActionModelGemini, "Switch to Gemini"),
		{
			ID:     ActionSwitchModel,
			Name:   "Switch Model",
			Prefix: categoryName,
			Type:   "communicate",
			Format: "Switch model to {$" + ActionDataModel + "}",
			Data: []touchportal.ActionData{
				{
					ID:           ActionDataModel,
					Type:         "choice",
					Label:        "Model",
					Default:      modelChoices[0],
					ValueChoices: modelChoices,
				},
			},
		},
		simpleAction(ActionResetGateway, "Reset Gateway"),
		simpleAction(ActionTriggerHeartbeat, "Trigger Heartbeat"),
		simpleAction(ActionKillSubagents, "Kill Subagents"),
		simpleAction(ActionToggleThinking, "Toggle Thinking"),
	}

	return &touchportal.Entry{
		SDK:     6,
		Version: 1,
		Name:    PluginName,
		ID:      config.PluginID,
		Settings: []touchportal.Setting{
			{
				Name:    SettingBinPath,
				Type:    "text",
				Default: config.DefaultBinPath,
			},
			{
				Name:    SettingWorkspaceDir,
				Type:    "text",
				Default: "",
			},
		},
		Categories: []touchportal.Category{
			{
				ID:      categoryID,
				Name:    categoryName,
				Actions: actions,
				States:  states,
			},
		},
	}
}

func simpleAction(id, name string) touchportal.Action {
	return touchportal.Action{
		ID:     id,
		Name:   name,
		Prefix: categoryName,
		Type:   "communicate",
		Format: name,
	}
}
