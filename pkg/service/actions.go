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
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/dontcallmejames/OpenClawTPplugin/pkg/config"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/helpers"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/openclaw"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/touchportal"
)

const (
	// postActionDelay gives the agent a moment to settle before the
	// follow-up status fetch, otherwise the refresh races the command
	// it is reporting on.
	postActionDelay = time.Second

	maxToastRunes = 50

	heartbeatFile   = "HEARTBEAT.md"
	heartbeatMarker = "Heartbeat requested via Touch Portal.\n"
)

// modelAliases maps the one-press model actions to full model ids. The
// parameterized switch action offers the same ids as its choices.
var modelAliases = map[string]string{
	ActionModelOpus:     "anthropic/claude-opus-4",
	ActionModelSonnet:   "anthropic/claude-sonnet-4",
	ActionModelGPT:      "openai/gpt-5",
	ActionModelDeepseek: "deepseek/deepseek-v3.2",
	ActionModelGemini:   "google/gemini-2.5-pro",
}

var modelAliasOrder = []string{
	ActionModelOpus,
	ActionModelSonnet,
	ActionModelGPT,
	ActionModelDeepseek,
	ActionModelGemini,
}

// Dispatcher turns panel actions into agent commands. Stateless apart
// from its collaborators; each action is handled to completion before
// the next event is read.
type Dispatcher struct {
	cfg     *config.Instance
	agent   *openclaw.Client
	display *Display
	panel   Panel
	fs      afero.Fs
	clock   clockwork.Clock
}

func NewDispatcher(
	cfg *config.Instance,
	agent *openclaw.Client,
	display *Display,
	panel Panel,
	fs afero.Fs,
	clock clockwork.Clock,
) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		agent:   agent,
		display: display,
		panel:   panel,
		fs:      fs,
		clock:   clock,
	}
}

// Handle runs one action to completion. Every recognized action is
// followed by a short delay and a status refresh so the panel reflects
// whatever the command changed; unrecognized ids are a full no-op.
func (d *Dispatcher) Handle(ctx context.Context, ev touchportal.Event) {
	log.Info().Msgf("dispatch: action: %s", ev.ActionID)

	switch ev.ActionID {
	case ActionModelOpus, ActionModelSonnet, ActionModelGPT, ActionModelDeepseek, ActionModelGemini:
		d.switchModel(ctx, modelAliases[ev.ActionID])
	case ActionSwitchModel:
		if model := ev.Data[ActionDataModel]; model != "" {
			d.switchModel(ctx, model)
		} else {
			log.Warn().Msg("dispatch: switch model action carried no model value")
		}
	case ActionResetGateway:
		d.resetGateway(ctx)
	case ActionTriggerHeartbeat:
		d.triggerHeartbeat()
	case ActionKillSubagents:
		d.killSubagents(ctx)
	case ActionToggleThinking:
		d.toggleThinking(ctx)
	default:
		log.Debug().Msgf("dispatch: ignoring unknown action: %s", ev.ActionID)
		return
	}

	d.clock.Sleep(postActionDelay)
	d.display.Apply(d.agent.FetchStatus(ctx))
}

func (d *Dispatcher) switchModel(ctx context.Context, model string) {
	res := d.agent.SendMessage(ctx, "/model "+model)
	if !res.OK() {
		log.Error().Msgf("dispatch: model switch failed: %s", failureText(res))
		d.toast("Model switch failed: " + helpers.Truncate(failureText(res), maxToastRunes))
		return
	}
	d.toast("Model switched: " + model)
}

func (d *Dispatcher) resetGateway(ctx context.Context) {
	res := d.agent.GatewayRestart(ctx)
	if !res.OK() {
		log.Error().Msgf("dispatch: gateway restart failed: %s", failureText(res))
		d.toast("Restart failed: " + helpers.Truncate(failureText(res), maxToastRunes))
		return
	}
	d.toast("Gateway restart initiated: " + helpers.Truncate(res.Stdout, maxToastRunes))
}

func (d *Dispatcher) triggerHeartbeat() {
	path := filepath.Join(d.cfg.Agent().WorkspaceDir, heartbeatFile)
	if err := afero.WriteFile(d.fs, path, []byte(heartbeatMarker), 0o600); err != nil {
		log.Error().Err(err).Msgf("dispatch: heartbeat write failed: %s", path)
		d.toast("Heartbeat failed")
		return
	}
	log.Info().Msgf("dispatch: heartbeat written: %s", path)
	d.toast("Heartbeat triggered")
}

func (d *Dispatcher) killSubagents(ctx context.Context) {
	res := d.agent.KillSubagents(ctx)
	if !res.OK() {
		log.Error().Msgf("dispatch: subagent kill failed: %s", failureText(res))
		d.toast("Kill failed: " + helpers.Truncate(failureText(res), maxToastRunes))
		return
	}
	d.toast("Subagents killed")
}

func (d *Dispatcher) toggleThinking(ctx context.Context) {
	res := d.agent.SendMessage(ctx, "/reasoning")
	if !res.OK() {
		log.Error().Msgf("dispatch: thinking toggle failed: %s", failureText(res))
		d.toast("Toggle failed: " + helpers.Truncate(failureText(res), maxToastRunes))
		return
	}
	d.toast("Thinking toggled")
}

func (d *Dispatcher) toast(msg string) {
	if err := d.panel.ShowNotification(categoryName, msg); err != nil {
		log.Error().Err(err).Msg("dispatch: notification failed")
	}
}

// failureText picks the most useful line out of a failed command for the
// toast: stderr first, stdout second, the bare exit code as a last resort.
func failureText(res openclaw.Result) string {
	switch {
	case res.Stderr != "":
		return res.Stderr
	case res.Stdout != "":
		return res.Stdout
	default:
		return fmt.Sprintf("exit code %d", res.ExitCode)
	}
}
