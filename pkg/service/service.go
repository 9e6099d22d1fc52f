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

// Package service owns the plugin's event loop: it reads panel events,
// applies settings, dispatches actions to the agent and keeps the panel's
// states fed, both on demand and from a background poller.
package service

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/dontcallmejames/OpenClawTPplugin/pkg/config"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/openclaw"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/touchportal"
)

// Panel is the slice of the Touch Portal connection the service needs.
// *touchportal.Client satisfies it; tests swap in fakes.
type Panel interface {
	Events() <-chan touchportal.Event
	UpdateState(id, value string) error
	CreateState(id, desc, defaultValue string) error
	ShowNotification(title, msg string) error
}

type Service struct {
	cfg        *config.Instance
	panel      Panel
	agent      *openclaw.Client
	display    *Display
	dispatcher *Dispatcher
	clock      clockwork.Clock
	stopPoller func()
}

func New(
	cfg *config.Instance,
	panel Panel,
	agent *openclaw.Client,
	fs afero.Fs,
	clock clockwork.Clock,
) *Service {
	display := NewDisplay(panel)
	return &Service{
		cfg:        cfg,
		panel:      panel,
		agent:      agent,
		display:    display,
		dispatcher: NewDispatcher(cfg, agent, display, panel, fs, clock),
		clock:      clock,
	}
}

// Run processes panel events until the context is cancelled, the panel
// asks the plugin to close, or the connection drops. Actions are handled
// inline: the loop reads the next event only once the previous action has
// finished and its follow-up refresh has been pushed.
func (s *Service) Run(ctx context.Context) error {
	defer func() {
		if s.stopPoller != nil {
			s.stopPoller()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("service: shutting down")
			return nil
		case ev, ok := <-s.panel.Events():
			if !ok {
				return errors.New("touch portal connection lost")
			}
			s.handleEvent(ctx, ev)
			if ev.Type == touchportal.EventClosePlugin {
				return nil
			}
		}
	}
}

func (s *Service) handleEvent(ctx context.Context, ev touchportal.Event) {
	switch ev.Type {
	case touchportal.EventInfo:
		s.onInfo(ctx, ev)
	case touchportal.EventSettings:
		s.applySettings(ev.Settings)
	case touchportal.EventAction:
		s.dispatcher.Handle(ctx, ev)
	case touchportal.EventClosePlugin:
		log.Info().Msg("service: panel requested shutdown")
	}
}

// onInfo runs once pairing completes: settings first so the initial fetch
// uses them, then states, then the poller, then an immediate refresh. The
// poller survives later info events; only the first one starts it.
func (s *Service) onInfo(ctx context.Context, ev touchportal.Event) {
	log.Info().Msg("service: paired with touch portal")

	s.applySettings(ev.Settings)
	s.createStates()
	s.display.Connecting()

	if s.stopPoller == nil {
		poller := NewPoller(s.clock, s.cfg.PollInterval(), s.refresh)
		s.stopPoller = poller.Start(ctx)
	}

	s.refresh(ctx)
}

// applySettings folds panel-supplied settings into the running config.
// Absent or blank values keep whatever is already set. Panel settings are
// not written back to the config file; the panel remains their owner.
func (s *Service) applySettings(settings map[string]string) {
	if len(settings) == 0 {
		return
	}
	s.cfg.SetAgent(settings[SettingBinPath], settings[SettingWorkspaceDir])
	agent := s.cfg.Agent()
	log.Info().Msgf("service: agent settings: bin=%s workspace=%s", agent.BinPath, agent.WorkspaceDir)
}

func (s *Service) createStates() {
	for _, def := range stateDefinitions() {
		if err := s.panel.CreateState(def.ID, def.Desc, def.Default); err != nil {
			log.Error().Err(err).Msgf("service: state create failed: %s", def.ID)
		}
	}
}

func (s *Service) refresh(ctx context.Context) {
	s.display.Apply(s.agent.FetchStatus(ctx))
}
