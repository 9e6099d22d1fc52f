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

package service

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const pollerStopTimeout = 2 * time.Second

// Poller runs refresh on a fixed interval until stopped. The first
// refresh is the ticker's, not an immediate one; callers that want a
// status straight away do their own fetch before starting the poller.
type Poller struct {
	clock    clockwork.Clock
	refresh  func(context.Context)
	interval time.Duration
}

func NewPoller(clock clockwork.Clock, interval time.Duration, refresh func(context.Context)) *Poller {
	return &Poller{
		clock:    clock,
		refresh:  refresh,
		interval: interval,
	}
}

// Start launches the poll loop and returns a stop function. Stop cancels
// the loop and waits up to pollerStopTimeout for an in-flight refresh to
// finish before giving up on it.
func (p *Poller) Start(ctx context.Context) func() {
	pollCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		p.run(pollCtx)
	}()

	return func() {
		cancel()
		select {
		case <-done:
		case <-time.After(pollerStopTimeout):
			log.Warn().Msg("poller: refresh still running at shutdown, abandoning it")
		}
	}
}

func (p *Poller) run(ctx context.Context) {
	log.Debug().Msgf("poller: started with interval %s", p.interval)
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			p.refresh(ctx)
		case <-ctx.Done():
			log.Debug().Msg("poller: stopped")
			return
		}
	}
}
