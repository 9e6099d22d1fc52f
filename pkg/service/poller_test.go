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
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_RefreshesEachTick(t *testing.T) {
	t.Parallel()

	fakeClock := clockwork.NewFakeClock()
	var calls atomic.Int32
	poller := NewPoller(fakeClock, 30*time.Second, func(context.Context) { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := poller.Start(ctx)
	defer stop()

	// Wait for the loop to reach its select before driving the clock.
	require.NoError(t, fakeClock.BlockUntilContext(ctx, 1))
	assert.Equal(t, int32(0), calls.Load(), "no refresh before the first tick")

	fakeClock.Advance(30 * time.Second)
	require.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 10*time.Millisecond)

	fakeClock.Advance(30 * time.Second)
	require.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestPoller_NoTickBeforeInterval(t *testing.T) {
	t.Parallel()

	fakeClock := clockwork.NewFakeClock()
	var calls atomic.Int32
	poller := NewPoller(fakeClock, 30*time.Second, func(context.Context) { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := poller.Start(ctx)
	defer stop()

	require.NoError(t, fakeClock.BlockUntilContext(ctx, 1))

	fakeClock.Advance(29 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestPoller_StopEndsLoop(t *testing.T) {
	t.Parallel()

	fakeClock := clockwork.NewFakeClock()
	var calls atomic.Int32
	poller := NewPoller(fakeClock, time.Second, func(context.Context) { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := poller.Start(ctx)
	require.NoError(t, fakeClock.BlockUntilContext(ctx, 1))

	stop()

	fakeClock.Advance(5 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load(), "no refresh after stop")
}

func TestPoller_StopWaitsForInFlightRefresh(t *testing.T) {
	t.Parallel()

	fakeClock := clockwork.NewFakeClock()
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	poller := NewPoller(fakeClock, time.Second, func(context.Context) {
		close(started)
		<-release
		finished.Store(true)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := poller.Start(ctx)
	require.NoError(t, fakeClock.BlockUntilContext(ctx, 1))

	fakeClock.Advance(time.Second)
	<-started

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	stop()
	assert.True(t, finished.Load(), "stop returned before the in-flight refresh finished")
}

func TestPoller_ParentContextCancelStopsLoop(t *testing.T) {
	t.Parallel()

	fakeClock := clockwork.NewFakeClock()
	var calls atomic.Int32
	poller := NewPoller(fakeClock, time.Second, func(context.Context) { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	stop := poller.Start(ctx)
	require.NoError(t, fakeClock.BlockUntilContext(ctx, 1))

	cancel()
	stop()

	fakeClock.Advance(5 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
