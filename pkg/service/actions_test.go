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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dontcallmejames/OpenClawTPplugin/pkg/config"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/helpers/command"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/openclaw"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/testing/mocks"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/touchportal"
)

const (
	testBin       = "/usr/bin/openclaw"
	testWorkspace = "/srv/claw"

	onlineStatusText = "Sessions | 1 active · default anthropic/claude-opus-4 (200k ctx)"
)

const testAgentSection = `
[agent]
bin_path = "/usr/bin/openclaw"
workspace_dir = "/srv/claw"
`

// testConfig writes a config file with the given sections and loads it.
func testConfig(t *testing.T, sections string) *config.Instance {
	t.Helper()

	dir := t.TempDir()
	contents := fmt.Sprintf("config_schema = %d\n%s", config.SchemaVersion, sections)
	err := os.WriteFile(filepath.Join(dir, config.CfgFile), []byte(contents), 0o600)
	require.NoError(t, err)

	cfg, err := config.NewConfig(dir, config.BaseDefaults)
	require.NoError(t, err)
	return cfg
}

type dispatchEnv struct {
	cfg        *config.Instance
	exec       *mocks.MockExecutor
	panel      *fakePanel
	display    *Display
	agent      *openclaw.Client
	fs         afero.Fs
	clock      *clockwork.FakeClock
	dispatcher *Dispatcher
}

func newDispatchEnv(t *testing.T) *dispatchEnv {
	t.Helper()

	cfg := testConfig(t, testAgentSection)
	exec := &mocks.MockExecutor{}
	panel := newFakePanel()
	display := NewDisplay(panel)
	memFs := afero.NewMemMapFs()
	fakeClock := clockwork.NewFakeClock()
	agent := openclaw.NewClient(openclaw.NewRunner(cfg, exec))

	return &dispatchEnv{
		cfg:        cfg,
		exec:       exec,
		panel:      panel,
		display:    display,
		agent:      agent,
		fs:         memFs,
		clock:      fakeClock,
		dispatcher: NewDispatcher(cfg, agent, display, panel, memFs, fakeClock),
	}
}

func (env *dispatchEnv) expectRefresh(statusText string) {
	env.exec.On("Capture", mock.Anything, testWorkspace, testBin, []string{"status"}).
		Return(command.Output{Stdout: statusText}, nil).Once()
}

// handle runs one action to completion, driving the fake clock through
// the post-action delay.
func (env *dispatchEnv) handle(t *testing.T, ev touchportal.Event) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		env.dispatcher.Handle(context.Background(), ev)
		close(done)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, env.clock.BlockUntilContext(ctx, 1))
	env.clock.Advance(postActionDelay)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("action did not finish")
	}
}

func actionEvent(id string, data map[string]string) touchportal.Event {
	return touchportal.Event{Type: touchportal.EventAction, ActionID: id, Data: data}
}

func TestDispatcher_ModelAliasActions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		actionID string
		model    string
	}{
		{ActionModelOpus, "anthropic/claude-opus-4"},
		{ActionModelSonnet, "anthropic/claude-sonnet-4"},
		{ActionModelGPT, "openai/gpt-5"},
		{ActionModelDeepseek, "deepseek/deepseek-v3.2"},
		{ActionModelGemini, "google/gemini-2.5-pro"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.actionID, func(t *testing.T) {
			t.Parallel()

			env := newDispatchEnv(t)
			env.exec.On("Capture", mock.Anything, testWorkspace, testBin,
				[]string{"message", "webchat", "/model " + tt.model}).
				Return(command.Output{Stdout: "queued"}, nil).Once()
			env.expectRefresh("Sessions | 1 active · default " + tt.model + " (200k ctx)")

			env.handle(t, actionEvent(tt.actionID, nil))

			env.exec.AssertExpectations(t)
			env.exec.AssertNumberOfCalls(t, "Capture", 2)
			assert.Equal(t, []string{"Model switched: " + tt.model}, env.panel.allToasts())
			assert.Equal(t, tt.model, env.panel.state(StateCurrentModel),
				"the follow-up refresh lands on the panel")
		})
	}
}

func TestDispatcher_SwitchModelUsesProvidedValue(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)
	env.exec.On("Capture", mock.Anything, testWorkspace, testBin,
		[]string{"message", "webchat", "/model mistral/large"}).
		Return(command.Output{Stdout: "queued"}, nil).Once()
	env.expectRefresh(onlineStatusText)

	env.handle(t, actionEvent(ActionSwitchModel, map[string]string{ActionDataModel: "mistral/large"}))

	env.exec.AssertExpectations(t)
	assert.Equal(t, []string{"Model switched: mistral/large"}, env.panel.allToasts())
}

func TestDispatcher_SwitchModelWithoutValueStillRefreshes(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)
	env.expectRefresh(onlineStatusText)

	env.handle(t, actionEvent(ActionSwitchModel, map[string]string{}))

	assert.Empty(t, env.panel.allToasts(), "nothing to confirm, nothing to blame on the agent")
	env.exec.AssertNumberOfCalls(t, "Capture", 1)
}

func TestDispatcher_ModelSwitchFailure(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)
	env.exec.On("Capture", mock.Anything, testWorkspace, testBin,
		[]string{"message", "webchat", "/model openai/gpt-5"}).
		Return(command.Output{Stderr: "no active session", ExitCode: 1}, nil).Once()
	env.expectRefresh(onlineStatusText)

	env.handle(t, actionEvent(ActionModelGPT, nil))

	assert.Equal(t, []string{"Model switch failed: no active session"}, env.panel.allToasts())
}

func TestDispatcher_ResetGateway(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)
	env.exec.On("Capture", mock.Anything, testWorkspace, testBin,
		[]string{"gateway", "restart"}).
		Return(command.Output{Stdout: "Restarting gateway now"}, nil).Once()
	env.expectRefresh(onlineStatusText)

	env.handle(t, actionEvent(ActionResetGateway, nil))

	env.exec.AssertExpectations(t)
	assert.Equal(t, []string{"Gateway restart initiated: Restarting gateway now"}, env.panel.allToasts())
}

func TestDispatcher_FailureToastsAreTruncated(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)
	env.exec.On("Capture", mock.Anything, testWorkspace, testBin,
		[]string{"gateway", "restart"}).
		Return(command.Output{Stderr: strings.Repeat("x", 80), ExitCode: 1}, nil).Once()
	env.expectRefresh(onlineStatusText)

	env.handle(t, actionEvent(ActionResetGateway, nil))

	assert.Equal(t, []string{"Restart failed: " + strings.Repeat("x", 50)}, env.panel.allToasts())
}

func TestDispatcher_FailureToastFallsBackToExitCode(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)
	env.exec.On("Capture", mock.Anything, testWorkspace, testBin,
		[]string{"subagents", "kill", "all"}).
		Return(command.Output{ExitCode: 2}, nil).Once()
	env.expectRefresh(onlineStatusText)

	env.handle(t, actionEvent(ActionKillSubagents, nil))

	assert.Equal(t, []string{"Kill failed: exit code 2"}, env.panel.allToasts())
}

func TestDispatcher_KillSubagents(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)
	env.exec.On("Capture", mock.Anything, testWorkspace, testBin,
		[]string{"subagents", "kill", "all"}).
		Return(command.Output{Stdout: "killed 3"}, nil).Once()
	env.expectRefresh(onlineStatusText)

	env.handle(t, actionEvent(ActionKillSubagents, nil))

	env.exec.AssertExpectations(t)
	assert.Equal(t, []string{"Subagents killed"}, env.panel.allToasts())
}

func TestDispatcher_ToggleThinking(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)
	env.exec.On("Capture", mock.Anything, testWorkspace, testBin,
		[]string{"message", "webchat", "/reasoning"}).
		Return(command.Output{Stdout: "reasoning off"}, nil).Once()
	env.expectRefresh(onlineStatusText)

	env.handle(t, actionEvent(ActionToggleThinking, nil))

	env.exec.AssertExpectations(t)
	assert.Equal(t, []string{"Thinking toggled"}, env.panel.allToasts())
}

func TestDispatcher_HeartbeatWritesMarker(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)
	env.expectRefresh(onlineStatusText)

	env.handle(t, actionEvent(ActionTriggerHeartbeat, nil))

	content, err := afero.ReadFile(env.fs, "/srv/claw/HEARTBEAT.md")
	require.NoError(t, err)
	assert.Equal(t, heartbeatMarker, string(content))
	assert.Equal(t, []string{"Heartbeat triggered"}, env.panel.allToasts())
	// Only the refresh hits the executor; the heartbeat itself is file I/O.
	env.exec.AssertNumberOfCalls(t, "Capture", 1)
}

func TestDispatcher_HeartbeatOverwrites(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)
	err := afero.WriteFile(env.fs, "/srv/claw/HEARTBEAT.md",
		[]byte("stale heartbeat from last week\nwith a second line\n"), 0o600)
	require.NoError(t, err)
	env.expectRefresh(onlineStatusText)

	env.handle(t, actionEvent(ActionTriggerHeartbeat, nil))

	content, err := afero.ReadFile(env.fs, "/srv/claw/HEARTBEAT.md")
	require.NoError(t, err)
	assert.Equal(t, heartbeatMarker, string(content), "old contents are replaced, not appended to")
}

func TestDispatcher_HeartbeatFailureIsGeneric(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)
	roFs := afero.NewReadOnlyFs(env.fs)
	env.dispatcher = NewDispatcher(env.cfg, env.agent, env.display, env.panel, roFs, env.clock)
	env.expectRefresh(onlineStatusText)

	env.handle(t, actionEvent(ActionTriggerHeartbeat, nil))

	assert.Equal(t, []string{"Heartbeat failed"}, env.panel.allToasts())
	// A failed heartbeat is still a handled action, so it still refreshes.
	env.exec.AssertNumberOfCalls(t, "Capture", 1)
}

func TestDispatcher_UnknownActionIsNoOp(t *testing.T) {
	t.Parallel()

	env := newDispatchEnv(t)

	// No clock driving needed: unrecognized ids return before the delay.
	env.dispatcher.Handle(context.Background(), actionEvent("spotify_play", nil))

	env.exec.AssertNotCalled(t, "Capture",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, env.panel.allToasts())
	assert.Empty(t, env.panel.allUpdates())
}
