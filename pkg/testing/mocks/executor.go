// OpenClaw Touch Portal Plugin
// Copyright (c) 2026 The OpenClawTPplugin Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of the OpenClaw Touch Portal plugin.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package mocks provides testify mocks shared across package tests.
package mocks

import (
	"context"

	"github.com/dontcallmejames/OpenClawTPplugin/pkg/helpers/command"
	"github.com/stretchr/testify/mock"
)

// MockExecutor is a testify mock for command.Executor. It lets tests verify
// exact agent invocations without running real system commands.
//
// Note args is matched as []string, not variadic:
//
//	exec := &mocks.MockExecutor{}
//	exec.On("Capture", mock.Anything, "/workspace", "/usr/local/bin/openclaw",
//		[]string{"status"}).Return(command.Output{Stdout: "..."}, nil)
type MockExecutor struct {
	mock.Mock
}

// Capture mocks a captured command invocation.
func (m *MockExecutor) Capture(ctx context.Context, dir, name string, args ...string) (command.Output, error) {
	called := m.Called(ctx, dir, name, args)
	out, _ := called.Get(0).(command.Output)
	//nolint:wrapcheck // mock returns are asserted by the caller
	return out, called.Error(1)
}
