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

package helpers

// Truncate cuts s to at most maxRunes runes. Notification popups in the
// panel have limited space, so anything longer gets clipped.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
