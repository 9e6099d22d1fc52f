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

	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventInfo        EventType = "info"
	EventSettings    EventType = "settings"
	EventAction      EventType = "action"
	EventClosePlugin EventType = "closePlugin"
)

// Event is one decoded message from the panel runtime. Only the fields
// relevant to the event type are populated.
type Event struct {
	Type     EventType
	ActionID string
	Data     map[string]string
	Settings map[string]string
}

// message is the superset wire shape of every inbound frame we care about.
// The panel sends settings as an array of single-key objects, under
// "settings" on the info frame and "values" on settings-change frames.
type message struct {
	Type     string           `json:"type"`
	ActionID string           `json:"actionId"`
	Data     []actionData     `json:"data"`
	Settings []map[string]any `json:"settings"`
	Values   []map[string]any `json:"values"`
}

type actionData struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// decodeEvent turns one socket line into an Event. Frames we don't handle
// (broadcasts, pairing acks, future message types) report ok=false.
func decodeEvent(line []byte) (Event, bool) {
	var msg message
	if err := json.Unmarshal(line, &msg); err != nil {
		log.Warn().Err(err).Msg("touchportal: skipping undecodable frame")
		return Event{}, false
	}

	switch EventType(msg.Type) {
	case EventInfo:
		return Event{
			Type:     EventInfo,
			Settings: flattenSettings(msg.Settings),
		}, true
	case EventSettings:
		return Event{
			Type:     EventSettings,
			Settings: flattenSettings(msg.Values),
		}, true
	case EventAction:
		data := make(map[string]string, len(msg.Data))
		for _, item := range msg.Data {
			data[item.ID] = item.Value
		}
		return Event{
			Type:     EventAction,
			ActionID: msg.ActionID,
			Data:     data,
		}, true
	case EventClosePlugin:
		return Event{Type: EventClosePlugin}, true
	default:
		log.Debug().Msgf("touchportal: ignoring %q frame", msg.Type)
		return Event{}, false
	}
}

// flattenSettings merges the panel's array-of-single-key-objects settings
// encoding into one map. Later entries win on duplicate keys.
func flattenSettings(entries []map[string]any) map[string]string {
	flat := make(map[string]string, len(entries))
	for _, entry := range entries {
		for key, value := range entry {
			if s, ok := value.(string); ok {
				flat[key] = s
				continue
			}
			flat[key] = fmt.Sprint(value)
		}
	}
	return flat
}

// Outbound frames.

type pairMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type stateUpdateMessage struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Value string `json:"value"`
}

type createStateMessage struct {
	Type         string `json:"type"`
	ID           string `json:"id"`
	Desc         string `json:"desc"`
	DefaultValue string `json:"defaultValue"`
}

type notificationOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type showNotificationMessage struct {
	Type           string               `json:"type"`
	NotificationID string               `json:"notificationId"`
	Title          string               `json:"title"`
	Msg            string               `json:"msg"`
	Options        []notificationOption `json:"options"`
}
