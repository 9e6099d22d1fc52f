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

// Package touchportal speaks the Touch Portal plugin socket protocol:
// newline-delimited JSON over a local TCP connection.
package touchportal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/dontcallmejames/OpenClawTPplugin/pkg/helpers/syncutil"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	dialTimeout = 5 * time.Second

	// maxFrameSize bounds a single socket line. Panel frames are tiny;
	// anything bigger means we're not talking to Touch Portal.
	maxFrameSize = 1024 * 1024
)

// Client is one paired connection to the panel runtime. Events() delivers
// decoded inbound frames until the socket dies, then closes; channel
// closure is the connection-loss signal.
type Client struct {
	conn   net.Conn
	events chan Event
	done   chan struct{}
	mu     syncutil.Mutex
}

func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to dial touch portal at %s: %w", addr, err)
	}

	client := &Client{
		conn:   conn,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	go client.readLoop()

	log.Info().Msgf("touchportal: connected to %s", addr)
	return client, nil
}

func (c *Client) Events() <-chan Event {
	return c.events
}

// Pair registers the plugin id with the panel. Must be the first frame
// after connecting; the panel drops unpaired connections.
func (c *Client) Pair(pluginID string) error {
	return c.send(pairMessage{Type: "pair", ID: pluginID})
}

func (c *Client) UpdateState(id, value string) error {
	return c.send(stateUpdateMessage{Type: "stateUpdate", ID: id, Value: value})
}

func (c *Client) CreateState(id, desc, defaultValue string) error {
	return c.send(createStateMessage{
		Type:         "createState",
		ID:           id,
		Desc:         desc,
		DefaultValue: defaultValue,
	})
}

func (c *Client) ShowNotification(title, msg string) error {
	return c.send(showNotificationMessage{
		Type:           "showNotification",
		NotificationID: uuid.New().String(),
		Title:          title,
		Msg:            msg,
		Options: []notificationOption{
			{ID: "dismiss", Title: "Dismiss"},
		},
	})
}

func (c *Client) Close() error {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("failed to close touch portal connection: %w", err)
	}
	return nil
}

// send writes one frame. Writes are serialized so concurrent state pushes
// can't interleave bytes on the socket.
func (c *Client) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	payload = append(payload, '\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.conn.Write(payload); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

func (c *Client) readLoop() {
	defer close(c.events)

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		event, ok := decodeEvent([]byte(line))
		if !ok {
			continue
		}

		select {
		case c.events <- event:
		case <-c.done:
			return
		}
	}

	select {
	case <-c.done:
		// closed locally, a read error here is expected
	default:
		if err := scanner.Err(); err != nil {
			log.Error().Err(err).Msg("touchportal: socket read failed")
		} else {
			log.Info().Msg("touchportal: socket closed by panel")
		}
	}
}
