/*
 * Copyright 2025 Author(s) of TypeBus
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/typebus/core/pkg/dispatch"
	"github.com/typebus/core/pkg/dispatchglobal"
	"github.com/typebus/core/pkg/metrics"
)

// Event is the interface the demo's message types share; subscribing to it
// shows interface-level (polymorphic) matching.
type Event interface {
	Kind() string
}

// UserJoined is published when a user enters the room.
type UserJoined struct {
	Name string
}

// Kind implements Event.
func (UserJoined) Kind() string { return "user_joined" }

// UserLeft is published when a user leaves the room.
type UserLeft struct {
	Name string
}

// Kind implements Event.
func (UserLeft) Kind() string { return "user_left" }

// runDemo wires a dispatcher through the global slot, registers one
// subscription of each flavor under a Scope, publishes count join/leave
// rounds plus a "ping" value message, and tears everything down.
func runDemo(log *slog.Logger, count int) error {
	d := dispatch.New(
		dispatch.WithLogger(log),
		dispatch.WithObserver(metrics.NewObserver()),
	)
	dispatchglobal.Set(d)
	defer dispatchglobal.Clear()

	scope := dispatch.NewScope()
	defer scope.Close()

	// Exact type: fires for UserJoined only, and answers it with a greeting
	// message published from inside the handler. The greeting is queued and
	// delivered after the UserJoined delivery finishes.
	scope.Add(dispatch.Subscribe(d, func(e UserJoined) {
		log.Info("User joined", "name", e.Name)
		d.Publish(fmt.Sprintf("welcome, %s", e.Name))
	}))

	// Interface: fires for both UserJoined and UserLeft.
	scope.Add(dispatch.Subscribe(d, func(e Event) {
		log.Debug("Event observed", "kind", e.Kind())
	}))

	// Universal: fires for every message, including the greeting strings.
	scope.Add(dispatch.Subscribe(d, func(msg any) {
		log.Debug("Message dispatched", "message", fmt.Sprintf("%v", msg))
	}))

	// Value: fires only for the exact string "ping".
	scope.Add(dispatch.SubscribeValue(d, "ping", func() {
		log.Info("Pong")
	}))

	start := time.Now()
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("user-%d", i+1)
		dispatchglobal.Publish(UserJoined{Name: name})
		dispatchglobal.Publish(UserLeft{Name: name})
	}
	dispatchglobal.Publish("ping")
	metrics.MeasureSince([]string{"demo", "publish"}, start)

	log.Info("Demo complete", "rounds", count)
	return nil
}
