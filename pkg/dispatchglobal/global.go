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

// Package dispatchglobal holds an optional process-wide dispatcher slot and
// forwards to it. It exists for code that cannot carry a dispatcher reference
// of its own; everything else should take a *dispatch.Dispatcher (or a
// dispatchiface.Publisher) explicitly.
//
// Every forwarder is a silent no-op while no dispatcher is set: Publish drops
// the message, the subscribe forwarders return a nil *dispatch.Subscription
// (whose Cancel is itself a no-op). The slot follows the same single-threaded
// model as the dispatcher and is not synchronized.
package dispatchglobal

import "github.com/typebus/core/pkg/dispatch"

var instance *dispatch.Dispatcher

// Set makes d the process-wide dispatcher.
func Set(d *dispatch.Dispatcher) {
	instance = d
}

// Clear empties the slot; subsequent forwarded calls become no-ops.
func Clear() {
	instance = nil
}

// Instance returns the current process-wide dispatcher, or nil when none is
// set.
func Instance() *dispatch.Dispatcher {
	return instance
}

// Publish forwards to the current dispatcher's Publish.
func Publish(msg any) {
	if instance == nil {
		return
	}
	instance.Publish(msg)
}

// Subscribe forwards to dispatch.Subscribe on the current dispatcher.
func Subscribe[T any](handler func(T)) *dispatch.Subscription {
	if instance == nil {
		return nil
	}
	return dispatch.Subscribe(instance, handler)
}

// Unsubscribe forwards to dispatch.Unsubscribe on the current dispatcher.
func Unsubscribe[T any](handler func(T)) {
	if instance == nil {
		return
	}
	dispatch.Unsubscribe(instance, handler)
}

// SubscribeValue forwards to dispatch.SubscribeValue on the current
// dispatcher.
func SubscribeValue[T comparable](value T, handler func()) *dispatch.Subscription {
	if instance == nil {
		return nil
	}
	return dispatch.SubscribeValue(instance, value, handler)
}

// UnsubscribeValue forwards to dispatch.UnsubscribeValue on the current
// dispatcher.
func UnsubscribeValue[T comparable](value T, handler func()) {
	if instance == nil {
		return
	}
	dispatch.UnsubscribeValue(instance, value, handler)
}
