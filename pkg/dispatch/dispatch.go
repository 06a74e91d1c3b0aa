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

// Package dispatch implements a synchronous in-process publish/subscribe
// dispatcher. Handlers register interest in messages by exact type, by
// interface (so a handler bound to an interface fires for every message whose
// type implements it, and a handler bound to `any` fires for everything), or
// by a specific value. Publish delivers a message to every matching handler
// in the caller's goroutine, in registration order within each bucket.
package dispatch

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/typebus/core/pkg/dispatchiface"
	"github.com/typebus/core/pkg/logging"
)

// Observer receives counters from the dispatcher's hot path. Implementations
// must be cheap; they are called inline with every publish and every handler
// invocation.
type Observer interface {
	// Published is called once per message that enters delivery.
	Published()
	// Queued is called when a publish arrives while another one is still
	// delivering and the message is deferred to the pending queue.
	Queued()
	// Delivered is called after each handler invocation that returns normally.
	Delivered()
	// Failed is called after each handler invocation that panics.
	Failed()
}

type noopObserver struct{}

func (noopObserver) Published() {}
func (noopObserver) Queued()    {}
func (noopObserver) Delivered() {}
func (noopObserver) Failed()    {}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used to report handler failures. The global
// logger from pkg/logging is used when this option is absent.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithObserver sets the counters hook. See pkg/metrics for an implementation
// backed by go-metrics.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		d.observer = o
	}
}

// Dispatcher routes published messages to subscribed handlers. It is designed
// for a single logical thread of control: it takes no locks and must not be
// shared between goroutines running in parallel. Handlers may freely call
// back into the same dispatcher (publish, subscribe, unsubscribe) while a
// delivery is in progress; see Publish for the re-entrancy protocol.
//
// Use [Subscribe], [SubscribeValue], [Unsubscribe] and [UnsubscribeValue] to
// manage registrations; Go methods cannot be generic, so those are
// package-level functions taking the dispatcher as their first argument.
type Dispatcher struct {
	logger   *slog.Logger
	observer Observer

	types     map[reflect.Type]*typeBucket
	typeOrder []reflect.Type
	values    map[any][]*valueSubscription

	// Re-entrancy state: dispatching is set for the whole duration of an
	// in-flight delivery, and pending holds messages published during it.
	dispatching bool
	pending     []any
}

var _ dispatchiface.Publisher = (*Dispatcher)(nil)

// New creates a Dispatcher with no subscriptions.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		observer: noopObserver{},
		types:    make(map[reflect.Type]*typeBucket),
		values:   make(map[any][]*valueSubscription),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = logging.GetLogger()
	}
	return d
}

// Publish delivers msg synchronously to every handler whose subscription
// matches it, then returns. Publishing with no matching subscriptions is a
// no-op. Publish never panics because of a handler; handler panics are
// logged and swallowed (see invoke).
//
// When Publish is called while this dispatcher is already delivering another
// message (that is, from inside a handler), the new message is appended to
// the pending queue and the call returns immediately. The queue is drained
// FIFO after the current delivery finishes, so every message is fully
// delivered to all of its subscribers before the next queued one starts, and
// delivery order system-wide follows submission order.
func (d *Dispatcher) Publish(msg any) {
	if d.dispatching {
		d.pending = append(d.pending, msg)
		d.observer.Queued()
		return
	}
	d.observer.Published()
	d.dispatchOne(msg)
	for len(d.pending) > 0 {
		next := d.pending[0]
		d.pending = d.pending[1:]
		d.Publish(next)
	}
}

// dispatchOne runs a single delivery under the dispatching flag. The flag is
// cleared via defer: a panic escaping deliver must not leave it set, or every
// later Publish would queue forever and the dispatcher would go silent.
func (d *Dispatcher) dispatchOne(msg any) {
	d.dispatching = true
	defer func() { d.dispatching = false }()
	d.deliver(msg)
}

// deliver runs one message through both registries. The full delivery plan is
// snapshotted before any handler runs, so a handler that subscribes or
// unsubscribes during delivery affects only future publishes, never the
// message currently in flight.
//
// Bucket order is deterministic: the bucket keyed by the message's exact
// runtime type goes first, then every other matching bucket in
// first-registration order of its key, then the value pass. Within a bucket,
// handlers run in registration order.
func (d *Dispatcher) deliver(msg any) {
	rt := reflect.TypeOf(msg)
	if rt == nil {
		return
	}

	var plan []*typeSubscription
	if b := d.types[rt]; b != nil {
		plan = append(plan, b.subs...)
	}
	for _, key := range d.typeOrder {
		if key == rt {
			continue
		}
		b := d.types[key]
		if b == nil || !typeMatches(key, rt) {
			continue
		}
		plan = append(plan, b.subs...)
	}

	// Map access with an unhashable key panics, and the check must be on
	// the value, not the type: a comparable struct type can still carry a
	// slice in an interface field. Such messages skip the value pass.
	var values []*valueSubscription
	if reflect.ValueOf(msg).Comparable() {
		values = slices.Clone(d.values[msg])
	}

	for _, s := range plan {
		d.invoke(s.invoke, msg, rt)
	}
	for _, s := range values {
		d.invoke(func(any) { s.run() }, msg, rt)
	}
}

// invoke runs a single handler with panic isolation: a panicking handler is
// reported and swallowed so the remaining handlers of the delivery still run.
func (d *Dispatcher) invoke(fn func(any), msg any, rt reflect.Type) {
	defer d.recoverHandler(msg, rt)
	fn(msg)
	d.observer.Delivered()
}

func (d *Dispatcher) recoverHandler(msg any, rt reflect.Type) {
	if r := recover(); r != nil {
		d.observer.Failed()
		d.logger.Error("message handler failed",
			"type", rt.String(),
			"message", fmt.Sprintf("%v", msg),
			"error", r,
		)
	}
}

// typeMatches reports whether a message of runtime type rt belongs to the
// bucket keyed by key: either the exact type, or any interface the type
// implements (the empty interface matches everything).
func typeMatches(key, rt reflect.Type) bool {
	if key == rt {
		return true
	}
	return key.Kind() == reflect.Interface && rt.Implements(key)
}
