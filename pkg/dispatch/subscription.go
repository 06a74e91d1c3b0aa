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

package dispatch

import "reflect"

// Subscription is the handle returned by every subscribe call. Cancel removes
// exactly the registration that produced the handle, which is the reliable
// way to drop one of several duplicate registrations of the same handler.
//
// A nil *Subscription is a valid "absent" marker (pkg/dispatchglobal returns
// one when no dispatcher is set); all methods no-op on it.
type Subscription struct {
	d        *Dispatcher
	id       string
	key      reflect.Type
	value    any
	typeRec  *typeSubscription
	valueRec *valueSubscription
}

// ID returns the subscription's unique id, for logging. Empty for the nil
// subscription.
func (s *Subscription) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Cancel removes this registration from its dispatcher. It is safe to call at
// any time, including from inside a handler while a delivery is in progress
// (the removal then affects only future publishes) and after the registration
// was already removed.
func (s *Subscription) Cancel() {
	if s == nil || s.d == nil {
		return
	}
	switch {
	case s.typeRec != nil:
		s.d.removeTypeRecord(s.key, s.typeRec)
	case s.valueRec != nil:
		s.d.removeValueRecord(s.value, s.valueRec)
	}
}

// Subscribe registers handler to fire for every published message whose
// runtime type is T, implements T when T is an interface type, or — when T is
// the empty interface — for every message whatsoever.
func Subscribe[T any](d *Dispatcher, handler func(T)) *Subscription {
	key := reflect.TypeOf((*T)(nil)).Elem()
	return d.subscribeType(key, reflect.ValueOf(handler).Pointer(), func(msg any) {
		handler(msg.(T))
	})
}

// Unsubscribe removes the (T, handler) registration added by [Subscribe].
// Identity is the handler's function value: pass the same function value that
// was subscribed. Unknown pairs are a silent no-op. When the same pair was
// subscribed more than once, one registration is removed per call.
//
// Distinct closures produced by the same function literal share a code
// pointer and are indistinguishable here, so Unsubscribe may remove a sibling
// closure's registration. Use [Subscription.Cancel] when that distinction
// matters; it removes exactly the registration that produced the handle.
func Unsubscribe[T any](d *Dispatcher, handler func(T)) {
	d.unsubscribeType(reflect.TypeOf((*T)(nil)).Elem(), reflect.ValueOf(handler).Pointer())
}

// SubscribeValue registers handler to fire whenever a published message is
// equal to value, including its dynamic type: a message of a different type
// that happens to convert equal does not match. The handler receives no
// payload.
func SubscribeValue[T comparable](d *Dispatcher, value T, handler func()) *Subscription {
	return d.subscribeValue(value, reflect.ValueOf(handler).Pointer(), handler)
}

// UnsubscribeValue removes the (value, handler) registration added by
// [SubscribeValue]; a silent no-op when absent.
func UnsubscribeValue[T comparable](d *Dispatcher, value T, handler func()) {
	d.unsubscribeValue(value, reflect.ValueOf(handler).Pointer())
}
