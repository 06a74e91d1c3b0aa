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

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// valueSubscription is one registered (value, handler) pair. Value handlers
// take no arguments; the matched message carries no information beyond
// equality with the subscribed value.
type valueSubscription struct {
	id      string
	handler uintptr
	run     func()
}

// The value registry is keyed by the subscribed value itself. Interface
// equality already distinguishes dynamic types, so a string "foo" and a
// named-string-type "foo" land in different buckets without a composite
// (type, value) key.
func (d *Dispatcher) subscribeValue(value any, handler uintptr, run func()) *Subscription {
	rec := &valueSubscription{id: uuid.NewString(), handler: handler, run: run}
	d.values[value] = append(d.values[value], rec)
	return &Subscription{d: d, id: rec.id, value: value, valueRec: rec}
}

// unsubscribeValue removes the first registration under value whose handler
// identity matches; a no-op when absent.
func (d *Dispatcher) unsubscribeValue(value any, handler uintptr) {
	for _, s := range d.values[value] {
		if s.handler == handler {
			d.removeValueRecord(value, s)
			return
		}
	}
}

func (d *Dispatcher) removeValueRecord(value any, rec *valueSubscription) {
	subs := lo.Reject(d.values[value], func(s *valueSubscription, _ int) bool { return s == rec })
	if len(subs) == 0 {
		delete(d.values, value)
		return
	}
	d.values[value] = subs
}
