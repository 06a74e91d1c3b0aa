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
	"reflect"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// typeSubscription is one registered (type, handler) pair. The handler field
// is the code pointer of the function value the caller passed to Subscribe;
// it is the identity used by Unsubscribe, while invoke is the type-erased
// wrapper actually called during delivery.
type typeSubscription struct {
	id      string
	handler uintptr
	invoke  func(msg any)
}

// typeBucket holds the handlers registered under one type key, in
// registration order.
type typeBucket struct {
	key  reflect.Type
	subs []*typeSubscription
}

func (d *Dispatcher) subscribeType(key reflect.Type, handler uintptr, invoke func(any)) *Subscription {
	b := d.types[key]
	if b == nil {
		b = &typeBucket{key: key}
		d.types[key] = b
		d.typeOrder = append(d.typeOrder, key)
	}
	rec := &typeSubscription{id: uuid.NewString(), handler: handler, invoke: invoke}
	// Duplicate (type, handler) pairs are allowed and each registration is
	// invoked separately.
	b.subs = append(b.subs, rec)
	return &Subscription{d: d, id: rec.id, key: key, typeRec: rec}
}

// unsubscribeType removes the first registration under key whose handler
// identity matches. Removing a pair that was never registered is a no-op.
func (d *Dispatcher) unsubscribeType(key reflect.Type, handler uintptr) {
	b := d.types[key]
	if b == nil {
		return
	}
	for _, s := range b.subs {
		if s.handler == handler {
			d.removeTypeRecord(key, s)
			return
		}
	}
}

// removeTypeRecord removes exactly one registration record. Empty buckets are
// dropped from the registry so a stale key does not linger in the match walk.
func (d *Dispatcher) removeTypeRecord(key reflect.Type, rec *typeSubscription) {
	b := d.types[key]
	if b == nil {
		return
	}
	b.subs = lo.Reject(b.subs, func(s *typeSubscription, _ int) bool { return s == rec })
	if len(b.subs) == 0 {
		delete(d.types, key)
		d.typeOrder = lo.Reject(d.typeOrder, func(t reflect.Type, _ int) bool { return t == key })
	}
}
