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

import "github.com/typebus/core/pkg/dispatchiface"

// Scope ties a set of subscriptions to the lifetime of an owning component.
// The owner funnels every subscription it creates through Add and calls Close
// once during teardown; the dispatcher itself never removes a registration on
// its own.
//
//	scope := dispatch.NewScope()
//	scope.Add(dispatch.Subscribe(d, onUserJoined))
//	scope.Add(dispatch.SubscribeValue(d, "ping", onPing))
//	defer scope.Close()
type Scope struct {
	subs   []dispatchiface.Canceler
	closed bool
}

// NewScope returns an empty Scope.
func NewScope() *Scope {
	return &Scope{}
}

// Add registers c for cancellation when the scope closes. Adding to an
// already-closed scope cancels c immediately.
func (s *Scope) Add(c dispatchiface.Canceler) {
	if c == nil {
		return
	}
	if s.closed {
		c.Cancel()
		return
	}
	s.subs = append(s.subs, c)
}

// Close cancels every tracked subscription. It is idempotent, and safe even
// when some subscriptions were already cancelled individually.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, c := range s.subs {
		c.Cancel()
	}
	s.subs = nil
}
