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

package dispatchiface

// Publisher is the write side of a dispatcher: the surface a component needs
// when it only emits messages and never subscribes. It is satisfied by
// *dispatch.Dispatcher.
type Publisher interface {
	// Publish delivers msg synchronously to every matching subscriber.
	// Publishing with no subscribers is a no-op.
	Publish(msg any)
}

// Canceler is a registration that can be torn down. It is satisfied by
// *dispatch.Subscription and consumed by dispatch.Scope, which cancels every
// tracked registration when its owner goes away. Cancel must be safe to call
// at arbitrary times, including repeatedly and during an in-flight delivery.
type Canceler interface {
	Cancel()
}
