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

package metrics

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/typebus/core/pkg/dispatch"
)

func TestMain(m *testing.M) {
	if err := Initialize(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestHandler(t *testing.T) {
	assert.NotNil(t, Handler())
}

func TestMeasureSince(t *testing.T) {
	// Recording into the global collector must not panic.
	MeasureSince([]string{"test_measurement"}, time.Now())
}

func TestObserverCountsDispatch(t *testing.T) {
	d := dispatch.New(dispatch.WithObserver(NewObserver()))

	calls := 0
	sub := dispatch.Subscribe(d, func(string) { calls++ })
	defer sub.Cancel()

	// Drive every counter path: a plain publish, a queued re-entrant
	// publish, and a failing handler.
	failing := dispatch.Subscribe(d, func(int) { panic("boom") })
	defer failing.Cancel()

	reentrant := dispatch.Subscribe(d, func(bool) { d.Publish("from handler") })
	defer reentrant.Cancel()

	d.Publish("direct")
	d.Publish(true)
	d.Publish(7)

	assert.Equal(t, 2, calls, "string handler sees the direct and the queued message")
}
