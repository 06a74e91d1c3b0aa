// Copyright 2025 Author(s) of TypeBus
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/armon/go-metrics"
	"github.com/armon/go-metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/typebus/core/pkg/dispatch"
)

var initOnce sync.Once

// Initialize prepares the metrics system with a Prometheus sink. It installs
// a global go-metrics collector under the "typebus" prefix; the collected
// series are exposed through Handler.
func Initialize() error {
	var err error
	initOnce.Do(func() {
		sink, serr := prometheus.NewPrometheusSink()
		if serr != nil {
			err = serr
			return
		}

		conf := metrics.DefaultConfig("typebus")
		conf.EnableHostname = false

		_, err = metrics.NewGlobal(conf, sink)
	})
	return err
}

// Handler returns an http.Handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartServer starts an HTTP server exposing the /metrics endpoint on addr.
// It blocks, so run it on its own goroutine.
func StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return server.ListenAndServe()
}

// MeasureSince records the time elapsed since start under name.
func MeasureSince(name []string, start time.Time) {
	metrics.MeasureSince(name, start)
}

// observer feeds dispatcher counters into the global go-metrics collector.
type observer struct{}

// NewObserver returns a dispatch.Observer recording the dispatcher's
// published/queued/delivered/failed counts. Pass it to the dispatcher via
// dispatch.WithObserver after calling Initialize.
func NewObserver() dispatch.Observer {
	return observer{}
}

func (observer) Published() {
	metrics.IncrCounter([]string{"dispatch", "published"}, 1)
}

func (observer) Queued() {
	metrics.IncrCounter([]string{"dispatch", "queued"}, 1)
}

func (observer) Delivered() {
	metrics.IncrCounter([]string{"dispatch", "delivered"}, 1)
}

func (observer) Failed() {
	metrics.IncrCounter([]string{"dispatch", "failed"}, 1)
}
