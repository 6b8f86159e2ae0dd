// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package telemetry exports benchmark measurements as Prometheus metrics. It
// is opt-in: until Enable is called with Enabled set, every Observer method
// is a no-op, so the benchmark loop pays nothing for it.
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"sortbench/internal/benchmark/core"
	"sortbench/pkg/sorting"
)

// Config controls the telemetry module.
//
// Notes:
//   - MetricsAddr, when non-empty, starts a dedicated HTTP server that serves
//     /metrics for the lifetime of the process (useful for long sweeps).
//   - PushURL, when non-empty, names a Pushgateway that Push sends the
//     metrics to. A short-lived benchmark is gone before any scrape happens,
//     so pushing is the usual way to collect a single run.
type Config struct {
	Enabled     bool
	MetricsAddr string // e.g. ":9090"; empty disables the endpoint
	PushURL     string // e.g. "http://localhost:9091"; empty disables Push
	Job         string // Pushgateway job name; defaults to "sortbench"
}

var (
	modEnabled atomic.Bool
	pushURL    atomic.Value // string
	pushJob    atomic.Value // string

	// Label cardinality is bounded by the three algorithm names.
	sortSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sortbench_sort_seconds",
		Help:    "Time taken by a single sort of one generated array",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14), // 1µs .. ~67s
	}, []string{"algorithm"})
	iterationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sortbench_iteration_seconds",
		Help:    "Wall time of one generate/sort/verify iteration",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
	})
	iterationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sortbench_iterations_total",
		Help: "Total completed benchmark iterations",
	})
	verificationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sortbench_verification_failures_total",
		Help: "Total outputs that did not match the reference sort",
	}, []string{"algorithm"})
	meanSeconds = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sortbench_mean_seconds",
		Help: "Mean sort time of the last finished run",
	}, []string{"algorithm"})
	// Size is a gauge rather than a label so a long sweep does not create a
	// series per size.
	arraySize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sortbench_array_size",
		Help: "Array size of the last finished run",
	})
)

func init() {
	prometheus.MustRegister(sortSeconds, iterationSeconds, iterationsTotal, verificationFailuresTotal, meanSeconds, arraySize)
}

// Enable configures the module. Safe to call more than once; later calls
// replace the configuration but never stop an endpoint already started.
func Enable(cfg Config) {
	if cfg.Job == "" {
		cfg.Job = "sortbench"
	}
	pushURL.Store(cfg.PushURL)
	pushJob.Store(cfg.Job)
	modEnabled.Store(cfg.Enabled)
	if cfg.Enabled && cfg.MetricsAddr != "" {
		startMetricsEndpoint(cfg.MetricsAddr)
	}
}

// Enabled reports whether the module is active.
func Enabled() bool { return modEnabled.Load() }

// Observer forwards benchmark measurements to the metrics. It satisfies
// core.Observer.
type Observer struct{}

var _ core.Observer = Observer{}

func (Observer) ObserveSort(algorithm string, d time.Duration) {
	if !modEnabled.Load() {
		return
	}
	sortSeconds.WithLabelValues(algorithm).Observe(d.Seconds())
}

func (Observer) ObserveIteration(d time.Duration) {
	if !modEnabled.Load() {
		return
	}
	iterationSeconds.Observe(d.Seconds())
	iterationsTotal.Inc()
}

func (Observer) ObserveVerificationFailure(algorithm string) {
	if !modEnabled.Load() {
		return
	}
	verificationFailuresTotal.WithLabelValues(algorithm).Inc()
}

// RecordResult publishes the means of a finished run. Results with no
// completed iteration are ignored.
func RecordResult(r core.Result) {
	if !modEnabled.Load() || !r.OK() {
		return
	}
	arraySize.Set(float64(r.Size))
	meanSeconds.WithLabelValues(sorting.NameSelection).Set(r.SelectionSort)
	meanSeconds.WithLabelValues(sorting.NameCounting).Set(r.CountingSort)
	meanSeconds.WithLabelValues(sorting.NameReference).Set(r.QuickSort)
}

// Push sends the current metrics to the configured Pushgateway. It is a
// no-op when the module is disabled or no PushURL was configured.
func Push(ctx context.Context) error {
	if !modEnabled.Load() {
		return nil
	}
	url, _ := pushURL.Load().(string)
	if url == "" {
		return nil
	}
	job, _ := pushJob.Load().(string)
	err := push.New(url, job).
		Collector(sortSeconds).
		Collector(iterationSeconds).
		Collector(iterationsTotal).
		Collector(verificationFailuresTotal).
		Collector(meanSeconds).
		Collector(arraySize).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}

// startMetricsEndpoint exposes /metrics on addr in a background goroutine.
func startMetricsEndpoint(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = server.ListenAndServe()
	}()
}
