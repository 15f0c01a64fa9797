// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// JobMetrics records scheduled job runs. A nil receiver is a no-op.
type JobMetrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
	skipped  *prometheus.CounterVec
	lastRun  *prometheus.GaugeVec
}

func newJobMetrics() *JobMetrics {
	return &JobMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cron_job_runs_total",
			Help: "Total number of cron job runs",
		}, []string{"job_name"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cron_job_run_duration_seconds",
			Help:    "Duration of cron job runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~32s
		}, []string{"job_name"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cron_job_errors_total",
			Help: "Total number of cron job errors",
		}, []string{"job_name"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cron_job_skipped_total",
			Help: "Runs skipped because another replica held the job lock",
		}, []string{"job_name"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cron_job_last_run_time_seconds",
			Help: "Last run time of cron job in seconds since epoch",
		}, []string{"job_name"}),
	}
}

func (m *JobMetrics) register(r prometheus.Registerer) {
	r.MustRegister(m.runs, m.duration, m.errors, m.skipped, m.lastRun)
}

// RecordRun records one finished run
func (m *JobMetrics) RecordRun(job string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(job).Inc()
	m.duration.WithLabelValues(job).Observe(time.Since(start).Seconds())
	m.lastRun.WithLabelValues(job).Set(float64(start.Unix()))
	if err != nil {
		m.errors.WithLabelValues(job).Inc()
	}
}

func (m *JobMetrics) RecordSkip(job string) {
	if m == nil {
		return
	}
	m.skipped.WithLabelValues(job).Inc()
}
