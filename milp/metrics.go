// The MIT License (MIT)
//
// Copyright (c) 2016, 2017, 2018 Fabian Wenzelmann
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package milp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes of a solve as reported in the solves counter.
const (
	OutcomeOptimal      = "optimal"
	OutcomeInconsistent = "inconsistent"
	OutcomeError        = "error"
)

// Metrics collects solver statistics. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	solves      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	variables   prometheus.Gauge
	constraints prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg (if not nil).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fuzzydl",
			Subsystem: "milp",
			Name:      "solves_total",
			Help:      "Number of MILP solves by backend and outcome.",
		}, []string{"backend", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fuzzydl",
			Subsystem: "milp",
			Name:      "solve_seconds",
			Help:      "Duration of MILP solves.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"backend"}),
		variables: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fuzzydl",
			Subsystem: "milp",
			Name:      "variables",
			Help:      "Number of variables of the last solved model.",
		}),
		constraints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fuzzydl",
			Subsystem: "milp",
			Name:      "constraints",
			Help:      "Number of constraints of the last solved model.",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.solves, m.duration, m.variables, m.constraints} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observeModel(vars, constraints int) {
	if m == nil {
		return
	}
	m.variables.Set(float64(vars))
	m.constraints.Set(float64(constraints))
}

func (m *Metrics) observeSolve(backend, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.solves.WithLabelValues(backend, outcome).Inc()
	m.duration.WithLabelValues(backend).Observe(d.Seconds())
}
