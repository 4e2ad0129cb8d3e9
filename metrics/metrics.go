// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a lightweight metrics front. All meters are no-ops
// until InitializePrometheusMetrics is called, so importing packages can
// instrument unconditionally and binaries opt in.
package metrics

import (
	"net/http"
	"sync"
)

// CountMeter is a monotonically increasing counter.
type CountMeter interface {
	Add(int64)
}

// CountVecMeter is a counter partitioned by labels.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// GaugeMeter is a value that can move both ways.
type GaugeMeter interface {
	Add(int64)
	Set(int64)
}

// GaugeVecMeter is a gauge partitioned by labels.
type GaugeVecMeter interface {
	AddWithLabel(int64, map[string]string)
	SetWithLabel(int64, map[string]string)
}

// HistogramMeter observes a distribution of int64 samples.
type HistogramMeter interface {
	Observe(int64)
}

// HistogramVecMeter observes a distribution partitioned by labels.
type HistogramVecMeter interface {
	ObserveWithLabels(int64, map[string]string)
}

// metrics is the backend in effect. Defaults to noop; swapped exactly once
// by InitializePrometheusMetrics.
var metrics backend = &noopMetrics{}

var lock sync.Mutex

type backend interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter
	GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter
	GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter
	GetOrCreateHandler() http.Handler
}

// Counter returns the counter registered under name, creating it if needed.
func Counter(name string) CountMeter {
	lock.Lock()
	defer lock.Unlock()
	return metrics.GetOrCreateCountMeter(name)
}

// CounterVec returns the labeled counter registered under name.
func CounterVec(name string, labels []string) CountVecMeter {
	lock.Lock()
	defer lock.Unlock()
	return metrics.GetOrCreateCountVecMeter(name, labels)
}

// Gauge returns the gauge registered under name.
func Gauge(name string) GaugeMeter {
	lock.Lock()
	defer lock.Unlock()
	return metrics.GetOrCreateGaugeMeter(name)
}

// GaugeVec returns the labeled gauge registered under name.
func GaugeVec(name string, labels []string) GaugeVecMeter {
	lock.Lock()
	defer lock.Unlock()
	return metrics.GetOrCreateGaugeVecMeter(name, labels)
}

// Histogram returns the histogram registered under name.
func Histogram(name string, buckets []int64) HistogramMeter {
	lock.Lock()
	defer lock.Unlock()
	return metrics.GetOrCreateHistogramMeter(name, buckets)
}

// HistogramVec returns the labeled histogram registered under name.
func HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	lock.Lock()
	defer lock.Unlock()
	return metrics.GetOrCreateHistogramVecMeter(name, labels, buckets)
}

// HTTPHandler returns the exposition handler of the backend in effect.
func HTTPHandler() http.Handler {
	lock.Lock()
	defer lock.Unlock()
	return metrics.GetOrCreateHandler()
}

// LazyLoadCounter defers meter resolution to first use, avoiding a registry
// lookup per call site invocation.
func LazyLoadCounter(name string) func() CountMeter {
	var m CountMeter
	var once sync.Once
	return func() CountMeter {
		once.Do(func() { m = Counter(name) })
		return m
	}
}

// LazyLoadCounterVec defers labeled counter resolution to first use.
func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	var m CountVecMeter
	var once sync.Once
	return func() CountVecMeter {
		once.Do(func() { m = CounterVec(name, labels) })
		return m
	}
}

// LazyLoadGauge defers gauge resolution to first use.
func LazyLoadGauge(name string) func() GaugeMeter {
	var m GaugeMeter
	var once sync.Once
	return func() GaugeMeter {
		once.Do(func() { m = Gauge(name) })
		return m
	}
}

// LazyLoadGaugeVec defers labeled gauge resolution to first use.
func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	var m GaugeVecMeter
	var once sync.Once
	return func() GaugeVecMeter {
		once.Do(func() { m = GaugeVec(name, labels) })
		return m
	}
}

// LazyLoadHistogram defers histogram resolution to first use.
func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	var m HistogramMeter
	var once sync.Once
	return func() HistogramMeter {
		once.Do(func() { m = Histogram(name, buckets) })
		return m
	}
}
