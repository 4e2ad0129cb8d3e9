// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rdxpat"

// InitializePrometheusMetrics swaps the no-op backend for a prometheus one.
// Safe to call more than once; only the first call takes effect.
func InitializePrometheusMetrics() {
	lock.Lock()
	defer lock.Unlock()

	if _, ok := metrics.(*prometheusMetrics); ok {
		return
	}
	metrics = newPrometheusMetrics()
}

type prometheusMetrics struct {
	counters      map[string]CountMeter
	counterVecs   map[string]CountVecMeter
	gauges        map[string]GaugeMeter
	gaugeVecs     map[string]GaugeVecMeter
	histograms    map[string]HistogramMeter
	histogramVecs map[string]HistogramVecMeter
}

func newPrometheusMetrics() *prometheusMetrics {
	return &prometheusMetrics{
		counters:      make(map[string]CountMeter),
		counterVecs:   make(map[string]CountVecMeter),
		gauges:        make(map[string]GaugeMeter),
		gaugeVecs:     make(map[string]GaugeVecMeter),
		histograms:    make(map[string]HistogramMeter),
		histogramVecs: make(map[string]HistogramVecMeter),
	}
}

func (p *prometheusMetrics) GetOrCreateCountMeter(name string) CountMeter {
	if m, ok := p.counters[name]; ok {
		return m
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
	})
	prometheus.MustRegister(c)
	m := &promCountMeter{c}
	p.counters[name] = m
	return m
}

func (p *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	if m, ok := p.counterVecs[name]; ok {
		return m
	}
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
	}, labels)
	prometheus.MustRegister(c)
	m := &promCountVecMeter{c}
	p.counterVecs[name] = m
	return m
}

func (p *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	if m, ok := p.gauges[name]; ok {
		return m
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
	})
	prometheus.MustRegister(g)
	m := &promGaugeMeter{g}
	p.gauges[name] = m
	return m
}

func (p *prometheusMetrics) GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter {
	if m, ok := p.gaugeVecs[name]; ok {
		return m
	}
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
	}, labels)
	prometheus.MustRegister(g)
	m := &promGaugeVecMeter{g}
	p.gaugeVecs[name] = m
	return m
}

func (p *prometheusMetrics) GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter {
	if m, ok := p.histograms[name]; ok {
		return m
	}
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Buckets:   toFloatBuckets(buckets),
	})
	prometheus.MustRegister(h)
	m := &promHistogramMeter{h}
	p.histograms[name] = m
	return m
}

func (p *prometheusMetrics) GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter {
	if m, ok := p.histogramVecs[name]; ok {
		return m
	}
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Buckets:   toFloatBuckets(buckets),
	}, labels)
	prometheus.MustRegister(h)
	m := &promHistogramVecMeter{h}
	p.histogramVecs[name] = m
	return m
}

func (p *prometheusMetrics) GetOrCreateHandler() http.Handler {
	return promhttp.Handler()
}

func toFloatBuckets(buckets []int64) []float64 {
	if len(buckets) == 0 {
		return prometheus.DefBuckets
	}
	fs := make([]float64, len(buckets))
	for i, b := range buckets {
		fs[i] = float64(b)
	}
	return fs
}

type promCountMeter struct {
	counter prometheus.Counter
}

func (m *promCountMeter) Add(v int64) { m.counter.Add(float64(v)) }

type promCountVecMeter struct {
	counter *prometheus.CounterVec
}

func (m *promCountVecMeter) AddWithLabel(v int64, labels map[string]string) {
	m.counter.With(labels).Add(float64(v))
}

type promGaugeMeter struct {
	gauge prometheus.Gauge
}

func (m *promGaugeMeter) Add(v int64) { m.gauge.Add(float64(v)) }

func (m *promGaugeMeter) Set(v int64) { m.gauge.Set(float64(v)) }

type promGaugeVecMeter struct {
	gauge *prometheus.GaugeVec
}

func (m *promGaugeVecMeter) AddWithLabel(v int64, labels map[string]string) {
	m.gauge.With(labels).Add(float64(v))
}

func (m *promGaugeVecMeter) SetWithLabel(v int64, labels map[string]string) {
	m.gauge.With(labels).Set(float64(v))
}

type promHistogramMeter struct {
	histogram prometheus.Histogram
}

func (m *promHistogramMeter) Observe(v int64) { m.histogram.Observe(float64(v)) }

type promHistogramVecMeter struct {
	histogram *prometheus.HistogramVec
}

func (m *promHistogramVecMeter) ObserveWithLabels(v int64, labels map[string]string) {
	m.histogram.With(labels).Observe(float64(v))
}
