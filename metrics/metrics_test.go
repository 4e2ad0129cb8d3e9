// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

// runs before TestPromMetrics: the backend must still be the no-op one
func TestNoopMetrics(t *testing.T) {
	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	Counter("noop_count").Add(1)
	CounterVec("noop_count_vec", []string{"label"}).AddWithLabel(1, map[string]string{"label": "x"})
	Gauge("noop_gauge").Set(3)
	GaugeVec("noop_gauge_vec", []string{"label"}).SetWithLabel(3, map[string]string{"label": "x"})
	Histogram("noop_hist", nil).Observe(5)
	HistogramVec("noop_hist_vec", []string{"label"}, nil).
		ObserveWithLabels(5, map[string]string{"anything": "goes"})

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	InitializePrometheusMetrics() // second call is a no-op

	count := Counter("count1")
	for range 3 {
		count.Add(1)
	}
	Counter("count1").Add(2) // same meter via lookup

	countVec := CounterVec("count_vec1", []string{"zeroOrOne"})
	for i := range 4 {
		countVec.AddWithLabel(1, map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
	}

	gauge := Gauge("gauge1")
	gauge.Set(10)
	gauge.Add(-3)

	Histogram("hist1", []int64{1, 10, 100}).Observe(7)

	lazy := LazyLoadCounter("lazy_count1")
	lazy().Add(5)
	lazy().Add(5)

	fams, err := prometheus.Gatherers{prometheus.DefaultGatherer}.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily)
	for _, f := range fams {
		byName[f.GetName()] = f
	}

	require.Contains(t, byName, "rdxpat_count1")
	assert.Equal(t, float64(5), byName["rdxpat_count1"].GetMetric()[0].GetCounter().GetValue())

	require.Contains(t, byName, "rdxpat_count_vec1")
	assert.Len(t, byName["rdxpat_count_vec1"].GetMetric(), 2)

	require.Contains(t, byName, "rdxpat_gauge1")
	assert.Equal(t, float64(7), byName["rdxpat_gauge1"].GetMetric()[0].GetGauge().GetValue())

	require.Contains(t, byName, "rdxpat_hist1")
	assert.Equal(t, uint64(1), byName["rdxpat_hist1"].GetMetric()[0].GetHistogram().GetSampleCount())

	require.Contains(t, byName, "rdxpat_lazy_count1")
	assert.Equal(t, float64(10), byName["rdxpat_lazy_count1"].GetMetric()[0].GetCounter().GetValue())
}

func TestPromHTTPHandler(t *testing.T) {
	InitializePrometheusMetrics()
	Counter("handler_count").Add(1)

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
