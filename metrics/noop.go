// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

// noopMetrics discards everything. It is the backend until a real one is
// installed.
type noopMetrics struct{}

type noopMeters struct{}

func (*noopMetrics) GetOrCreateCountMeter(string) CountMeter { return &noopMeters{} }

func (*noopMetrics) GetOrCreateCountVecMeter(string, []string) CountVecMeter { return &noopMeters{} }

func (*noopMetrics) GetOrCreateGaugeMeter(string) GaugeMeter { return &noopMeters{} }

func (*noopMetrics) GetOrCreateGaugeVecMeter(string, []string) GaugeVecMeter { return &noopMeters{} }

func (*noopMetrics) GetOrCreateHistogramMeter(string, []int64) HistogramMeter { return &noopMeters{} }

func (*noopMetrics) GetOrCreateHistogramVecMeter(string, []string, []int64) HistogramVecMeter {
	return &noopMeters{}
}

func (*noopMetrics) GetOrCreateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (*noopMeters) Add(int64) {}

func (*noopMeters) Set(int64) {}

func (*noopMeters) AddWithLabel(int64, map[string]string) {}

func (*noopMeters) SetWithLabel(int64, map[string]string) {}

func (*noopMeters) Observe(int64) {}

func (*noopMeters) ObserveWithLabels(int64, map[string]string) {}
