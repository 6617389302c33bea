package yeet

import (
	"sync"

	"github.com/mbrla0/yeet/metrics"
)

// recordingProvider is a minimal metrics.Provider that accumulates counter
// totals and histogram sample counts by instrument name, for assertions in
// tests that wire WithMetrics.
type recordingProvider struct {
	mu         sync.Mutex
	counters   map[string]int64
	histograms map[string]int
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{
		counters:   make(map[string]int64),
		histograms: make(map[string]int),
	}
}

func (p *recordingProvider) Counter(name string, _ ...metrics.InstrumentOption) metrics.Counter {
	return recordingCounter{p: p, name: name}
}

func (p *recordingProvider) UpDownCounter(name string, _ ...metrics.InstrumentOption) metrics.UpDownCounter {
	return recordingCounter{p: p, name: name}
}

func (p *recordingProvider) Histogram(name string, _ ...metrics.InstrumentOption) metrics.Histogram {
	return recordingHistogram{p: p, name: name}
}

type recordingCounter struct {
	p    *recordingProvider
	name string
}

func (c recordingCounter) Add(n int64) {
	c.p.mu.Lock()
	defer c.p.mu.Unlock()
	c.p.counters[c.name] += n
}

type recordingHistogram struct {
	p    *recordingProvider
	name string
}

func (h recordingHistogram) Record(float64) {
	h.p.mu.Lock()
	defer h.p.mu.Unlock()
	h.p.histograms[h.name]++
}
