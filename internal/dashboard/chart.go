package dashboard

import (
	"sync"
	"sync/atomic"
)

// Chart is one drawn stock-history chart
type Chart struct {
	ID          uint64
	ETFTicker   string
	StockTicker string
	SVG         []byte

	disposed bool
}

// Disposed reports whether the chart has been destroyed
func (c *Chart) Disposed() bool {
	return c.disposed
}

// ChartSlot owns the single live chart. Replace destroys the current chart
// before installing the next one, so two charts are never alive together.
type ChartSlot struct {
	mu      sync.Mutex
	current *Chart
	live    int
	seq     atomic.Uint64
}

// NewChart allocates a chart with a fresh ID
func (s *ChartSlot) NewChart(etfTicker, stockTicker string, svg []byte) *Chart {
	return &Chart{ID: s.seq.Add(1), ETFTicker: etfTicker, StockTicker: stockTicker, SVG: svg}
}

// Replace disposes the live chart and installs c
func (s *ChartSlot) Replace(c *Chart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disposeLocked()
	s.current = c
	s.live++
}

// Dispose destroys the live chart. Calling it on an empty slot is a no-op.
func (s *ChartSlot) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposeLocked()
}

func (s *ChartSlot) disposeLocked() {
	if s.current == nil {
		return
	}
	s.current.disposed = true
	s.current.SVG = nil
	s.current = nil
	s.live--
}

// Current returns a copy of the live chart
func (s *ChartSlot) Current() (Chart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Chart{}, false
	}
	return *s.current, true
}

// Live returns the number of charts alive
func (s *ChartSlot) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}
