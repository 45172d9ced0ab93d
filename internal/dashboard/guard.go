package dashboard

import (
	"errors"
	"sync"
)

// ErrBusy is returned for user messages while a request is in flight
var ErrBusy = errors.New("dashboard is busy")

// LoadingGuard counts in-flight work. While it is engaged the page shows
// the loading overlay and user messages are rejected.
type LoadingGuard struct {
	mu sync.Mutex
	n  int
}

// TryEngage engages the guard only if it is currently released
func (g *LoadingGuard) TryEngage() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.n > 0 {
		return false
	}
	g.n++
	return true
}

// Engage adds one in-flight unit
func (g *LoadingGuard) Engage() {
	g.mu.Lock()
	g.n++
	g.mu.Unlock()
}

// Release removes one in-flight unit
func (g *LoadingGuard) Release() {
	g.mu.Lock()
	if g.n > 0 {
		g.n--
	}
	g.mu.Unlock()
}

// Engaged reports whether anything is in flight
func (g *LoadingGuard) Engaged() bool {
	return g.InFlight() > 0
}

// InFlight returns the number of in-flight units
func (g *LoadingGuard) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}
