package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
	"github.com/gmdjlee/etf-monitor/internal/render"
	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

// API is the subset of the backend gateway the dashboard drives
type API interface {
	Initialize(ctx context.Context) (*contracts.SystemMessage, error)
	Update(ctx context.Context) (*contracts.SystemMessage, error)
	ListETFs(ctx context.Context) ([]contracts.ETFSummary, error)
	ListThemes(ctx context.Context) ([]string, error)
	Comparison(ctx context.Context, ticker string) (*contracts.Comparison, error)
	StockHistory(ctx context.Context, etfTicker, stockTicker string) (*contracts.WeightHistory, error)
	Stats(ctx context.Context, statsType contracts.StatsType, theme string) (*contracts.StatsTable, error)
	ExportURL(ticker string) string
	ComparisonExportURL(ticker string) string
}

// Outcome is what a dispatch asks of the requesting client only
type Outcome struct {
	Navigate string
	Alert    string // last alert raised while the dispatch ran, not one already shown
}

// Controller is the single owner of the dashboard state. It runs Update,
// executes effects in order and notifies subscribers after every change.
// ⭐ SSOT: State, LoadingGuard, ChartSlot 모두 Controller 소유
type Controller struct {
	api    API
	logger *logger.Logger
	counts []string

	guard  LoadingGuard
	charts ChartSlot

	mu      sync.RWMutex
	state   State
	version uint64

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewController creates a controller in the initial state
func NewController(api API, log *logger.Logger, holdingsCount string, counts []string) *Controller {
	return &Controller{
		api:    api,
		logger: log,
		counts: counts,
		state:  NewState(holdingsCount),
		subs:   make(map[int]func()),
	}
}

// Dispatch feeds msg into the update loop and runs the resulting effects
// until the loop settles. User messages are rejected with ErrBusy while the
// loading guard is engaged.
func (c *Controller) Dispatch(ctx context.Context, msg Msg) (Outcome, error) {
	if IsResult(msg) {
		return c.process(ctx, msg), nil
	}

	if !c.guard.TryEngage() {
		c.logger.WithField("msg", msgName(msg)).Debug("Rejected message while busy")
		return Outcome{}, ErrBusy
	}
	defer func() {
		c.guard.Release()
		c.notify()
	}()

	return c.process(ctx, msg), nil
}

func (c *Controller) process(ctx context.Context, first Msg) Outcome {
	var out Outcome

	queue := []Msg{first}
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		c.mu.Lock()
		if res, stale := Stale(c.state, msg); stale {
			c.mu.Unlock()
			c.logger.WithField("resource", res.String()).Debug("Discarded stale response")
			continue
		}
		prev := c.state.AlertSeq
		next, effects := Update(c.state, msg)
		c.state = next
		c.version++
		c.mu.Unlock()

		if next.AlertSeq != prev {
			out.Alert = next.Alert
		}

		c.notify()

		for _, eff := range effects {
			result, navigate := c.run(ctx, eff)
			if navigate != "" {
				out.Navigate = navigate
			}
			if result != nil {
				queue = append(queue, result)
			}
		}
	}

	return out
}

// run executes one effect and returns the message it produced, if any
func (c *Controller) run(ctx context.Context, eff Effect) (Msg, string) {
	switch e := eff.(type) {
	case DisposeChart:
		c.charts.Dispose()
		return nil, ""
	case ReplaceChart:
		c.drawChart(e.Panel)
		return nil, ""
	case Navigate:
		if e.Comparison {
			return nil, c.api.ComparisonExportURL(e.Ticker)
		}
		return nil, c.api.ExportURL(e.Ticker)
	}

	if !isNetwork(eff) {
		return nil, ""
	}

	c.guard.Engage()
	c.notify()
	defer c.guard.Release()

	switch e := eff.(type) {
	case Initialize:
		res, err := c.api.Initialize(ctx)
		return Initialized{Message: messageOf(res), Err: err}, ""

	case RefreshData:
		res, err := c.api.Update(ctx)
		return Refreshed{Message: messageOf(res), Err: err}, ""

	case FetchETFs:
		etfs, err := c.api.ListETFs(ctx)
		return ETFsLoaded{Token: e.Token, ETFs: etfs, Err: err}, ""

	case FetchThemes:
		themes, err := c.api.ListThemes(ctx)
		return ThemesLoaded{Token: e.Token, Themes: themes, Err: err}, ""

	case FetchComparison:
		cmp, err := c.api.Comparison(ctx, e.Ticker)
		if err == nil && cmp == nil {
			cmp = &contracts.Comparison{ETFTicker: e.Ticker}
		}
		return ComparisonLoaded{Token: e.Token, Comparison: cmp, Err: err}, ""

	case FetchHistory:
		h, err := c.api.StockHistory(ctx, e.ETFTicker, e.StockTicker)
		msg := HistoryLoaded{Token: e.Token, ETFTicker: e.ETFTicker, StockTicker: e.StockTicker, StockName: e.StockName, Err: err}
		if h != nil {
			msg.History = h.History
			if msg.StockName == "" {
				msg.StockName = h.StockName
			}
		}
		return msg, ""

	case FetchStats:
		table, err := c.api.Stats(ctx, e.Type, e.Theme)
		if err != nil {
			return StatsLoaded{Token: e.Token, Err: err}, ""
		}
		return StatsLoaded{Token: e.Token, Table: statsFor(table, e)}, ""
	}

	return nil, ""
}

func (c *Controller) drawChart(p ChartPanel) {
	var buf bytes.Buffer
	if err := render.RenderChart(&buf, render.NewChartData(p.StockName, p.History)); err != nil {
		if !errors.Is(err, render.ErrNoChartData) {
			c.logger.WithError(err).WithField("stock", p.StockTicker).Error("Failed to draw chart")
		}
		c.charts.Dispose()
		return
	}
	c.charts.Replace(c.charts.NewChart(p.ETFTicker, p.StockTicker, buf.Bytes()))
}

// Snapshot returns the current state and its version
func (c *Controller) Snapshot() (State, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, c.version
}

// Busy reports whether the loading guard is engaged
func (c *Controller) Busy() bool {
	return c.guard.Engaged()
}

// Chart returns the live chart
func (c *Controller) Chart() (Chart, bool) {
	return c.charts.Current()
}

// LiveCharts returns the number of live charts (0 or 1)
func (c *Controller) LiveCharts() int {
	return c.charts.Live()
}

// Page builds the page for the current state
func (c *Controller) Page() (render.PageData, error) {
	s, version := c.Snapshot()
	chart, _ := c.charts.Current()
	return BuildPage(s, PageOptions{
		Version: version,
		Busy:    c.Busy(),
		Chart:   chart,
		Counts:  c.counts,
	})
}

// Subscribe registers fn to be called after every state change. The
// returned function removes the subscription.
func (c *Controller) Subscribe(fn func()) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Controller) notify() {
	c.subMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// statsFor tags a backend table with the request that produced it
func statsFor(t *contracts.StatsTable, e FetchStats) *contracts.StatsTable {
	if t == nil {
		t = &contracts.StatsTable{}
	}
	t.Type = e.Type
	t.Theme = e.Theme
	return t
}

func messageOf(m *contracts.SystemMessage) string {
	if m == nil {
		return ""
	}
	return m.Message
}

func msgName(m Msg) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", m), "dashboard.")
}
