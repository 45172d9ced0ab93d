package render

import (
	"errors"
	"fmt"
	"html"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
)

// ErrNoChartData is returned when a history has no points to draw
var ErrNoChartData = errors.New("no chart data")

const (
	chartWidth    = 900
	chartHeight   = 360
	maxDateLabels = 8
	weightSeries  = "비중(%)"
	amountSeries  = "평가금액(억원)"
)

var (
	weightColor = drawing.ColorFromHex("2563eb")
	amountColor = drawing.ColorFromHex("f59e0b")
	gridColor   = drawing.ColorFromHex("e5e7eb")
)

// ChartData is a stock's weight history prepared for the dual-axis chart
type ChartData struct {
	Title   string
	Labels  []string
	Weights []float64
	Amounts []float64 // 억원
}

// NewChartData converts history points into chart series
func NewChartData(stockName string, points []contracts.HistoryPoint) ChartData {
	d := ChartData{
		Title:   stockName + " 비중 추이",
		Labels:  make([]string, 0, len(points)),
		Weights: make([]float64, 0, len(points)),
		Amounts: make([]float64, 0, len(points)),
	}
	for _, p := range points {
		d.Labels = append(d.Labels, p.Date)
		d.Weights = append(d.Weights, p.Weight)
		d.Amounts = append(d.Amounts, AmountInEok(p.Amount))
	}
	return d
}

// RenderChart draws the chart as SVG: weight on the left axis, amount in
// 억원 on the right axis without gridlines, dates on the shared X axis.
// go-chart writes text nodes verbatim, so title and labels are escaped here.
func RenderChart(w io.Writer, d ChartData) error {
	n := len(d.Labels)
	if n == 0 {
		return ErrNoChartData
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	graph := chart.Chart{
		Title:  html.EscapeString(d.Title),
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  "날짜",
			Ticks: paddedTicks(dateTicks(d.Labels), n),
		},
		YAxis: chart.YAxis{
			Name:           weightSeries,
			Range:          paddedRange(d.Weights),
			ValueFormatter: func(v interface{}) string { return ToFixed(v.(float64), 2) },
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
		},
		YAxisSecondary: chart.YAxis{
			Name:           amountSeries,
			Range:          paddedRange(d.Amounts),
			ValueFormatter: func(v interface{}) string { return ToFixed(v.(float64), 1) },
			GridMajorStyle: chart.Style{Hidden: true},
			GridMinorStyle: chart.Style{Hidden: true},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    weightSeries,
				XValues: xs,
				YValues: d.Weights,
				Style:   chart.Style{StrokeColor: weightColor, StrokeWidth: 2, DotColor: weightColor, DotWidth: 3},
			},
			chart.ContinuousSeries{
				Name:    amountSeries,
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: d.Amounts,
				Style:   chart.Style{StrokeColor: amountColor, StrokeWidth: 2, DotColor: amountColor, DotWidth: 3},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// dateTicks labels at most maxDateLabels evenly spaced dates
func dateTicks(labels []string) []chart.Tick {
	step := int(math.Ceil(float64(len(labels)) / maxDateLabels))
	if step < 1 {
		step = 1
	}

	ticks := make([]chart.Tick, 0, maxDateLabels+1)
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: html.EscapeString(labels[i])})
	}
	return ticks
}

// paddedTicks adds unlabeled ticks half a step outside both ends. go-chart
// takes the x range from the ticks, and one point alone has no width.
func paddedTicks(ticks []chart.Tick, n int) []chart.Tick {
	out := make([]chart.Tick, 0, len(ticks)+2)
	out = append(out, chart.Tick{Value: -0.5})
	out = append(out, ticks...)
	return append(out, chart.Tick{Value: float64(n) - 0.5})
}

// paddedRange returns a non-degenerate axis range around values
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}

	floor := lo - pad
	if lo >= 0 && floor < 0 {
		floor = 0
	}
	return &chart.ContinuousRange{Min: floor, Max: hi + pad}
}
