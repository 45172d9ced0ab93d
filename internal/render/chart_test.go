package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
)

func TestNewChartData(t *testing.T) {
	d := NewChartData("삼성전자", []contracts.HistoryPoint{
		{Date: "2024-01-15", Weight: 30.5, Amount: 150_000_000},
		{Date: "2024-01-16", Weight: 31.0, Amount: 300_000_000},
	})

	assert.Equal(t, "삼성전자 비중 추이", d.Title)
	assert.Equal(t, []string{"2024-01-15", "2024-01-16"}, d.Labels)
	assert.Equal(t, []float64{30.5, 31.0}, d.Weights)
	assert.Equal(t, []float64{1.5, 3.0}, d.Amounts)
}

func TestRenderChart(t *testing.T) {
	d := NewChartData("삼성전자", []contracts.HistoryPoint{
		{Date: "2024-01-15", Weight: 30.5, Amount: 150_000_000},
		{Date: "2024-01-16", Weight: 31.0, Amount: 300_000_000},
		{Date: "2024-01-17", Weight: 29.8, Amount: 120_000_000},
	})

	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, d))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderChartEscapesText(t *testing.T) {
	d := NewChartData(`삼성<img src=x onerror=alert(1)>`, []contracts.HistoryPoint{
		{Date: "2024-01-15</text><script>x()</script>", Weight: 30.5, Amount: 150_000_000},
		{Date: "2024-01-16", Weight: 31.0, Amount: 300_000_000},
	})

	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, d))
	svg := buf.String()

	assert.NotContains(t, svg, "<img")
	assert.NotContains(t, svg, "<script")
	assert.Contains(t, svg, "&lt;img src=x onerror=alert(1)&gt;")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(svg))
	require.NoError(t, err)
	assert.Zero(t, doc.Find("img, script").Length())
}

func TestRenderChartSinglePoint(t *testing.T) {
	d := NewChartData("삼성전자", []contracts.HistoryPoint{{Date: "2024-01-15", Weight: 30.5, Amount: 150_000_000}})

	var buf bytes.Buffer
	assert.NoError(t, RenderChart(&buf, d))
}

func TestRenderChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderChart(&buf, ChartData{}), ErrNoChartData)
}

func TestDateTicks(t *testing.T) {
	labels := make([]string, 30)
	for i := range labels {
		labels[i] = "d"
	}
	ticks := dateTicks(labels)
	assert.LessOrEqual(t, len(ticks), maxDateLabels+1)
	assert.Equal(t, 0.0, ticks[0].Value)

	assert.Len(t, dateTicks([]string{"a", "b"}), 2)
}

func TestPaddedTicks(t *testing.T) {
	ticks := paddedTicks(dateTicks([]string{"2024-01-15"}), 1)
	require.Len(t, ticks, 3)
	assert.Equal(t, -0.5, ticks[0].Value)
	assert.Empty(t, ticks[0].Label)
	assert.Equal(t, "2024-01-15", ticks[1].Label)
	assert.Equal(t, 0.5, ticks[2].Value)
}

func TestRenderChartInfiniteRange(t *testing.T) {
	d := NewChartData("X", []contracts.HistoryPoint{{Date: "a", Weight: -1e308}, {Date: "b", Weight: 1e308}})

	var buf bytes.Buffer
	assert.Error(t, RenderChart(&buf, d))
}

func TestPaddedRange(t *testing.T) {
	r := paddedRange([]float64{5, 5})
	assert.Less(t, r.Min, 5.0)
	assert.Greater(t, r.Max, 5.0)

	r = paddedRange([]float64{0, 0})
	assert.Equal(t, 0.0, r.Min)
	assert.Greater(t, r.Max, 0.0)
}
