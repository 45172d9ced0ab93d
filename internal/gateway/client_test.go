package gateway

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
	"github.com/gmdjlee/etf-monitor/pkg/config"
	"github.com/gmdjlee/etf-monitor/pkg/httputil"
	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{Backend: config.BackendConfig{BaseURL: server.URL, Timeout: 2 * time.Second}}
	return NewClient(httputil.New(cfg, logger.Nop()), logger.Nop(), server.URL+"/")
}

func TestListETFs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/etfs", r.URL.Path)
		w.Write([]byte(`[{"ticker":"069500","name":"KODEX 200"},{"ticker":"102110","name":"TIGER 200"}]`))
	})

	etfs, err := client.ListETFs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []contracts.ETFSummary{
		{Ticker: "069500", Name: "KODEX 200"},
		{Ticker: "102110", Name: "TIGER 200"},
	}, etfs)
}

func TestComparison(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/etf/069500/comparison", r.URL.Path)
		w.Write([]byte(`{"prev_date":"2024-01-15","current_date":"2024-01-16","comparison":[
			{"stock_ticker":"005930","stock_name":"삼성전자","prev_weight":30,"current_weight":31,"change":1,"current_amount":100,"status":"비중 증가"}]}`))
	})

	cmp, err := client.Comparison(context.Background(), "069500")
	require.NoError(t, err)
	assert.Equal(t, "069500", cmp.ETFTicker, "ticker falls back to the requested one")
	require.Len(t, cmp.Holdings, 1)
	assert.Equal(t, contracts.StatusIncrease, cmp.Holdings[0].Status)
}

func TestStockHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/etf/069500/stock/005930/history", r.URL.Path)
		w.Write([]byte(`{"stock_name":"삼성전자","history":[{"date":"2024-01-15","weight":30.5,"amount":150000000.0}]}`))
	})

	h, err := client.StockHistory(context.Background(), "069500", "005930")
	require.NoError(t, err)
	require.Len(t, h.History, 1)
	assert.Equal(t, contracts.Amount(150000000), h.History[0].Amount)
}

func TestThemeStatsEscapesTheme(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats/theme/2차전지 소재", r.URL.Path)
		assert.Contains(t, r.RequestURI, "%20")
		w.Write([]byte(`{"date":"2024-01-16","duplicate_stocks":[{"name":"에코프로","ticker":"086520","etf_count":4,"total_amount":1000,"avg_weight":3.2}]}`))
	})

	table, err := client.Stats(context.Background(), contracts.StatsDuplicate, "2차전지 소재")
	require.NoError(t, err)
	assert.Equal(t, contracts.StatsDuplicate, table.Type)
	assert.Equal(t, "2차전지 소재", table.Theme)
	assert.Equal(t, "2024-01-16", table.Date)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 4, table.Rows[0].ETFCount)
}

func TestStatsRouting(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"date":"2024-01-16","stocks":[]}`))
	})

	ctx := context.Background()
	dup, err := client.Stats(ctx, contracts.StatsDuplicate, "")
	require.NoError(t, err)
	amt, err := client.Stats(ctx, contracts.StatsAmount, "ignored")
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/stats/duplicate-stocks", "/api/stats/amount-ranking"}, paths)
	assert.Equal(t, contracts.StatsDuplicate, dup.Type)
	assert.Equal(t, contracts.StatsAmount, amt.Type)

	_, err = client.Stats(ctx, contracts.StatsType("bogus"), "")
	assert.Error(t, err)
}

func TestListThemes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/config/themes", r.URL.Path)
		w.Write([]byte(`{"themes":["반도체","2차전지"],"count":2}`))
	})

	themes, err := client.ListThemes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"반도체", "2차전지"}, themes)
}

func TestSystemPosts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		switch r.URL.Path {
		case "/api/system/initialize":
			w.Write([]byte(`{"status":"success","message":"초기화 완료"}`))
		case "/api/system/update":
			w.Write([]byte(`{"status":"success","message":"업데이트 완료"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	msg, err := client.Initialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "초기화 완료", msg.Message)

	msg, err = client.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "업데이트 완료", msg.Message)
}

func TestErrorsCollapseToGatewayError(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"status":"error","message":"ETF 목록을 가져오는 데 실패했습니다."}`))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.ListETFs(context.Background())
			require.Error(t, err)

			var gwErr *Error
			require.True(t, errors.As(err, &gwErr))
			assert.Equal(t, OpListETFs, gwErr.Op)
			assert.Equal(t, tt.wantStatus, gwErr.StatusCode)
			assert.Equal(t, UserMessage(OpListETFs), AlertFor(err))
		})
	}
}

func TestTransportFailure(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendConfig{Timeout: time.Second}}
	client := NewClient(httputil.New(cfg, logger.Nop()), logger.Nop(), "http://127.0.0.1:1")

	_, err := client.Comparison(context.Background(), "069500")

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, 0, gwErr.StatusCode)
	assert.Equal(t, "ETF 정보를 불러오는 중 오류가 발생했습니다.", gwErr.UserMessage())
}

func TestExport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/etf/069500/export", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("종목코드,종목명\n005930,삼성전자\n"))
	})

	assert.Equal(t, client.BaseURL()+"/api/etf/069500/export", client.ExportURL("069500"))

	var buf bytes.Buffer
	n, err := client.DownloadExport(context.Background(), "069500", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Contains(t, buf.String(), "삼성전자")
}

func TestComparisonExport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/etf/069500/export-comparison", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("종목코드,종목명,이전 비중,현재 비중\n005930,삼성전자,30,31\n"))
	})

	assert.Equal(t, client.BaseURL()+"/api/etf/069500/export-comparison", client.ComparisonExportURL("069500"))

	var buf bytes.Buffer
	_, err := client.DownloadComparisonExport(context.Background(), "069500", &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "현재 비중")
}

func TestExportNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	var buf bytes.Buffer
	_, err := client.DownloadExport(context.Background(), "999999", &buf)
	assert.Equal(t, UserMessage(OpExport), AlertFor(err))
	assert.Zero(t, buf.Len())
}

func TestHealth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy","database":"connected"}`))
	})

	h, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, h.Healthy())
}

func TestAlertForUnknownError(t *testing.T) {
	assert.Equal(t, "요청 처리 중 오류가 발생했습니다.", AlertFor(errors.New("boom")))
}
