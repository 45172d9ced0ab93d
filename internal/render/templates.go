package render

import (
	"html/template"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
)

var funcs = template.FuncMap{
	"statusClass": func(s contracts.Status) string { return StatusClass(s) },
	"colspan":     func(cols []string) int { return len(cols) },
}

var templates = template.Must(template.New("render").Funcs(funcs).Parse(`
{{define "etf-list"}}{{range .Items}}<li class="etf-item{{if .Active}} active{{end}}" data-ticker="{{.Ticker}}"><form method="post" action="/actions/select"><input type="hidden" name="ticker" value="{{.Ticker}}"><button type="submit"><span class="ticker">{{.Ticker}}</span><span class="name">{{.Name}}</span></button></form></li>{{else}}<li class="no-results">{{.NoResults}}</li>{{end}}{{end}}

{{define "holdings-table"}}<table id="holdings-table"><thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead><tbody>{{range .Rows}}<tr class="holding-row" data-stock="{{.Ticker}}"><td class="rank">{{.Rank}}</td><td>{{.Ticker}}</td><td><form method="post" action="/actions/row"><input type="hidden" name="stock" value="{{.Ticker}}"><input type="hidden" name="name" value="{{.Name}}"><button type="submit" class="link">{{.Name}}</button></form></td><td>{{.PrevWeight}}</td><td>{{.CurWeight}}</td><td class="{{.ChangeClass}}">{{.Change}}</td><td>{{.Amount}}</td><td><span class="status {{.StatusClass}}">{{.Status}}</span></td></tr>{{else}}<tr class="placeholder"><td colspan="{{colspan .Columns}}" class="no-data">{{.NoData}}</td></tr>{{end}}</tbody></table>{{end}}

{{define "stats-table"}}<table id="stats-table" data-type="{{.Type}}"><thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead><tbody>{{range .Rows}}<tr><td class="rank">{{.Rank}}</td><td>{{.Name}}</td><td>{{.Ticker}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>{{else}}<tr class="placeholder"><td colspan="{{colspan .Columns}}" class="no-data">{{.NoData}}</td></tr>{{end}}</tbody></table>{{end}}

{{define "app"}}<div id="app" class="{{if .Busy}}busy{{end}}" data-view="{{.View}}" data-version="{{.Version}}">
<header>
  <h1>ETF 모니터</h1>
  <form method="post" action="/actions/refresh"><button type="submit" id="refresh-btn">데이터 업데이트</button></form>
  <form method="post" action="/actions/toggle"><button type="submit" id="toggle-view">{{if eq .View "stats"}}ETF 보기{{else}}통계 보기{{end}}</button></form>
</header>
{{if .Alert}}<div class="alert" role="alert">{{.Alert}}<form method="post" action="/actions/dismiss"><button type="submit">닫기</button></form></div>{{end}}
{{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}
<aside>
  <form method="post" action="/actions/search"><input type="search" name="q" value="{{.Search}}" placeholder="ETF 검색"><button type="submit">검색</button></form>
  <ul id="etf-list">{{.ETFList}}</ul>
</aside>
<main>
{{if eq .View "stats"}}
  <section id="stats-panel">
    <form method="post" action="/actions/stats-type"><select name="type" onchange="this.form.requestSubmit()">
      <option value="duplicate"{{if eq .Stats.Type "duplicate"}} selected{{end}}>중복 종목</option>
      <option value="amount"{{if eq .Stats.Type "amount"}} selected{{end}}>평가금액 순위</option>
    </select></form>
    <form method="post" action="/actions/theme"><select name="theme" id="theme-select" onchange="this.form.requestSubmit()"{{if not .Stats.ThemeEnabled}} disabled{{end}}>
      <option value="">전체</option>{{$theme := .Stats.Theme}}{{range .Stats.Themes}}<option value="{{.}}"{{if eq . $theme}} selected{{end}}>{{.}}</option>{{end}}
    </select></form>
    {{if .Stats.Date}}<p class="date">기준일: {{.Stats.Date}}</p>{{end}}
    {{.Stats.Table}}
  </section>
{{else if .Detail}}
  <section id="etf-detail">
    <h2>{{.Detail.Name}} <small>{{.Detail.Ticker}}</small></h2>
    <p class="dates">{{.Detail.PrevDate}} → {{.Detail.CurrentDate}}</p>
    <ul class="status-summary">{{range .Detail.Summary}}<li class="{{.Class}}">{{.Status}} {{.Count}}</li>{{end}}</ul>
    <form method="post" action="/actions/count"><select name="count" id="holdings-count" onchange="this.form.requestSubmit()">{{$count := .Detail.Count}}{{range .Detail.Counts}}<option value="{{.}}"{{if eq . $count}} selected{{end}}>{{if eq . "all"}}전체{{else}}상위 {{.}}{{end}}</option>{{end}}</select></form>
    <form method="post" action="/actions/export"><button type="submit" id="export-btn">CSV 내보내기</button></form>
    <form method="post" action="/actions/export-comparison"><button type="submit" id="export-comparison-btn">비교 CSV 내보내기</button></form>
    {{.Detail.Table}}
  </section>
  {{if .Chart}}<section id="chart-panel">
    <h3>{{.Chart.StockName}} 비중 추이</h3>
    <form method="post" action="/actions/close-chart"><button type="submit">닫기</button></form>
    {{if .Chart.Empty}}<p class="no-data">데이터가 없습니다</p>{{else}}<div class="chart">{{.Chart.SVG}}</div>{{end}}
  </section>{{end}}
{{else}}
  <section id="welcome">
    <h2>ETF 모니터에 오신 것을 환영합니다</h2>
    <p>왼쪽 목록에서 ETF를 선택하면 보유 종목 변화를 확인할 수 있습니다.</p>
  </section>
{{end}}
</main>
<div id="loading-overlay"{{if not .Busy}} hidden{{end}}><div class="spinner">로딩 중...</div></div>
</div>{{end}}

{{define "page"}}<!doctype html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>ETF 모니터</title>
<style>
body{font-family:-apple-system,"Malgun Gothic",sans-serif;margin:0;color:#1f2937}
#app{display:grid;grid-template-columns:280px 1fr;grid-template-rows:auto auto 1fr;min-height:100vh}
#app.busy{pointer-events:none}
header{grid-column:1/3;display:flex;gap:8px;align-items:center;padding:8px 16px;background:#111827;color:#fff}
header h1{font-size:18px;margin-right:auto}
aside{border-right:1px solid #e5e7eb;padding:8px;overflow-y:auto}
main{padding:16px}
#etf-list{list-style:none;padding:0}
.etf-item button{width:100%;text-align:left;background:none;border:0;padding:6px;cursor:pointer}
.etf-item.active button{background:#dbeafe}
.ticker{font-weight:600;margin-right:6px}
table{border-collapse:collapse;width:100%}
th,td{border-bottom:1px solid #e5e7eb;padding:4px 8px;text-align:right}
.positive{color:#dc2626}.negative{color:#2563eb}.neutral{color:#6b7280}
.status-new{color:#16a34a}.status-removed{color:#6b7280;text-decoration:line-through}
.status-increase{color:#dc2626}.status-decrease{color:#2563eb}.status-hold{color:#6b7280}
button.link{background:none;border:0;color:#1d4ed8;cursor:pointer}
.alert{grid-column:1/3;background:#fee2e2;padding:8px 16px}
.notice{grid-column:1/3;background:#dcfce7;padding:8px 16px}
#loading-overlay{position:fixed;inset:0;background:rgba(255,255,255,.6);display:flex;align-items:center;justify-content:center;pointer-events:all}
#loading-overlay[hidden]{display:none}
</style>
</head>
<body>
{{template "app" .}}
<script>
(function(){
  var ws;
  function connect(){
    ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
    ws.onmessage = function(ev){
      var m = JSON.parse(ev.data);
      if (m.type === 'render') { document.getElementById('app').outerHTML = m.html; }
      if (m.type === 'navigate') { window.location.href = m.url; }
      if (m.alert) { window.alert(m.alert); }
    };
    ws.onclose = function(){ setTimeout(connect, 2000); };
  }
  connect();
  document.addEventListener('submit', function(e){
    var f = e.target, a = f.getAttribute('action') || '';
    if (!ws || ws.readyState !== 1 || a.indexOf('/actions/') !== 0) { return; }
    e.preventDefault();
    var msg = {type: a.substring(9)};
    new FormData(f).forEach(function(v, k){ msg[k] = v; });
    ws.send(JSON.stringify(msg));
  });
})();
</script>
</body>
</html>{{end}}
`))
