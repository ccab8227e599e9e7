package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageController serves the single-page dashboard UI.
type PageController struct{}

// NewPageController creates a new page controller.
func NewPageController() *PageController {
	return &PageController{}
}

// HandleIndex serves the dashboard page: one ticker input wired to the
// analysis endpoint.
// GET /
func (pc *PageController) HandleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>ORATS Options Analysis Dashboard</title>
<style>
  body { font-family: sans-serif; margin: 2rem auto; max-width: 72rem; color: #222; }
  h1 { font-size: 1.5rem; }
  input { font-size: 1rem; padding: 0.4rem; width: 12rem; }
  button { font-size: 1rem; padding: 0.4rem 1rem; }
  table { border-collapse: collapse; margin: 0.5rem 0 1.5rem; }
  th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: right; }
  th { background: #f0f0f0; }
  .error { color: #b00; }
  .warning { color: #960; }
  #interpretation { white-space: pre-wrap; }
</style>
</head>
<body>
<h1>ORATS Options Analysis Dashboard</h1>
<form id="form">
  <input id="ticker" placeholder="Enter ticker (e.g., AAPL)" value="AAPL">
  <button type="submit">Analyze</button>
</form>
<div id="status"></div>
<div id="output"></div>
<script>
const form = document.getElementById('form');
const statusEl = document.getElementById('status');
const output = document.getElementById('output');

function renderTable(title, rows, columns) {
  if (!rows || rows.length === 0) {
    return '<h2>' + title + '</h2><p>No data.</p>';
  }
  let html = '<h2>' + title + '</h2><table><tr>';
  for (const col of columns) html += '<th>' + col + '</th>';
  html += '</tr>';
  for (const row of rows) {
    html += '<tr>';
    for (const col of columns) {
      let v = row[col];
      if (v === null || v === undefined) v = '';
      if (col === 'expiration_date') v = String(v).slice(0, 10);
      html += '<td>' + v + '</td>';
    }
    html += '</tr>';
  }
  return html + '</table>';
}

form.addEventListener('submit', async (e) => {
  e.preventDefault();
  const ticker = document.getElementById('ticker').value.trim().toUpperCase();
  if (!ticker) return;
  statusEl.textContent = 'Analyzing ' + ticker + '...';
  output.innerHTML = '';
  try {
    const resp = await fetch('/api/v1/analysis/' + encodeURIComponent(ticker));
    const data = await resp.json();
    if (!resp.ok) {
      statusEl.innerHTML = '<p class="error">' + (data.error || 'Request failed') + '</p>';
      return;
    }
    statusEl.textContent = '';
    let html = '';
    if (data.current_price !== null) {
      html += '<p><strong>Current ' + ticker + ' price:</strong> ' + data.current_price + '</p>';
    }
    for (const w of data.warnings || []) {
      html += '<p class="warning">' + w + '</p>';
    }
    html += renderTable('Summaries Data', data.summaries,
      ['ticker', 'tradeDate', 'stockPrice', 'annActDiv', 'iv30d', 'iv60d', 'iv90d', 'orFcst20d']);
    html += renderTable('ATM Options (Next 2 Months)', data.atm_options,
      ['expiration_date', 'strike', 'callMidIv', 'putMidIv', 'delta', 'gamma', 'theta', 'vega']);
    html += renderTable('ORATS Core Data', data.cores,
      ['ticker', 'tradeDate', 'priorCls', 'pxAtmIv', 'contango', 'atmIvM1', 'dtExM1', 'atmIvM2', 'dtExM2', 'slope', 'deriv']);
    html += '<h2>AI Interpretation</h2>';
    if (data.interpretation_error) {
      html += '<p class="error">' + data.interpretation_error + '</p>';
    } else {
      html += '<div id="interpretation">' + (data.interpretation || '') + '</div>';
    }
    output.innerHTML = html;
  } catch (err) {
    statusEl.innerHTML = '<p class="error">' + err + '</p>';
  }
});
</script>
</body>
</html>`
