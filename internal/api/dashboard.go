package api

import (
	"html/template"
	"log"
	"net/http"
)

// dashboardHandler serves the single-page upload dashboard. The page posts
// the chosen file to the analyze endpoint and renders the four result blocks
// client-side.
func (h *Handler) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, nil); err != nil {
		log.Printf("Failed to render dashboard: %v", err)
	}
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<title>TrafficLens</title>
<style>
body { font-family: sans-serif; margin: 2em auto; max-width: 720px; }
table { border-collapse: collapse; margin: 0.5em 0 1.5em; }
td, th { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; }
#error { color: #b00; }
.metric { font-size: 2em; font-weight: bold; }
</style>
</head>
<body>
<h1>TrafficLens</h1>
<p>Upload a half-hour traffic counts file (one <code>&lt;timestamp&gt; &lt;count&gt;</code> pair per line).</p>
<form id="upload">
  <input type="file" name="file" required>
  <button type="submit">Analyze</button>
</form>
<p id="error"></p>
<div id="results" style="display:none">
  <h2>Total cars</h2>
  <p class="metric" id="total"></p>
  <h2>Cars per day</h2>
  <table id="per-day"><tr><th>Date</th><th>Cars</th></tr></table>
  <h2>Top 3 busiest half hours</h2>
  <table id="top3"><tr><th>Period start</th><th>Cars</th></tr></table>
  <h2>Quietest 1.5 hours</h2>
  <table id="window"><tr><th>Period start</th><th>Cars</th></tr></table>
  <p id="meta"></p>
</div>
<script>
function fillRows(id, rows) {
  const table = document.getElementById(id);
  while (table.rows.length > 1) table.deleteRow(1);
  for (const [k, v] of rows) {
    const tr = table.insertRow();
    tr.insertCell().textContent = k;
    tr.insertCell().textContent = v;
  }
}
document.getElementById("upload").addEventListener("submit", async (e) => {
  e.preventDefault();
  document.getElementById("error").textContent = "";
  const resp = await fetch("/api/v1/analyze", { method: "POST", body: new FormData(e.target) });
  const body = await resp.json();
  if (!resp.ok) {
    document.getElementById("results").style.display = "none";
    document.getElementById("error").textContent = body.error || resp.statusText;
    return;
  }
  const a = body.analysis;
  document.getElementById("total").textContent = a.total_cars;
  fillRows("per-day", Object.entries(a.cars_per_day).sort());
  fillRows("top3", a.top_3_periods.map(r => [r.timestamp, r.count]));
  fillRows("window", a.lowest_1_5_hour_window.map(r => [r.timestamp, r.count]));
  document.getElementById("meta").textContent =
    body.meta.records_processed + " records processed, " + body.meta.lines_skipped + " lines skipped.";
  document.getElementById("results").style.display = "block";
});
</script>
</body>
</html>
`))
