package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/acurite-monitor/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AcuRite Monitor</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.ok { color: green; }
.stale { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
.live-dot { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-left: 6px; vertical-align: middle; }
.live-dot.ok { background: green; }
.live-dot.err { background: red; }
.live-dot.pending { background: orange; }
</style>
</head>
<body>
<h1>AcuRite Monitor<span id="live-dot" class="live-dot pending" title="connecting"></span></h1>

<h2>Devices</h2>
<table id="devices">
<tr><th>Device</th><th>Model</th><th>Temp (C)</th><th>Humidity (%)</th><th>Status</th></tr>
{{range $name, $d := .Devices}}
<tr id="row-{{$name}}"><td>{{$name}}</td><td>{{$d.Model}}</td><td id="temp-{{$name}}">{{printf "%.1f" $d.Temperature}}</td><td id="hum-{{$name}}">{{if $d.Humidity}}{{printf "%.1f" $d.Humidity}}{{else}}—{{end}}</td><td class="{{if eq $d.Status "OK"}}ok{{else}}stale{{end}}">{{$d.Status}}</td></tr>
{{end}}
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPPort}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
<script>
(function() {
  var dot = document.getElementById("live-dot");
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/ws");

  ws.onopen = function() { dot.className = "live-dot ok"; dot.title = "live"; };
  ws.onclose = function() { dot.className = "live-dot err"; dot.title = "disconnected"; };
  ws.onerror = function() { dot.className = "live-dot err"; dot.title = "error"; };

  ws.onmessage = function(evt) {
    try {
      var r = JSON.parse(evt.data);
      var tempEl = document.getElementById("temp-" + r.device);
      var humEl = document.getElementById("hum-" + r.device);
      if (tempEl) tempEl.textContent = r.temperature_c.toFixed(1);
      if (humEl && r.humidity_pct) humEl.textContent = r.humidity_pct.toFixed(1);
    } catch (e) {}
  };
})();
</script>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
