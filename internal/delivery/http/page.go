package http

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/streetlights/internal/domain"
	"github.com/smartcity/streetlights/internal/loader"
)

type option struct {
	Value    string
	Selected bool
}

type pageData struct {
	Title          string
	Districts      []option
	Types          []option
	HasUnspecified bool
	Unspecified    bool
	WattageMin     float64
	WattageMax     float64
	Cutoff         string
	Mode           domain.MapMode
	Dashboard      domain.Dashboard
}

func options(values []string, selected domain.StringSet) []option {
	out := make([]option, 0, len(values))
	for _, v := range values {
		out = append(out, option{Value: v, Selected: selected.Has(v)})
	}
	return out
}

// Index renders the dashboard page for the requested filter
func (h *Handler) Index(c *fiber.Ctx) error {
	spec, mode, err := h.interaction(c)
	if err != nil {
		return err
	}
	opts, err := h.dashboardSvc.Options(c.Context())
	if err != nil {
		return datasetError(err)
	}
	dash, err := h.dashboardSvc.Dashboard(c.Context(), spec, mode)
	if err != nil {
		return datasetError(err)
	}

	data := pageData{
		Title:          "Eindhoven Public Lights Dashboard",
		Districts:      options(opts.Districts, spec.Districts),
		Types:          options(opts.Types, spec.Types),
		HasUnspecified: opts.HasUnspecified,
		Unspecified:    spec.Unspecified,
		WattageMin:     spec.WattageMin,
		WattageMax:     spec.WattageMax,
		Cutoff:         spec.MaintenanceCutoff.Format(loader.DateLayout),
		Mode:           mode,
		Dashboard:      dash,
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"></script>
<script src="https://unpkg.com/leaflet.heat@0.2.0/dist/leaflet-heat.js"></script>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 0; display: flex; }
aside { width: 260px; padding: 16px; background: #f3f4f6; min-height: 100vh; box-sizing: border-box; }
main { flex: 1; padding: 16px 24px; }
select { width: 100%; }
.map { height: 500px; max-width: 900px; }
.empty { color: #6b7280; font-style: italic; }
table { border-collapse: collapse; font-size: 13px; }
th, td { border: 1px solid #e5e7eb; padding: 4px 8px; text-align: left; }
</style>
</head>
<body>
<aside>
<h2>Filters</h2>
<form method="get" action="/">
<label>District(s)</label>
<select name="district" multiple size="8">
{{range .Districts}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
{{end}}</select>
<input type="hidden" name="district" value="">
<label>Light type(s)</label>
<select name="type" multiple size="6">
{{range .Types}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
{{end}}</select>
<input type="hidden" name="type" value="">
{{if .HasUnspecified}}<label><input type="checkbox" name="unspecified" value="true"{{if .Unspecified}} checked{{end}}> Include lights without a type</label>{{end}}
<label>Wattage range</label>
<input type="number" step="any" name="wattage_min" value="{{.WattageMin}}">
<input type="number" step="any" name="wattage_max" value="{{.WattageMax}}">
<label>Maintenance before</label>
<input type="date" name="cutoff" value="{{.Cutoff}}">
<p>
<label><input type="radio" name="mode" value="clustered"{{if eq .Mode "clustered"}} checked{{end}}> Clustered</label>
<label><input type="radio" name="mode" value="flat"{{if eq .Mode "flat"}} checked{{end}}> Non-Clustered</label>
</p>
<button type="submit">Apply</button>
</form>
</aside>
<main>
<h1>{{.Title}}</h1>
<p>{{.Dashboard.Count}} lights match the current filters.</p>

<h3>Map of Lights Needing Maintenance</h3>
{{if .Dashboard.Empty}}<p class="empty">No data for the current filters.</p>{{end}}
<div id="markers" class="map"></div>

<h3>Light Density Heatmap</h3>
<div id="heat" class="map"></div>

<h3>Maintenance Gantt Chart</h3>
<div id="gantt"></div>

<h3>Timeline Animation of Light Placement</h3>
<div id="placements"></div>

<h3>Light Type Distribution</h3>
<div id="types"></div>

<h3>Prioritized Maintenance Table</h3>
{{if .Dashboard.Empty}}<p class="empty">No data for the current filters.</p>{{else}}
<table>
<tr><th>OBJECTID</th><th>DISTRICT</th><th>NEIGHBORHOOD</th><th>DATE_PLACEMENT</th><th>DATE_MAINTENENCE</th><th>TYPE</th><th>COLOR</th><th>WATTAGE</th><th>priority_score</th></tr>
{{range .Dashboard.Table}}<tr><td>{{.ObjectID}}</td><td>{{.District}}</td><td>{{.Neighborhood}}</td><td>{{.DatePlacement}}</td><td>{{.DateMaintenance}}</td><td>{{if .Type}}{{.Type}}{{end}}</td><td>{{.Color}}</td><td>{{if .Wattage}}{{.Wattage}}{{end}}</td><td>{{printf "%.2f" .PriorityScore}}</td></tr>
{{end}}</table>{{end}}
</main>
<script>
const dash = {{.Dashboard}};
const center = [dash.markers.center.lat, dash.markers.center.lon];

const markerMap = L.map('markers').setView(center, 13);
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png').addTo(markerMap);
const group = dash.markers.mode === 'clustered' ? L.markerClusterGroup() : L.featureGroup();
dash.markers.markers.forEach(m => {
  L.circleMarker([m.lat, m.lon], {radius: m.radius, color: m.color, fill: true, fillOpacity: 0.7})
    .bindPopup(m.label).addTo(group);
});
group.addTo(markerMap);

const heatMap = L.map('heat').setView(center, 13);
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png').addTo(heatMap);
if (dash.heatmap.length) { L.heatLayer(dash.heatmap).addTo(heatMap); }

const groups = [...new Set(dash.intervals.map(i => i.group))];
Plotly.newPlot('gantt', groups.map(g => {
  const rows = dash.intervals.filter(i => i.group === g);
  return {
    type: 'bar', orientation: 'h', name: g,
    y: rows.map(r => r.label),
    base: rows.map(r => r.start),
    x: rows.map(r => new Date(r.end) - new Date(r.start)),
  };
}), {title: 'Light Lifecycle (Placement to Maintenance)', xaxis: {type: 'date'}, yaxis: {autorange: 'reversed'}, barmode: 'overlay'});

const frames = dash.placements.map(f => ({
  name: String(f.year),
  data: [{
    type: 'scattergeo', lat: f.points.map(p => p.lat), lon: f.points.map(p => p.lon),
    text: f.points.map(p => p.type || 'unspecified'), marker: {size: f.points.map(p => Math.max(4, Math.sqrt(p.wattage || 0) * 2))},
  }],
}));
Plotly.newPlot('placements', frames.length ? frames[0].data : [{type: 'scattergeo', lat: [], lon: []}], {
  title: 'Public Light Placement Over Time', geo: {projection: {type: 'natural earth'}},
  sliders: [{steps: frames.map(f => ({label: f.name, method: 'animate', args: [[f.name]]}))}],
}).then(() => { if (frames.length) Plotly.addFrames('placements', frames); });

const typeNames = Object.keys(dash.types.counts);
const typeCounts = typeNames.map(t => dash.types.counts[t]);
if (dash.types.unspecified) { typeNames.push('(no type)'); typeCounts.push(dash.types.unspecified); }
Plotly.newPlot('types', [{
  type: 'bar', x: typeNames, y: typeCounts, text: typeCounts,
}], {title: 'Distribution of Light Types'});
</script>
</body>
</html>
`
