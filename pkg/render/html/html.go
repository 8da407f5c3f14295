// Package html renders a panel as an HTML fragment: a positioned wrapper div
// holding the SVG drawing and an overlaid text box, the way a dashboard host
// embeds the panel.
package html

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/matzehuels/clusterpanel/pkg/graph"
	"github.com/matzehuels/clusterpanel/pkg/panel"
	"github.com/matzehuels/clusterpanel/pkg/render/svg"
)

const svgStyle = "position: absolute; top: 0; left: 0;"

var fragment = template.Must(template.New("panel").Parse(`<div class="cluster-panel" style="{{.Style}}">
  {{.SVG}}
{{- if not .NoData}}
  <div class="text-box" style="{{.TextStyle}}">
{{- if .ShowSeriesCount}}
    <div data-testid="simple-panel-series-counter">Number of series: {{.SeriesCount}}</div>
{{- end}}
    <div>Text option value: {{.Text}}</div>
  </div>
{{- end}}
</div>
`))

type view struct {
	Style           template.CSS
	TextStyle       template.CSS
	SVG             template.HTML
	NoData          bool
	ShowSeriesCount bool
	SeriesCount     int
	Text            string
}

// Render draws l with o into an HTML fragment.
func Render(l graph.Layout, o panel.Options) ([]byte, error) {
	drawing := svg.Render(l, svg.WithOptions(o), svg.WithoutTextBox(), svg.WithStyle(svgStyle))

	v := view{
		Style:           template.CSS("font-family: " + svg.FontFamily + "; position: relative; width: " + num(l.Width) + "px; height: " + num(l.Height) + "px;"),
		TextStyle:       template.CSS("position: absolute; bottom: 0; left: 0; padding: " + num(svg.TextPadding) + "px;"),
		SVG:             template.HTML(bytes.TrimSpace(drawing)),
		NoData:          l.NoData,
		ShowSeriesCount: o.ShowSeriesCount,
		SeriesCount:     l.SeriesCount,
		Text:            o.Text,
	}

	var buf bytes.Buffer
	if err := fragment.Execute(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
