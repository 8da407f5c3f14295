package svg

import (
	"strings"
	"testing"

	"github.com/matzehuels/clusterpanel/pkg/frame"
	"github.com/matzehuels/clusterpanel/pkg/graph"
	"github.com/matzehuels/clusterpanel/pkg/ingest"
	"github.com/matzehuels/clusterpanel/pkg/panel"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		Width:       800,
		Height:      600,
		SeriesCount: 1,
		Clusters: []graph.ClusterLayout{
			{Name: "c1", X: 200, Y: -100, Nodes: []graph.NodeLayout{
				{Name: "a", Cluster: "c1", X: 200, Y: -100},
				{Name: "b", Cluster: "c1", X: 310, Y: -100},
			}},
			{Name: "c2", X: 235, Y: -100, Nodes: []graph.NodeLayout{
				{Name: "<x>", Cluster: "c2", X: 235, Y: -100},
			}},
		},
		Edges: []graph.EdgeLayout{
			{Source: "a", Target: "b", Cluster: "c1"},
			{Source: "a", Target: "ghost", Cluster: "c1"},
		},
	}
}

func TestRenderRoot(t *testing.T) {
	out := string(Render(sampleLayout()))

	for _, want := range []string{
		`width="800"`,
		`height="600"`,
		`viewBox="0 -300 800 600"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("document should end with </svg>")
	}
}

func TestViewBox(t *testing.T) {
	tests := []struct {
		w, h float64
		want string
	}{
		{800, 600, "0 -300 800 600"},
		{100, 51, "0 -25.5 100 51"},
	}
	for _, tt := range tests {
		if got := ViewBox(tt.w, tt.h); got != tt.want {
			t.Errorf("ViewBox(%v, %v) = %q, want %q", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderNodes(t *testing.T) {
	out := string(Render(sampleLayout(), WithColor("red")))

	if got := strings.Count(out, "<circle"); got != 3 {
		t.Errorf("circles = %d, want 3", got)
	}
	for _, want := range []string{
		`<g id="cluster-0-node-0" fill="#F2495C"><circle r="30" transform="translate(200, -100)"/></g>`,
		`<g id="cluster-0-node-1" fill="#F2495C"><circle r="30" transform="translate(310, -100)"/></g>`,
		`<g id="cluster-1-node-0" fill="#F2495C"><circle r="30" transform="translate(235, -100)"/></g>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestRenderTextBox(t *testing.T) {
	t.Run("text only", func(t *testing.T) {
		out := string(Render(sampleLayout(), WithText("hi & bye")))
		if strings.Contains(out, "Number of series") {
			t.Error("series count should be hidden by default")
		}
		if !strings.Contains(out, `<text x="10" y="290">Text option value: hi &amp; bye</text>`) {
			t.Errorf("text line missing or misplaced:\n%s", out)
		}
	})

	t.Run("with series count", func(t *testing.T) {
		out := string(Render(sampleLayout(), WithText("x"), WithSeriesCount()))
		if !strings.Contains(out, `<text x="10" y="272">Number of series: 1</text>`) {
			t.Errorf("series line missing or misplaced:\n%s", out)
		}
		if !strings.Contains(out, `<text x="10" y="290">Text option value: x</text>`) {
			t.Errorf("text line missing or misplaced:\n%s", out)
		}
	})

	t.Run("without text box", func(t *testing.T) {
		out := string(Render(sampleLayout(), WithoutTextBox()))
		if strings.Contains(out, "text-box") {
			t.Error("text box should be omitted")
		}
	})
}

func TestRenderEdgesAndLabels(t *testing.T) {
	plain := string(Render(sampleLayout()))
	if strings.Contains(plain, "<line") || strings.Contains(plain, `class="label"`) {
		t.Error("edges and labels should be off by default")
	}

	out := string(Render(sampleLayout(), WithEdges(), WithLabels(), WithColor("dark-blue")))
	if got := strings.Count(out, "<line"); got != 1 {
		t.Errorf("lines = %d, want 1 (edge to an unplaced node is skipped)", got)
	}
	if !strings.Contains(out, `x1="200" y1="-100" x2="310" y2="-100"`) {
		t.Errorf("edge coordinates missing:\n%s", out)
	}
	if got := strings.Count(out, `class="label"`); got != 3 {
		t.Errorf("labels = %d, want 3", got)
	}
	if !strings.Contains(out, "&lt;x&gt;") {
		t.Error("labels should be escaped")
	}
	if !strings.Contains(out, `fill="#FFFFFF"`) {
		t.Error("labels on dark fill should be white")
	}
}

func TestRenderNoData(t *testing.T) {
	out := string(Render(graph.NoDataLayout(400, 300), WithText("ignored")))

	if !strings.Contains(out, NoDataText) {
		t.Error("placeholder text missing")
	}
	if strings.Contains(out, "<circle") || strings.Contains(out, "Text option value") {
		t.Error("placeholder should not draw nodes or the text box")
	}
	if !strings.Contains(out, `viewBox="0 -150 400 300"`) {
		t.Errorf("placeholder should keep the panel viewBox:\n%s", out)
	}
}

func TestRenderFromIngest(t *testing.T) {
	d := frame.Data{Series: []frame.Frame{{Fields: []frame.Field{
		{Name: ingest.ColumnSource, Values: []any{"a", "a", "b"}},
		{Name: ingest.ColumnDestination, Values: []any{"b", "b", ""}},
		{Name: ingest.ColumnCluster, Values: []any{"c1", "c1", "c1"}},
	}}}}
	res := ingest.Build(d, ingest.Options{})
	l := graph.BuildLayout(res.Graph, 800, 600, res.SeriesCount, nil)

	o := panel.DefaultOptions()
	o.ShowSeriesCount = true
	out := string(Render(l, WithOptions(o)))

	if got := strings.Count(out, "<circle"); got != 2 {
		t.Errorf("circles = %d, want 2", got)
	}
	for _, want := range []string{
		`translate(200, -100)`,
		`translate(310, -100)`,
		`fill="#73BF69"`,
		"Number of series: 1",
		"Text option value: " + panel.DefaultText,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderWithStyle(t *testing.T) {
	out := string(Render(sampleLayout(), WithStyle("position: absolute; top: 0; left: 0;")))
	if !strings.Contains(out, `style="position: absolute; top: 0; left: 0;"`) {
		t.Error("style attribute missing")
	}
}
