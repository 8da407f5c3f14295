package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/clusterpanel/pkg/cache"
	"github.com/matzehuels/clusterpanel/pkg/errors"
	"github.com/matzehuels/clusterpanel/pkg/frame"
	"github.com/matzehuels/clusterpanel/pkg/graph"
	"github.com/matzehuels/clusterpanel/pkg/observability"
	"github.com/matzehuels/clusterpanel/pkg/panel"
)

func table(rows ...[3]any) frame.Data {
	src := frame.Field{Name: "source"}
	dst := frame.Field{Name: "destination"}
	cl := frame.Field{Name: "cluster"}
	for _, r := range rows {
		src.Values = append(src.Values, r[0])
		dst.Values = append(dst.Values, r[1])
		cl.Values = append(cl.Values, r[2])
	}
	return frame.Data{Series: []frame.Frame{{Fields: []frame.Field{src, dst, cl}}}}
}

func sample() frame.Data {
	return table(
		[3]any{"a", "b", "c1"},
		[3]any{"b", nil, "c1"},
	)
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.Panel.Width != panel.DefaultWidth || o.Panel.Height != panel.DefaultHeight {
		t.Errorf("size = %vx%v", o.Panel.Width, o.Panel.Height)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("formats = %v, want [svg]", o.Formats)
	}
	if o.Origins == "" || o.Edges == "" || o.Logger == nil {
		t.Errorf("defaults not applied: %+v", o)
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"format", Options{Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"origins", Options{Origins: "sideways"}, errors.ErrCodeInvalidOptions},
		{"width", Options{Panel: panel.Options{Width: -1}}, errors.ErrCodeInvalidOptions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestContentTypeAndExtension(t *testing.T) {
	tests := []struct {
		format, ct, ext string
	}{
		{FormatSVG, "image/svg+xml", ".svg"},
		{FormatHTML, "text/html; charset=utf-8", ".html"},
		{FormatJSON, "application/json", ".json"},
		{FormatNodelink, "image/svg+xml", ".nodelink.svg"},
	}
	for _, tt := range tests {
		if got := ContentType(tt.format); got != tt.ct {
			t.Errorf("ContentType(%s) = %q, want %q", tt.format, got, tt.ct)
		}
		if got := Extension(tt.format); got != tt.ext {
			t.Errorf("Extension(%s) = %q, want %q", tt.format, got, tt.ext)
		}
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), sample(), Options{
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
		Panel:   panel.Options{Text: "hello", ShowSeriesCount: true},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.NodeCount != 2 || res.Stats.EdgeCount != 1 || res.Stats.ClusterCount != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Stats.Rows != 2 {
		t.Errorf("rows = %d, want 2", res.Stats.Rows)
	}
	if res.Graph == nil {
		t.Error("graph is nil on a fresh layout")
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("cache info = %+v with a null cache", res.CacheInfo)
	}

	svg := string(res.Artifacts[FormatSVG])
	for _, want := range []string{
		`viewBox="0 -300 800 600"`,
		`translate(200, -100)`,
		`translate(310, -100)`,
		`Number of series: 1`,
		`Text option value: hello`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}

	l, err := graph.UnmarshalLayout(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if l.NodeCount() != 2 {
		t.Errorf("json nodes = %d, want 2", l.NodeCount())
	}

	if dot := string(res.Artifacts[FormatDOT]); !strings.Contains(dot, "digraph") {
		t.Errorf("dot artifact = %q", dot)
	}
}

func TestExecuteNoData(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), frame.Data{}, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Layout.NoData {
		t.Error("layout not marked as no data")
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte("No data")) {
		t.Errorf("svg = %s", res.Artifacts[FormatSVG])
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatHTML}}

	first, err := r.Execute(ctx, sample(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := r.Execute(ctx, sample(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("cache info = %+v, want both hits", second.CacheInfo)
	}
	if second.Graph != nil {
		t.Error("graph should be nil on a layout cache hit")
	}
	for _, f := range opts.Formats {
		if !bytes.Equal(first.Artifacts[f], second.Artifacts[f]) {
			t.Errorf("%s artifact differs between runs", f)
		}
	}

	// A different text reuses the layout but renders a new artifact.
	opts.Panel.Text = "changed"
	third, err := r.Execute(ctx, sample(), opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if !third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("cache info = %+v, want layout hit only", third.CacheInfo)
	}

	opts.Refresh = true
	fourth, err := r.Execute(ctx, sample(), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Errorf("refresh reported cache hits: %+v", fourth.CacheInfo)
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), sample(), Options{Formats: []string{"png"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(context.Background(), graph.NoDataLayout(100, 100), Options{}, "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	stages []string
}

func (h *recordingHooks) OnIngestStart(context.Context, int) { h.stages = append(h.stages, "ingest") }
func (h *recordingHooks) OnLayoutStart(context.Context, int) { h.stages = append(h.stages, "layout") }
func (h *recordingHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	if err == nil {
		h.stages = append(h.stages, "render")
	}
}

func TestExecuteReportsStages(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	defer observability.Reset()

	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), sample(), Options{}); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(h.stages, ","); got != "ingest,layout,render" {
		t.Errorf("stages = %s", got)
	}
}
