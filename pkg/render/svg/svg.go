package svg

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"github.com/matzehuels/clusterpanel/pkg/graph"
	"github.com/matzehuels/clusterpanel/pkg/panel"
)

// Drawing constants shared with the HTML wrapper.
const (
	NodeRadius  = 30.0
	TextPadding = 10.0
	FontSize    = 14.0
	LineHeight  = 18.0
	FontFamily  = "Open Sans"
	NoDataText  = "No data"
)

type Option func(*renderer)

type renderer struct {
	opts    panel.Options
	textBox bool
	style   string
}

// WithOptions draws with the color, text and toggles of o.
func WithOptions(o panel.Options) Option { return func(r *renderer) { r.opts = o } }
func WithColor(c string) Option          { return func(r *renderer) { r.opts.Color = c } }
func WithText(s string) Option           { return func(r *renderer) { r.opts.Text = s } }
func WithSeriesCount() Option            { return func(r *renderer) { r.opts.ShowSeriesCount = true } }
func WithEdges() Option                  { return func(r *renderer) { r.opts.ShowEdges = true } }
func WithLabels() Option                 { return func(r *renderer) { r.opts.Labels = true } }

// WithoutTextBox leaves the text box to an enclosing document.
func WithoutTextBox() Option { return func(r *renderer) { r.textBox = false } }

// WithStyle sets the style attribute of the root element.
func WithStyle(css string) Option { return func(r *renderer) { r.style = css } }

// Render draws l. Nodes are emitted cluster by cluster in creation order and
// keyed "cluster-<i>-node-<j>".
func Render(l graph.Layout, opts ...Option) []byte {
	r := renderer{opts: panel.DefaultOptions(), textBox: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	r.open(&buf, l)
	if l.NoData {
		renderNoData(&buf, l)
		buf.WriteString("</svg>\n")
		return buf.Bytes()
	}

	color := panel.ResolveColor(r.opts.Color)
	if r.opts.ShowEdges {
		renderEdges(&buf, l, color)
	}
	renderNodes(&buf, l, color)
	if r.opts.Labels {
		renderLabels(&buf, l, panel.ContrastText(color))
	}
	if r.textBox {
		renderTextBox(&buf, l, r.opts.TextLines(l.SeriesCount))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r renderer) open(buf *bytes.Buffer, l graph.Layout) {
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	if r.style != "" {
		fmt.Fprintf(buf, ` style="%s"`, html.EscapeString(r.style))
	}
	fmt.Fprintf(buf, ` width="%s" height="%s" viewBox="%s">`+"\n", num(l.Width), num(l.Height), ViewBox(l.Width, l.Height))
}

// ViewBox returns "0 -h/2 w h".
func ViewBox(width, height float64) string {
	return fmt.Sprintf("0 %s %s %s", num(-height/2), num(width), num(height))
}

func renderNodes(buf *bytes.Buffer, l graph.Layout, color string) {
	for i, c := range l.Clusters {
		for j, n := range c.Nodes {
			fmt.Fprintf(buf, `  <g id="cluster-%d-node-%d" fill="%s"><circle r="%s" transform="translate(%s, %s)"/></g>`+"\n",
				i, j, html.EscapeString(color), num(NodeRadius), num(n.X), num(n.Y))
		}
	}
}

func renderEdges(buf *bytes.Buffer, l graph.Layout, color string) {
	pos := l.Positions()
	for _, e := range l.Edges {
		src, ok := pos[e.Source]
		if !ok {
			continue
		}
		dst, ok := pos[e.Target]
		if !ok {
			continue
		}
		fmt.Fprintf(buf, `  <line class="edge" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2"/>`+"\n",
			num(src.X), num(src.Y), num(dst.X), num(dst.Y), html.EscapeString(color))
	}
}

func renderLabels(buf *bytes.Buffer, l graph.Layout, textColor string) {
	for _, c := range l.Clusters {
		for _, n := range c.Nodes {
			fmt.Fprintf(buf, `  <text class="label" x="%s" y="%s" fill="%s" font-family="%s" font-size="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
				num(n.X), num(n.Y), textColor, FontFamily, num(FontSize), html.EscapeString(n.Name))
		}
	}
}

// renderTextBox stacks lines upwards from the bottom-left corner.
func renderTextBox(buf *bytes.Buffer, l graph.Layout, lines []string) {
	bottom := l.Height/2 - TextPadding
	fmt.Fprintf(buf, `  <g class="text-box" font-family="%s" font-size="%s">`+"\n", FontFamily, num(FontSize))
	for i, line := range lines {
		y := bottom - float64(len(lines)-1-i)*LineHeight
		fmt.Fprintf(buf, `    <text x="%s" y="%s">%s</text>`+"\n", num(TextPadding), num(y), html.EscapeString(line))
	}
	buf.WriteString("  </g>\n")
}

func renderNoData(buf *bytes.Buffer, l graph.Layout) {
	fmt.Fprintf(buf, `  <text class="no-data" x="%s" y="0" font-family="%s" font-size="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		num(l.Width/2), FontFamily, num(FontSize), NoDataText)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
