package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterpanel/pkg/graph"
	"github.com/matzehuels/clusterpanel/pkg/ingest"
	"github.com/matzehuels/clusterpanel/pkg/panel"
	"github.com/matzehuels/clusterpanel/pkg/pipeline"
)

const sampleCSV = "source,destination,cluster\na,b,c1\nb,,c1\nx,,c2\n"

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panel.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCLI() *CLI {
	return New(io.Discard, log.InfoLevel)
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,html,dot", []string{"svg", "html", "dot"}},
		{"spaces and case", " SVG , Json ", []string{"svg", "json"}},
		{"trailing comma", "svg,", []string{"svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/panel.json", "data/panel"},
		{"-", "panel.csv", "panel"},
		{"out/render.svg", "panel.json", "out/render"},
		{"out/render.nodelink.svg", "panel.json", "out/render"},
		{"out/render", "panel.json", "out/render"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRootCommand(t *testing.T) {
	root := testCLI().RootCommand()
	want := []string{"render", "layout", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestPanelFlagsResolve(t *testing.T) {
	optsFile := filepath.Join(t.TempDir(), "panel.toml")
	if err := os.WriteFile(optsFile, []byte("color = \"red\"\ntext = \"from file\"\nwidth = 400.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var pf panelFlags
	cmd := &cobra.Command{Use: "test"}
	pf.register(cmd)
	if err := cmd.ParseFlags([]string{"--options", optsFile, "--text", "from flag", "--origins", "recomputed"}); err != nil {
		t.Fatal(err)
	}

	opts, err := pf.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if opts.Panel.Color != "red" || opts.Panel.Width != 400 {
		t.Errorf("file values lost: %+v", opts.Panel)
	}
	if opts.Panel.Text != "from flag" {
		t.Errorf("text = %q, want flag value", opts.Panel.Text)
	}
	if opts.Panel.Height != panel.DefaultHeight {
		t.Errorf("height = %v, want default", opts.Panel.Height)
	}
	if opts.Origins != ingest.OriginRecomputed {
		t.Errorf("origins = %q", opts.Origins)
	}
}

func TestRunRenderWritesFormats(t *testing.T) {
	input := writeSample(t)
	base := filepath.Join(t.TempDir(), "out")

	opts := pipeline.Options{Formats: []string{"svg", "json", "dot"}}
	if err := testCLI().runRender(context.Background(), input, opts, base, true); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "translate(200, -100)") {
		t.Errorf("svg missing first node:\n%s", svg)
	}
	if _, err := graph.ReadLayoutFile(base + ".json"); err != nil {
		t.Errorf("json artifact: %v", err)
	}
	if _, err := os.Stat(base + ".dot"); err != nil {
		t.Errorf("dot artifact: %v", err)
	}
}

func TestRunRenderMissingInput(t *testing.T) {
	err := testCLI().runRender(context.Background(), filepath.Join(t.TempDir(), "missing.json"), pipeline.Options{}, "", true)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestRunLayout(t *testing.T) {
	input := writeSample(t)
	if err := testCLI().runLayout(context.Background(), input, pipeline.Options{}, "", true); err != nil {
		t.Fatalf("runLayout: %v", err)
	}

	l, err := graph.ReadLayoutFile(strings.TrimSuffix(input, ".csv") + ".layout.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Clusters) != 2 || l.NodeCount() != 3 {
		t.Errorf("layout = %+v", l)
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(2, 3, 1, true)
	for _, want := range []string{"2 clusters", "3 nodes", "1 edge", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine = %q, missing %q", line, want)
		}
	}
	if strings.Contains(statsLine(0, 0, 0, false), "node") {
		t.Error("zero counts should be omitted")
	}
}
