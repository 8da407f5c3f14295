package ingest

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestIngestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("repeating the input adds nothing", prop.ForAll(
		func(sources, clusters []string) bool {
			var rows [][3]any
			for i, s := range sources {
				rows = append(rows, [3]any{s, s, clusters[i%len(clusters)]})
			}
			once := Build(table(rows...), Options{})
			twice := Build(table(append(rows, rows...)...), Options{})
			return once.Graph.NodeCount() == twice.Graph.NodeCount() &&
				once.Graph.EdgeCount() == twice.Graph.EdgeCount() &&
				once.Graph.ClusterCount() == twice.Graph.ClusterCount()
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOfN(3, gen.Identifier()),
	))

	properties.Property("every node belongs to exactly one cluster", prop.ForAll(
		func(sources []string, cluster string) bool {
			var rows [][3]any
			for _, s := range sources {
				rows = append(rows, [3]any{s, nil, cluster})
			}
			g := Build(table(rows...), Options{}).Graph
			total := 0
			for _, c := range g.Clusters() {
				total += len(c.Nodes())
			}
			return total == g.NodeCount()
		},
		gen.SliceOf(gen.Identifier()),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
