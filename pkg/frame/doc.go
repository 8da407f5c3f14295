// Package frame models the tabular input a panel receives from its data source.
//
// Input is a [Data] value holding one or more series. Each series is a [Frame]
// of named columns ([Field]) whose values are indexed by row. Values keep the
// type the decoder produced (string, float64, int, bool or nil).
//
// # Formats
//
// [ReadJSON] and [ReadYAML] accept either a list of series or a single frame:
//
//	{"series": [{"name": "edges", "fields": [
//	    {"name": "source",      "values": ["a", "a", "b"]},
//	    {"name": "destination", "values": ["b", "b", ""]},
//	    {"name": "cluster",     "values": ["c1", "c1", "c1"]}
//	]}]}
//
// [ReadCSV] reads one series whose header row names the fields. [ReadFile]
// picks a decoder by file extension.
package frame
