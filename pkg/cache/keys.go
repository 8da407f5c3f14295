package cache

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey keys a layout by the hash of its input data.
	LayoutKey(dataHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists everything besides the input data that changes a layout.
type LayoutKeyOpts struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Origins string  `json:"origins"`
	Edges   string  `json:"edges"`
}

// ArtifactKeyOpts lists everything besides the layout that changes an artifact.
type ArtifactKeyOpts struct {
	Format          string `json:"format"`
	Color           string `json:"color"`
	ShowSeriesCount bool   `json:"show_series_count"`
	Text            string `json:"text"`
	ShowEdges       bool   `json:"show_edges"`
	Labels          bool   `json:"labels"`
	Detailed        bool   `json:"detailed"`
}

// DefaultKeyer hashes key options together with the content hash.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the keyer used when none is configured.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(dataHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", dataHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}
