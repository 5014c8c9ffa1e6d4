package cache

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies the positions computed for a graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ChartKey identifies a drawn chart.
	ChartKey(graphHash string, opts ChartKeyOpts) string
}

// LayoutKeyOpts holds the layout settings that change positions.
type LayoutKeyOpts struct {
	Layout string `json:"layout"`
}

// ChartKeyOpts holds the settings that change a chart.
type ChartKeyOpts struct {
	Layout        string `json:"layout,omitempty"`
	PositionsHash string `json:"positions,omitempty"` // empty when laid out
	OptionsHash   string `json:"options"`
}

// DefaultKeyer hashes key components into "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ChartKey implements Keyer.
func (DefaultKeyer) ChartKey(graphHash string, opts ChartKeyOpts) string {
	return hashKey("chart", graphHash, opts)
}
