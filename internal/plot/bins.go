// Package plot holds helpers shared with the histogram plotting code.
package plot

// Distribution is anything that accepts bin edges, such as a plotting
// distribution being configured before it is filled.
type Distribution interface {
	AddBinEdge(edge float64)
}

// SetBins adds each edge to d in order.
//
// Deprecated: distributions should be constructed with their binning.
func SetBins(d Distribution, bins []float64) {
	for _, b := range bins {
		d.AddBinEdge(b)
	}
}

// Edges collects bin edges.
type Edges []float64

// AddBinEdge appends edge.
func (e *Edges) AddBinEdge(edge float64) {
	*e = append(*e, edge)
}
