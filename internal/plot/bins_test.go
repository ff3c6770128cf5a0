package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingDistribution struct {
	calls []float64
}

func (r *recordingDistribution) AddBinEdge(edge float64) {
	r.calls = append(r.calls, edge)
}

func TestSetBins(t *testing.T) {
	tests := []struct {
		name string
		bins []float64
	}{
		{name: "empty", bins: nil},
		{name: "ordered", bins: []float64{250, 300, 400, 1000}},
		{name: "kept as given", bins: []float64{3, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &recordingDistribution{}
			SetBins(d, tt.bins)
			assert.Equal(t, len(tt.bins), len(d.calls))
			for i, b := range tt.bins {
				assert.Equal(t, b, d.calls[i])
			}
		})
	}
}

func TestEdges(t *testing.T) {
	var e Edges
	SetBins(&e, []float64{0, 0.5, 1})
	assert.Equal(t, Edges{0, 0.5, 1}, e)
}
