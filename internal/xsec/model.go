// Package xsec looks up dark-matter mediator model parameters from the
// tabulated cross-section files of the analysis.
package xsec

import (
	"fmt"
	"strconv"
	"strings"
)

// modelColumns is the number of numeric columns in a non-resonant table line.
const modelColumns = 8

// ModelParams describes one theoretical model point.
type ModelParams struct {
	MV    float64 // mediator mass
	MDM   float64 // dark-matter mass
	GVDM  float64 // vector coupling to dark matter
	GADM  float64 // axial coupling to dark matter
	GVQ   float64 // vector coupling to quarks
	GAQ   float64 // axial coupling to quarks
	Sigma float64 // cross section
	Delta float64 // width parameter
}

// Couplings returns the coupling tuple of the model.
func (p ModelParams) Couplings() Couplings {
	return Couplings{GVDM: p.GVDM, GADM: p.GADM, GVQ: p.GVQ, GAQ: p.GAQ}
}

// Fields returns the model values in table column order.
func (p ModelParams) Fields() []float64 {
	return []float64{p.MV, p.MDM, p.GVDM, p.GADM, p.GVQ, p.GAQ, p.Sigma, p.Delta}
}

// String formats the model as a tab-separated table line.
func (p ModelParams) String() string {
	parts := make([]string, 0, modelColumns)
	for _, v := range p.Fields() {
		parts = append(parts, formatFloat(v))
	}
	return strings.Join(parts, "\t")
}

// Couplings is the (gV_DM, gA_DM, gV_q, gA_q) tuple used to pick a model.
// Values are compared exactly.
type Couplings struct {
	GVDM float64
	GADM float64
	GVQ  float64
	GAQ  float64
}

// String formats the couplings the way ParseCouplings reads them.
func (c Couplings) String() string {
	return strings.Join([]string{
		formatFloat(c.GVDM), formatFloat(c.GADM), formatFloat(c.GVQ), formatFloat(c.GAQ),
	}, ",")
}

// ParseCouplings parses "gV_DM,gA_DM,gV_q,gA_q", e.g. "1,0,0.25,0".
func ParseCouplings(s string) (Couplings, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Couplings{}, fmt.Errorf("couplings %q: expected 4 comma-separated values", s)
	}
	var v [4]float64
	for i, part := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Couplings{}, fmt.Errorf("couplings %q: %w", s, err)
		}
		v[i] = x
	}
	return Couplings{GVDM: v[0], GADM: v[1], GVQ: v[2], GAQ: v[3]}, nil
}

// Scenario is one "label:sigma" line of a resonant table.
type Scenario struct {
	Label string
	Sigma float64
}

// String renders the scenario as "label<TAB>sigma".
func (s Scenario) String() string {
	return s.Label + "\t" + formatFloat(s.Sigma)
}

// resonantModel builds the record for a resonant scenario. Resonant tables
// carry no couplings, so placeholder values are used.
func resonantModel(mV, mDM int, sigma float64) ModelParams {
	return ModelParams{
		MV:    float64(mV),
		MDM:   float64(mDM),
		GVDM:  1,
		GADM:  1,
		GVQ:   0.25,
		GAQ:   0.25,
		Sigma: sigma,
		Delta: 0,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
