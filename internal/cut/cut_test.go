package cut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperators(t *testing.T) {
	assert.Equal(t, "(( met>200 ) && ( nJet>=1 ))", And("met>200", "nJet>=1"))
	assert.Equal(t, "(( met>200 ) || ( nJet>=1 ))", Or("met>200", "nJet>=1"))
	assert.Equal(t, "( normalizedWeight ) * ( met>200 )", Times("normalizedWeight", "met>200"))
	assert.Equal(t, "!( met>200 )", Not("met>200"))
}

func TestFold(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{name: "and none", got: AndAll(), expected: True},
		{name: "or none", got: OrAll(), expected: False},
		{name: "and one", got: AndAll("a"), expected: "a"},
		{name: "and three", got: AndAll("a", "b", "c"), expected: "(( (( a ) && ( b )) ) && ( c ))"},
		{name: "or two", got: OrAll("a", "b"), expected: "(( a ) || ( b ))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestRemoveCut(t *testing.T) {
	tests := []struct {
		name     string
		basecut  string
		variable string
		expected string
	}{
		{
			name:     "variable before value",
			basecut:  "a<5 && b>2",
			variable: "b",
			expected: "a<5 && 1==1",
		},
		{
			name:     "value before variable",
			basecut:  "2<b && a<5",
			variable: "b",
			expected: "1==1 && a<5",
		},
		{
			name:     "window on both sides",
			basecut:  "50<met && met<250",
			variable: "met",
			expected: "1==1 && 1==1",
		},
		{
			name:     "decimal threshold",
			basecut:  "x>=1.5 && y<3",
			variable: "x",
			expected: "1==1 && y<3",
		},
		{
			name:     "parentheses in variable name",
			basecut:  "met>200 && jetPt(0)>100",
			variable: "jetPt(0)",
			expected: "met>200 && 1==1",
		},
		{
			name:     "dot is literal",
			basecut:  "fj1.pt>250 && fj1Xpt>1",
			variable: "fj1.pt",
			expected: "1==1 && fj1Xpt>1",
		},
		{
			name:     "absent variable",
			basecut:  "a<5",
			variable: "b",
			expected: "a<5",
		},
		{
			name:     "empty variable",
			basecut:  "a<5",
			variable: "",
			expected: "a<5",
		},
		{
			name:     "empty variable keeps both orderings",
			basecut:  "(( met>200 ) && ( 2<nJet ))",
			variable: "",
			expected: "(( met>200 ) && ( 2<nJet ))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemoveCut(tt.basecut, tt.variable))
		})
	}
}

func TestRemoveCutInsideBuiltFormula(t *testing.T) {
	c := And("met>200", Not("nLooseLep>0"))
	assert.Equal(t, "(( met>200 ) && ( !( 1==1 ) ))", RemoveCut(c, "nLooseLep"))
}
