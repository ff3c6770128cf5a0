// Package cut builds selection-cut formulas as plain strings, ready to be
// handed to histogram and tree-drawing code.
package cut

import "regexp"

const (
	// True is the tautology substituted for removed clauses.
	True = "1==1"
	// False never passes.
	False = "0==1"
)

// And returns "(( s1 ) && ( s2 ))".
func And(s1, s2 string) string {
	return "(( " + s1 + " ) && ( " + s2 + " ))"
}

// Or returns "(( s1 ) || ( s2 ))".
func Or(s1, s2 string) string {
	return "(( " + s1 + " ) || ( " + s2 + " ))"
}

// Times returns "( w ) * ( s )", typically a weight times a selection.
func Times(w, s string) string {
	return "( " + w + " ) * ( " + s + " )"
}

// Not returns "!( w )".
func Not(w string) string {
	return "!( " + w + " )"
}

// AndAll folds cuts left to right with And. No cuts gives True.
func AndAll(cuts ...string) string {
	return fold(True, And, cuts)
}

// OrAll folds cuts left to right with Or. No cuts gives False.
func OrAll(cuts ...string) string {
	return fold(False, Or, cuts)
}

func fold(empty string, op func(a, b string) string, cuts []string) string {
	if len(cuts) == 0 {
		return empty
	}
	result := cuts[0]
	for _, c := range cuts[1:] {
		result = op(result, c)
	}
	return result
}

// RemoveCut drops the dependence on variable v from basecut by replacing
// each comparison on v with True. "v>2" style clauses are replaced first,
// then "2<v" style ones; any remaining bare occurrence of v is replaced too.
// An empty v leaves basecut unchanged.
func RemoveCut(basecut, v string) string {
	if v == "" {
		return basecut
	}
	quoted := regexp.QuoteMeta(v)
	varFirst := regexp.MustCompile(quoted + `[=<>]+[0-9.]+`)
	valueFirst := regexp.MustCompile(`[0-9.]*[=<>]*` + quoted)

	result := varFirst.ReplaceAllLiteralString(basecut, True)
	return valueFirst.ReplaceAllLiteralString(result, True)
}
