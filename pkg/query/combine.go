package query

import "fmt"

// BoolOperator selects the boolean semantics applied when combining
// clauses into a bool node.
type BoolOperator string

const (
	// Must requires every clause to match (AND).
	Must BoolOperator = "must"

	// Should requires at least one clause to match (OR).
	Should BoolOperator = "should"

	// MustNot requires every clause to not match (NOT).
	MustNot BoolOperator = "must_not"

	// Filter is Must without score contribution.
	Filter BoolOperator = "filter"
)

// Valid reports whether op is one of the recognized bool operators.
func (op BoolOperator) Valid() bool {
	switch op {
	case Must, Should, MustNot, Filter:
		return true
	}
	return false
}

// Combine folds zero or more queries into one under the given
// operator. The zero operator value defaults to Must.
//
// Zero inputs collapse to MatchAll and a single input is returned
// unchanged regardless of operator: combining one clause never needs a
// boolean wrapper. Two or more inputs are wrapped in a bool node in
// call order.
//
// Combine never inspects the internal structure of its inputs: nested
// bool nodes of the same operator are not flattened and duplicates are
// not removed, so pre-built sub-groups keep their grouping.
func Combine(op BoolOperator, queries ...Query) (Query, error) {
	if op == "" {
		op = Must
	}
	if !op.Valid() {
		return nil, &ValidationError{Field: "operator", Message: "unknown bool operator " + string(op)}
	}
	for i, q := range queries {
		if q == nil {
			return nil, &ValidationError{Field: "queries", Message: fmt.Sprintf("nil query at position %d", i)}
		}
	}

	switch len(queries) {
	case 0:
		return MatchAll(), nil
	case 1:
		return queries[0], nil
	default:
		return boolNode(op, queries, nil), nil
	}
}
