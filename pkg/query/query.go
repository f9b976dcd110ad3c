package query

import "encoding/json"

// Query is a serializable tree describing a search filter. Leaves are
// primitive clauses (term, range, match, ...) and internal nodes are
// bool nodes holding ordered lists of child queries.
//
// A Query is a plain mapping from operator key to operator payload and
// always marshals to a JSON object. Queries carry no identity beyond
// structural equality; builders return freshly allocated trees and
// never mutate their inputs.
type Query map[string]any

// Envelope is the transport-ready request body: a Query wrapped under
// the top-level "query" key. It is a distinct type so that typed
// callers cannot accidentally double-wrap; see Wrap for the structural
// probe applied to raw maps.
type Envelope map[string]any

// Operator keys recognized by the remote query engine.
const (
	OpMatchAll       = "match_all"
	OpTerm           = "term"
	OpTerms          = "terms"
	OpRange          = "range"
	OpBool           = "bool"
	OpGeoBoundingBox = "geo_bounding_box"
	OpMatch          = "match"
	OpFuzzy          = "fuzzy"
	OpExists         = "exists"
	OpWildcard       = "wildcard"
)

// JSON returns the canonical JSON encoding of the query. Map keys are
// emitted in sorted order, so equal trees produce identical bytes.
func (q Query) JSON() ([]byte, error) {
	return json.Marshal(q)
}

// JSON returns the canonical JSON encoding of the envelope.
func (e Envelope) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Decode parses a JSON object into a Query. It fails on any input that
// is not a JSON object, matching the wire invariant that queries are
// never arrays or null.
func Decode(data []byte) (Query, error) {
	var q Query
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, err
	}
	if q == nil {
		return nil, &ValidationError{Field: "query", Message: "decoded value is not a JSON object"}
	}
	return q, nil
}
