// Package query assembles the boolean query trees understood by the
// Spyglass search service.
//
// # Overview
//
// The package has three layers:
//
//  1. Builders - pure constructors for primitive clauses (MatchAll, Term,
//     Range, TextMatch, Exists, GeoBoundingBox, Species, ...)
//  2. Combinator - Combine folds clauses into a bool node under an
//     explicit BoolOperator
//  3. Assembler - Wrap produces the transport Envelope and SearchParams
//     carries the request query-string parameters
//
// All values are freshly allocated JSON-object trees with no shared
// state; every function in this package is safe to call concurrently.
//
// # Basic Usage
//
// Build and combine clauses:
//
//	sex, _ := query.Term("sex", "female")
//	years, _ := query.Range("year", 2020, 2023)
//	q, _ := query.Combine(query.Must, sex, years)
//
//	envelope := query.Wrap(q)
//	body, _ := json.Marshal(envelope)
//
// Combining zero clauses yields MatchAll, and combining a single clause
// returns it unchanged, so callers can fold filter lists without
// special-casing arity.
//
// # Wire format
//
// Every Query and Envelope serializes to a JSON object, never an array
// and never null. A clause with no constraints still serializes as an
// empty object ({"match_all":{}}), because the remote engine rejects
// non-object operator payloads.
package query
