package query

import "fmt"

// Document fields with builder-level support. The remote schema is not
// validated here; these are the fields the composite builders target.
const (
	FieldCountry         = "country"
	FieldLocationID      = "locationId"
	FieldLocation        = "location"
	FieldGenus           = "genus"
	FieldSpecificEpithet = "specificEpithet"
	FieldTaxonomy        = "taxonomy"
)

// MatchAll returns the query that matches every document. The payload
// is an empty object, never an empty array: the remote engine requires
// object types for operator payloads.
func MatchAll() Query {
	return Query{OpMatchAll: map[string]any{}}
}

// Term returns an exact-equality clause on a single field.
func Term(field string, value any) (Query, error) {
	if field == "" {
		return nil, &ValidationError{Field: "field", Message: "term requires a field name"}
	}
	return Query{OpTerm: map[string]any{field: value}}, nil
}

// Terms returns a clause matching documents whose field equals any of
// the given values.
func Terms(field string, values ...any) (Query, error) {
	if field == "" {
		return nil, &ValidationError{Field: "field", Message: "terms requires a field name"}
	}
	vals := make([]any, len(values))
	copy(vals, values)
	return Query{OpTerms: map[string]any{field: vals}}, nil
}

// Range returns a bounded clause on a field. A nil bound is omitted
// from the payload entirely (no null placeholder). When both bounds are
// nil the clause still targets the field with an empty bounds object;
// it does not collapse to MatchAll.
func Range(field string, gte, lte any) (Query, error) {
	if field == "" {
		return nil, &ValidationError{Field: "field", Message: "range requires a field name"}
	}
	bounds := map[string]any{}
	if gte != nil {
		bounds["gte"] = gte
	}
	if lte != nil {
		bounds["lte"] = lte
	}
	return Query{OpRange: map[string]any{field: bounds}}, nil
}

// TextMatch returns a full-text clause on a field. With fuzzy set it
// emits a fuzzy clause with automatic edit-distance selection instead
// of a plain match.
func TextMatch(field, text string, fuzzy bool) (Query, error) {
	if field == "" {
		return nil, &ValidationError{Field: "field", Message: "text match requires a field name"}
	}
	if text == "" {
		return nil, &ValidationError{Field: "text", Message: "text match requires search text"}
	}
	if fuzzy {
		return Query{OpFuzzy: map[string]any{
			field: map[string]any{
				"value":     text,
				"fuzziness": "AUTO",
			},
		}}, nil
	}
	return Query{OpMatch: map[string]any{field: text}}, nil
}

// Exists returns a clause matching documents where the field is
// present.
func Exists(field string) (Query, error) {
	if field == "" {
		return nil, &ValidationError{Field: "field", Message: "exists requires a field name"}
	}
	return Query{OpExists: map[string]any{"field": field}}, nil
}

// Missing returns a clause matching documents where the field is
// absent. It is the must_not composition of Exists.
func Missing(field string) (Query, error) {
	exists, err := Exists(field)
	if err != nil {
		return nil, err
	}
	return Query{OpBool: map[string]any{
		string(MustNot): []any{exists},
	}}, nil
}

// Wildcard returns a pattern clause on a field. The pattern uses the
// remote engine's wildcard syntax (* and ?).
func Wildcard(field, pattern string) (Query, error) {
	if field == "" {
		return nil, &ValidationError{Field: "field", Message: "wildcard requires a field name"}
	}
	if pattern == "" {
		return nil, &ValidationError{Field: "pattern", Message: "wildcard requires a pattern"}
	}
	return Query{OpWildcard: map[string]any{
		field: map[string]any{"value": pattern},
	}}, nil
}

// GeoBounds describes a latitude/longitude bounding box by its extreme
// coordinates.
type GeoBounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// GeoBoundingBox returns a bounding-box clause on a geo-point field.
// The corners cross axes: latitude decreases and longitude increases
// going from top_left to bottom_right, so top_left carries MaxLat with
// MinLon and bottom_right carries MinLat with MaxLon.
func GeoBoundingBox(field string, b GeoBounds) (Query, error) {
	if field == "" {
		return nil, &ValidationError{Field: "field", Message: "geo bounding box requires a field name"}
	}
	return Query{OpGeoBoundingBox: map[string]any{
		field: map[string]any{
			"top_left": map[string]any{
				"lat": b.MaxLat,
				"lon": b.MinLon,
			},
			"bottom_right": map[string]any{
				"lat": b.MinLat,
				"lon": b.MaxLon,
			},
		},
	}}, nil
}

// LocationFilter selects documents by place. All fields are optional;
// Bounds contributes a clause only when set, and the country and
// location id contribute term clauses when non-empty.
type LocationFilter struct {
	// Country is an ISO country code (term match on "country")
	Country string

	// LocationID is a study-site identifier (term match on "locationId")
	LocationID string

	// Bounds restricts results to a geographic bounding box
	Bounds *GeoBounds
}

// Location builds a query from a LocationFilter. Zero clauses collapse
// to MatchAll, a single clause is returned unwrapped, and two or more
// clauses are grouped under a bool/must node.
func Location(f LocationFilter) Query {
	var clauses []Query

	if f.Country != "" {
		clauses = append(clauses, Query{OpTerm: map[string]any{FieldCountry: f.Country}})
	}
	if f.LocationID != "" {
		clauses = append(clauses, Query{OpTerm: map[string]any{FieldLocationID: f.LocationID}})
	}
	if f.Bounds != nil {
		bbox, _ := GeoBoundingBox(FieldLocation, *f.Bounds)
		clauses = append(clauses, bbox)
	}

	switch len(clauses) {
	case 0:
		return MatchAll()
	case 1:
		return clauses[0]
	default:
		return boolNode(Must, clauses, nil)
	}
}

// Species builds a taxonomy query for a genus with an optional specific
// epithet.
//
// With an epithet, the result is a should-composite (minimum_should_match
// 1) of a terms match on the concatenated "<genus> <epithet>" taxonomy
// string and a must group of separate genus and specificEpithet term
// clauses, so both denormalized and per-field taxonomies match.
//
// Without an epithet, the result is a should-composite of a taxonomy
// wildcard on "<genus> *" and a term on genus. Callers that expect the
// plain single-term contract for this case should use SpeciesTerm
// instead; both contracts exist among consumers of the service and the
// library deliberately exposes each under its own name.
func Species(genus, specificEpithet string) (Query, error) {
	if genus == "" {
		return nil, &ValidationError{Field: "genus", Message: "species requires a genus"}
	}

	if specificEpithet == "" {
		wildcard, err := Wildcard(FieldTaxonomy, genus+" *")
		if err != nil {
			return nil, err
		}
		genusTerm, err := Term(FieldGenus, genus)
		if err != nil {
			return nil, err
		}
		return boolNode(Should, []Query{wildcard, genusTerm}, map[string]any{
			"minimum_should_match": 1,
		}), nil
	}

	binomial, err := Terms(FieldTaxonomy, fmt.Sprintf("%s %s", genus, specificEpithet))
	if err != nil {
		return nil, err
	}
	genusTerm, err := Term(FieldGenus, genus)
	if err != nil {
		return nil, err
	}
	epithetTerm, err := Term(FieldSpecificEpithet, specificEpithet)
	if err != nil {
		return nil, err
	}
	return boolNode(Should, []Query{
		binomial,
		boolNode(Must, []Query{genusTerm, epithetTerm}, nil),
	}, map[string]any{
		"minimum_should_match": 1,
	}), nil
}

// SpeciesTerm builds the plain-term taxonomy query for a genus:
// {"term":{"genus": genus}}. It is the alternative contract to
// Species(genus, "") for callers that expect an exact genus match with
// no wildcard expansion.
func SpeciesTerm(genus string) (Query, error) {
	if genus == "" {
		return nil, &ValidationError{Field: "genus", Message: "species requires a genus"}
	}
	return Term(FieldGenus, genus)
}

// boolNode wraps clauses under a single bool operator, with optional
// extra payload fields (e.g. minimum_should_match).
func boolNode(op BoolOperator, clauses []Query, extra map[string]any) Query {
	children := make([]any, len(clauses))
	for i, c := range clauses {
		children[i] = c
	}
	payload := map[string]any{string(op): children}
	for k, v := range extra {
		payload[k] = v
	}
	return Query{OpBool: payload}
}
