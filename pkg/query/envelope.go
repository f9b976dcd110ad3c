package query

// Wrap produces the transport envelope for a request body. If the body
// already carries a top-level "query" key it is returned unchanged, so
// wrapping is idempotent and pre-assembled envelopes pass through
// without double-nesting.
//
// The check is purely structural: only top-level key presence is
// probed, not the shape of its value. A caller-constructed query whose
// top-level operator is literally named "query" (impossible through
// this package's builders, whose vocabulary is fixed) would be treated
// as already wrapped. Code that stays inside the typed Query/Envelope
// API never hits this ambiguity.
//
// Wrap accepts any map-backed value, so both Query and Envelope values
// (and raw maps decoded from callers) can be passed directly.
func Wrap(body map[string]any) Envelope {
	if body == nil {
		return Envelope{"query": MatchAll()}
	}
	if _, wrapped := body["query"]; wrapped {
		return Envelope(body)
	}
	return Envelope{"query": body}
}
