package query

import (
	"fmt"
	"net/url"
	"strconv"
)

// Sort orders accepted by the search service.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Default pagination values applied by DefaultSearchParams.
const (
	DefaultFrom = 0
	DefaultSize = 10
)

// SearchParams carries the pagination and sort parameters of a search
// request. They travel as URL query-string parameters, not as part of
// the JSON body.
type SearchParams struct {
	// From is the result offset (>= 0)
	From int

	// Size is the page size (> 0)
	Size int

	// Sort is the field to sort on; empty means service default order
	Sort string

	// SortOrder is "asc" or "desc"; empty means service default
	SortOrder string
}

// DefaultSearchParams returns the first page with the default size and
// no explicit sort.
func DefaultSearchParams() SearchParams {
	return SearchParams{From: DefaultFrom, Size: DefaultSize}
}

// Validate checks the parameter bounds. A SortOrder without a Sort
// field is rejected, as the service has nothing to apply it to.
func (p SearchParams) Validate() error {
	if p.From < 0 {
		return &ValidationError{Field: "from", Message: fmt.Sprintf("must be >= 0, got %d", p.From)}
	}
	if p.Size <= 0 {
		return &ValidationError{Field: "size", Message: fmt.Sprintf("must be > 0, got %d", p.Size)}
	}
	if p.SortOrder != "" && p.SortOrder != SortAsc && p.SortOrder != SortDesc {
		return &ValidationError{Field: "sortOrder", Message: fmt.Sprintf("must be %q or %q, got %q", SortAsc, SortDesc, p.SortOrder)}
	}
	if p.SortOrder != "" && p.Sort == "" {
		return &ValidationError{Field: "sort", Message: "sortOrder requires a sort field"}
	}
	return nil
}

// Values renders the parameters as URL query-string values. Sort and
// sortOrder are omitted entirely when unset.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	v.Set("from", strconv.Itoa(p.From))
	v.Set("size", strconv.Itoa(p.Size))
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	if p.SortOrder != "" {
		v.Set("sortOrder", p.SortOrder)
	}
	return v
}
