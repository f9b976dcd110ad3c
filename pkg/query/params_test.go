package query

import (
	"testing"
)

func TestSearchParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  SearchParams
		wantErr bool
		field   string
	}{
		{"defaults", DefaultSearchParams(), false, ""},
		{"explicit sort", SearchParams{From: 0, Size: 50, Sort: "year", SortOrder: SortDesc}, false, ""},
		{"sort without order", SearchParams{From: 0, Size: 10, Sort: "year"}, false, ""},
		{"negative from", SearchParams{From: -1, Size: 10}, true, "from"},
		{"zero size", SearchParams{From: 0, Size: 0}, true, "size"},
		{"negative size", SearchParams{From: 0, Size: -5}, true, "size"},
		{"bad sort order", SearchParams{From: 0, Size: 10, Sort: "year", SortOrder: "descending"}, true, "sortOrder"},
		{"order without sort", SearchParams{From: 0, Size: 10, SortOrder: SortAsc}, true, "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				verr, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if verr.Field != tt.field {
					t.Errorf("expected field %q, got %q", tt.field, verr.Field)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSearchParamsValues(t *testing.T) {
	t.Run("sort omitted when unset", func(t *testing.T) {
		v := DefaultSearchParams().Values()
		if got := v.Encode(); got != "from=0&size=10" {
			t.Errorf("expected from=0&size=10, got %s", got)
		}
		if _, present := v["sort"]; present {
			t.Error("expected sort to be omitted")
		}
		if _, present := v["sortOrder"]; present {
			t.Error("expected sortOrder to be omitted")
		}
	})

	t.Run("full parameters", func(t *testing.T) {
		p := SearchParams{From: 40, Size: 20, Sort: "year", SortOrder: SortAsc}
		v := p.Values()
		if got := v.Get("from"); got != "40" {
			t.Errorf("expected from=40, got %s", got)
		}
		if got := v.Get("size"); got != "20" {
			t.Errorf("expected size=20, got %s", got)
		}
		if got := v.Get("sort"); got != "year" {
			t.Errorf("expected sort=year, got %s", got)
		}
		if got := v.Get("sortOrder"); got != "asc" {
			t.Errorf("expected sortOrder=asc, got %s", got)
		}
	})
}
