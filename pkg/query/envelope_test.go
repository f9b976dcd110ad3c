package query

import (
	"reflect"
	"testing"
)

func TestWrap(t *testing.T) {
	t.Run("bare query gets wrapped", func(t *testing.T) {
		e := Wrap(MatchAll())
		data, err := e.JSON()
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		want := `{"query":{"match_all":{}}}`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, string(data))
		}
	})

	t.Run("pre-wrapped body passes through", func(t *testing.T) {
		wrapped := map[string]any{"query": map[string]any{"match_all": map[string]any{}}}
		e := Wrap(wrapped)
		if !reflect.DeepEqual(map[string]any(e), wrapped) {
			t.Errorf("expected pass-through, got %v", e)
		}
		if _, nested := e["query"].(map[string]any)["query"]; nested {
			t.Error("wrapping produced a nested query.query")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		q, _ := Term("sex", "female")
		once := Wrap(q)
		twice := Wrap(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("expected wrap(wrap(q)) == wrap(q), got %v and %v", once, twice)
		}
	})

	t.Run("nil body wraps match all", func(t *testing.T) {
		data, err := Wrap(nil).JSON()
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		want := `{"query":{"match_all":{}}}`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, string(data))
		}
	})

	t.Run("sibling fields preserved on pass-through", func(t *testing.T) {
		wrapped := map[string]any{
			"query": map[string]any{"match_all": map[string]any{}},
			"size":  25,
		}
		e := Wrap(wrapped)
		if e["size"] != 25 {
			t.Errorf("expected sibling field preserved, got %v", e)
		}
	})
}
