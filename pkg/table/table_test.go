package table

import (
	"encoding/json"
	"testing"
)

func TestAppendColumnOrder(t *testing.T) {
	tb := New("node", "x", "y")
	tb.Append(Row{"node": "a", "x": 0.0, "y": 1.0, "z": 1, "b": 2})
	tb.Append(Row{"node": "b", "x": 0.0, "y": 1.0, "a": "q"})

	got := tb.Columns()
	want := []string{"node", "x", "y", "b", "z", "a"}
	if len(got) != len(want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("columns[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if tb.Len() != 2 {
		t.Errorf("len = %d, want 2", tb.Len())
	}
}

func TestKind(t *testing.T) {
	tb := New()
	tb.Append(Row{"n": 1, "f": 2.5, "s": "x", "mixed": 1, "nil": nil})
	tb.Append(Row{"n": int64(3), "f": float32(1), "s": "y", "mixed": "z"})

	tests := map[string]Kind{
		"n":       Numeric,
		"f":       Numeric,
		"s":       Categorical,
		"mixed":   Categorical,
		"nil":     Empty,
		"missing": Empty,
	}
	for col, want := range tests {
		if got := tb.Kind(col); got != want {
			t.Errorf("Kind(%s) = %s, want %s", col, got, want)
		}
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	tb := New("id")
	for _, id := range []string{"a", "b", "c", "d"} {
		tb.Append(Row{"id": id})
	}
	out := tb.Filter(func(r Row) bool { return r["id"] != "b" })

	if out.Len() != 3 {
		t.Fatalf("len = %d, want 3", out.Len())
	}
	for i, want := range []string{"a", "c", "d"} {
		if out.Rows()[i]["id"] != want {
			t.Errorf("row %d = %v, want %s", i, out.Rows()[i]["id"], want)
		}
	}
	if tb.Len() != 4 {
		t.Error("Filter mutated the source table")
	}
}

func TestExtent(t *testing.T) {
	tb := New()
	tb.Append(Row{"x": 3})
	tb.Append(Row{"x": -1.5})
	tb.Append(Row{"x": "skip"})

	lo, hi, ok := tb.Extent("x")
	if !ok || lo != -1.5 || hi != 3 {
		t.Errorf("Extent = (%v, %v, %v), want (-1.5, 3, true)", lo, hi, ok)
	}
	if _, _, ok := tb.Extent("y"); ok {
		t.Error("Extent of missing column should not be ok")
	}
}

func TestNilTable(t *testing.T) {
	var tb *Table
	if tb.Len() != 0 || tb.HasColumn("x") || tb.Kind("x") != Empty {
		t.Error("nil table should behave as empty")
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(New("a"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("empty table = %s, want []", data)
	}

	tb := New()
	tb.Append(Row{"a": 1})
	data, _ = json.Marshal(tb)
	if string(data) != `[{"a":1}]` {
		t.Errorf("table = %s", data)
	}
}
