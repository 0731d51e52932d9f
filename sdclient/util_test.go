package main

import (
	"math"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{{
		name: "float",
		in:   1234.5,
		want: "¥ 1234.50",
	}, {
		name: "zero",
		in:   0,
		want: "¥ 0.00",
	}, {
		name: "int",
		in:   5,
		want: "¥ 5.00",
	}, {
		name: "numeric string",
		in:   "12.3",
		want: "¥ 12.30",
	}, {
		name: "nil",
		in:   nil,
		want: "¥ 0.00",
	}, {
		name: "garbage string",
		in:   "not a number",
		want: "¥ 0.00",
	}, {
		name: "NaN",
		in:   math.NaN(),
		want: "¥ 0.00",
	}, {
		name: "infinity",
		in:   math.Inf(1),
		want: "¥ 0.00",
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatMoney(tc.in); got != tc.want {
				t.Fatalf("unexpected result: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{{
		name: "empty",
		in:   "",
		want: "-",
	}, {
		name: "datetime",
		in:   "2024-01-02 03:04:05",
		want: "2024-01-02 03:04:05",
	}, {
		name: "date only",
		in:   "2024-01-02",
		want: "2024-01-02 00:00:00",
	}, {
		name: "unparsable",
		in:   "soon(tm)",
		want: "-",
	}, {
		name: "whitespace garbage",
		in:   "   ",
		want: "-",
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatDate(tc.in); got != tc.want {
				t.Fatalf("unexpected result: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	if got, err := parseCount(" 42 "); err != nil || got != 42 {
		t.Fatalf("unexpected result: got %d, %v", got, err)
	}
	if _, err := parseCount("-1"); err == nil {
		t.Fatal("expected error for negative count")
	}
	if _, err := parseCount("many"); err == nil {
		t.Fatal("expected error for non-numeric count")
	}
}

func TestLtjustify(t *testing.T) {
	if got := ltjustify("ab", 5); got != "ab   " {
		t.Fatalf("unexpected padding: %q", got)
	}
	if got := ltjustify("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected truncation: %q", got)
	}

	// Wide runes count as two cells.
	if got := ltjustify("茶", 4); got != "茶  " {
		t.Fatalf("unexpected wide rune padding: %q", got)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(10, 0, 5); got != 5 {
		t.Fatalf("unexpected clamp: %d", got)
	}
	if got := clamp(-1, 0, 5); got != 0 {
		t.Fatalf("unexpected clamp: %d", got)
	}
	if got := clamp(3, 0, 5); got != 3 {
		t.Fatalf("unexpected clamp: %d", got)
	}
}
