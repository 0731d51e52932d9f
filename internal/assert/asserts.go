// Package assert provides test assertion helpers.
package assert

import (
	"reflect"
	"testing"
)

// DeepEqual asserts got is reflect.DeepEqual to want.
func DeepEqual[T any](t testing.TB, got, want T) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected value: got %v, want %v", got, want)
	}
}

// NilErr asserts err is nil.
func NilErr(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected non-nil error: %v", err)
	}
}

// NonNilErr asserts err is non-nil.
func NonNilErr(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("unexpected nil error")
	}
}

// BoolIs asserts the given bool has the given value.
func BoolIs(t testing.TB, got, want bool) {
	t.Helper()
	if got != want {
		t.Fatalf("unexpected bool: got %v, want %v", got, want)
	}
}
