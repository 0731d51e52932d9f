package jsonfile

import (
	"path/filepath"
	"testing"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestWriteReadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "data.json")

	in := payload{Name: "kettle", Count: 3}
	if err := Write(path, &in, nil); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Fatal("file does not exist after write")
	}

	var out payload
	if err := Read(path, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: %+v != %+v", out, in)
	}

	if err := RemoveIfExists(path); err != nil {
		t.Fatal(err)
	}
	if Exists(path) {
		t.Fatal("file still exists after remove")
	}

	// Removing again is not an error.
	if err := RemoveIfExists(path); err != nil {
		t.Fatal(err)
	}
}

func TestReadMissingFile(t *testing.T) {
	var out payload
	err := Read(filepath.Join(t.TempDir(), "nope.json"), &out)
	if err != ErrNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}
