// Package jsonfile reads and writes single JSON documents on disk, using a
// write-to-temp-then-rename strategy so that readers never observe a
// partially written file.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/slog"
)

var ErrNotFound = errors.New("json file not found")

// Write encodes data as JSON into a temp file, then renames the temp file to
// fname. log is used for warnings that are not fatal to the write.
func Write(fname string, data interface{}, log slog.Logger) error {
	dir := filepath.Dir(fname)
	base := filepath.Base(fname)
	tempFname := filepath.Join(dir, "."+base+".new")

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("unable to create dest dir: %w", err)
	}

	f, err := os.Create(tempFname)
	if err != nil {
		return fmt.Errorf("unable to create temp file: %w", err)
	}

	// No early returns past this point so that the temp file is cleaned up
	// on errors.

	enc := json.NewEncoder(f)
	err = enc.Encode(data)
	if err != nil {
		err = fmt.Errorf("unable to encode json contents: %w", err)
	}
	if err == nil {
		if err = f.Sync(); err != nil {
			err = fmt.Errorf("unable to fsync temp file: %w", err)
		}
	}
	if err == nil {
		err = f.Close()
		f = nil
		if err != nil {
			err = fmt.Errorf("unable to close temp file: %w", err)
		}
	}
	if err == nil {
		if err = os.Rename(tempFname, fname); err != nil {
			err = fmt.Errorf("unable to rename temp file: %w", err)
		}
	}
	if err != nil {
		if f != nil {
			if closeErr := f.Close(); log != nil && closeErr != nil {
				log.Warnf("Unable to close temp file prior to cleanup: %v", closeErr)
			}
		}
		if remErr := os.Remove(tempFname); log != nil && remErr != nil {
			log.Warnf("Unable to remove temp file %s: %v", tempFname, remErr)
		}
	}

	return err
}

// Read decodes the first JSON document in fname into data. A missing file
// returns ErrNotFound.
func Read(fname string, data interface{}) error {
	f, err := os.Open(fname)
	if os.IsNotExist(err) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	return dec.Decode(data)
}

// Exists returns true if the specified file exists.
func Exists(fname string) bool {
	_, err := os.Stat(fname)
	return err == nil
}

// RemoveIfExists removes fname if it exists. A missing file is not an error.
func RemoveIfExists(fname string) error {
	err := os.Remove(fname)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
