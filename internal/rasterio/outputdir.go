package rasterio

import (
	"fmt"
	"os"
	"path/filepath"
)

// PrepareOutputDir ensures dir exists and is empty. If it already contains
// files and overwrite is false, returns an error. With overwrite, the
// existing contents are moved into a sibling `.staging-*` directory first
// and removed only after the new directory is successfully created, so a
// crash mid-write never leaves a half-replaced directory in dir's place.
// Grounded on original_source/terrain/io.py's safe_clean_output_dir /
// move_tree_contents.
func PrepareOutputDir(dir string, overwrite bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(dir, 0o755)
		}
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	if !overwrite {
		return fmt.Errorf("output directory %q is not empty (use --overwrite)", dir)
	}

	parent := filepath.Dir(dir)
	staging := filepath.Join(parent, ".staging-"+filepath.Base(dir))
	if err := os.RemoveAll(staging); err != nil {
		return err
	}
	if err := os.Rename(dir, staging); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(staging)
}
