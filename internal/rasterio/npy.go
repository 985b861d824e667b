// Package rasterio writes the companion output files: raw NPY heights,
// grayscale PNG previews, hillshade, debug preview rasters, and
// deterministic/meta JSON, plus the staged-move output-directory overwrite.
// Grounded on original_source/terrain/io.py.
package rasterio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// WriteNPY writes a little-endian float32 H×W array in NumPy's .npy format
// (version 1.0, no pickle), matching height.npy's contractual layout.
func WriteNPY(path string, w, h int, data []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeNPY(f, w, h, data)
}

func writeNPY(w io.Writer, width, height int, data []float32) error {
	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d), }", height, width)
	// Pad so the total header (magic+version+headerlen+header) is a multiple
	// of 64 bytes, with a trailing newline, matching numpy.lib.format.
	const prefixLen = 6 + 2 + 2 // magic + version + 2-byte header length
	total := prefixLen + len(header) + 1
	pad := (64 - total%64) % 64
	for i := 0; i < pad; i++ {
		header += " "
	}
	header += "\n"

	if _, err := w.Write([]byte("\x93NUMPY")); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(header)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte(header)); err != nil {
		return err
	}

	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	_, err := w.Write(buf)
	return err
}
