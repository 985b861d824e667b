package rasterio

import (
	"encoding/json"
	"os"
	"runtime"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/metrics"
)

// DeterministicMeta is everything that must reproduce byte-for-byte across
// runs sharing (seed, W, H, mpp, config) — no wall-clock or environment
// fields are permitted here.
type DeterministicMeta struct {
	Seed      string          `json:"seed"`
	Canonical string          `json:"canonical_seed"`
	SeedHash  uint64          `json:"seed_hash"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	MetersPerPixel float64    `json:"meters_per_pixel"`
	Config    genconfig.Config `json:"config"`
	Metrics   metrics.Block   `json:"metrics"`
}

// Meta wraps DeterministicMeta with operational, non-reproducible fields.
type Meta struct {
	DeterministicMeta
	GeneratedAtUTC    string  `json:"generated_at_utc"`
	GenerationSeconds float64 `json:"generation_seconds"`
	IncisionSeconds   float64 `json:"incision_seconds"`
	GoVersion         string  `json:"go_version"`
}

// WriteDeterministicMeta writes deterministic_meta.json.
func WriteDeterministicMeta(path string, det DeterministicMeta) error {
	return writeJSON(path, det)
}

// WriteMeta writes meta.json, stamping generatedAtUTC (caller-supplied so
// the package itself never calls time.Now, keeping every function here a
// pure transform of its arguments).
func WriteMeta(path string, det DeterministicMeta, generatedAtUTC string, generationSeconds, incisionSeconds float64) error {
	m := Meta{
		DeterministicMeta: det,
		GeneratedAtUTC:    generatedAtUTC,
		GenerationSeconds: generationSeconds,
		IncisionSeconds:   incisionSeconds,
		GoVersion:         runtime.Version(),
	}
	return writeJSON(path, m)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
