package heightfield

import (
	"math"
	"testing"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/mask"
	"github.com/dantero/continent-gen/internal/rng"
	"github.com/dantero/continent-gen/internal/tectonics"
)

func buildInputs(w, h int, seed uint64) (mask.Result, tectonics.Result, rng.Stream) {
	root := rng.NewRootStream(seed)
	maskResult := mask.Generate(w, h, root.MustFork("mask"), genconfig.DefaultMaskConfig())
	tec := tectonics.Generate(w, h, maskResult.Land, root.MustFork("tectonics"), genconfig.DefaultTectonicsConfig())
	return maskResult, tec, root
}

func TestComposeLandWithinConfiguredMax(t *testing.T) {
	w, h := 96, 64
	maskResult, tec, root := buildInputs(w, h, 101)
	cfg := genconfig.DefaultHeightConfig()
	result := Compose(w, h, maskResult, tec, root.MustFork("heightfield"), cfg)

	for i, isLand := range maskResult.Land.Data {
		if !isLand {
			continue
		}
		if float64(result.Height.Data[i]) > cfg.MaxLandHeightM+1e-6 {
			t.Fatalf("land height[%d] = %v exceeds configured max %v", i, result.Height.Data[i], cfg.MaxLandHeightM)
		}
	}
}

func TestComposeOceanWithinConfiguredMaxDepth(t *testing.T) {
	w, h := 96, 64
	maskResult, tec, root := buildInputs(w, h, 102)
	cfg := genconfig.DefaultHeightConfig()
	result := Compose(w, h, maskResult, tec, root.MustFork("heightfield"), cfg)

	for i, isLand := range maskResult.Land.Data {
		if isLand {
			continue
		}
		if float64(-result.Height.Data[i]) > cfg.MaxOceanDepthM+1e-6 {
			t.Fatalf("ocean depth[%d] = %v exceeds configured max %v", i, -result.Height.Data[i], cfg.MaxOceanDepthM)
		}
	}
}

func TestComposeProducesNoNonFiniteValues(t *testing.T) {
	w, h := 64, 48
	maskResult, tec, root := buildInputs(w, h, 103)
	cfg := genconfig.DefaultHeightConfig()
	result := Compose(w, h, maskResult, tec, root.MustFork("heightfield"), cfg)

	for i, v := range result.Height.Data {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("non-finite height at %d: %v", i, v)
		}
	}
}

func TestComposeDeterministic(t *testing.T) {
	w, h := 64, 48
	cfg := genconfig.DefaultHeightConfig()

	maskResultA, tecA, rootA := buildInputs(w, h, 909)
	a := Compose(w, h, maskResultA, tecA, rootA.MustFork("heightfield"), cfg)

	maskResultB, tecB, rootB := buildInputs(w, h, 909)
	b := Compose(w, h, maskResultB, tecB, rootB.MustFork("heightfield"), cfg)

	for i := range a.Height.Data {
		if a.Height.Data[i] != b.Height.Data[i] {
			t.Fatalf("height not deterministic at %d: %v vs %v", i, a.Height.Data[i], b.Height.Data[i])
		}
	}
}
