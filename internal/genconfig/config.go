// Package genconfig defines the configuration groups that parameterize the
// generation pipeline. Every field here is serialized verbatim into
// deterministic_meta.json, so field names and defaults are part of the
// external contract.
package genconfig

// MaskConfig controls land-mask formation (see internal/mask).
type MaskConfig struct {
	BaseOctaves          int     `json:"base_octaves"`
	WarpOctaves          int     `json:"warp_octaves"`
	WarpStrengthPx       float64 `json:"warp_strength_px"`
	Fragmentation        float64 `json:"fragmentation"`
	CoastBiasStrength    float64 `json:"coast_bias_strength"`
	TargetLandFraction   float64 `json:"target_land_fraction"`
	MinLandFraction      float64 `json:"min_land_fraction"`
	MaxLandFraction      float64 `json:"max_land_fraction"`
	SmoothIterations     int     `json:"smooth_iterations"`
	DominantLandRatio    float64 `json:"dominant_land_ratio"`
	ThresholdRelaxation  float64 `json:"threshold_relaxation"`
	MaxRelaxationRounds  int     `json:"max_relaxation_rounds"`
}

// DefaultMaskConfig mirrors terrain/mask.py's implied defaults.
func DefaultMaskConfig() MaskConfig {
	return MaskConfig{
		BaseOctaves:         5,
		WarpOctaves:         4,
		WarpStrengthPx:      36.0,
		Fragmentation:       0.2,
		CoastBiasStrength:   0.5,
		TargetLandFraction:  0.35,
		MinLandFraction:     0.15,
		MaxLandFraction:     0.65,
		SmoothIterations:    2,
		DominantLandRatio:   0.55,
		ThresholdRelaxation: 0.015,
		MaxRelaxationRounds: 3,
	}
}

// HeightConfig controls the composer in internal/heightfield.
type HeightConfig struct {
	MaxLandHeightM           float64 `json:"max_land_height_m"`
	MaxOceanDepthM           float64 `json:"max_ocean_depth_m"`
	BaseLandLiftM            float64 `json:"base_land_lift_m"`
	ContinentalityHeightM    float64 `json:"continentality_height_m"`
	RidgeHeightM             float64 `json:"ridge_height_m"`
	CrustHeightM             float64 `json:"crust_height_m"`
	BasinHeightM             float64 `json:"basin_height_m"`
	StressUpliftM            float64 `json:"stress_uplift_m"`
	OrogenyStrengthM         float64 `json:"orogeny_strength_m"`
	TransformStrengthM       float64 `json:"transform_strength_m"`
	RiftStrengthM            float64 `json:"rift_strength_m"`
	InteriorBasinStrengthM   float64 `json:"interior_basin_strength_m"`
	CollisionDamping         float64 `json:"collision_damping"`
	OceanDepthFactorM        float64 `json:"ocean_depth_factor_m"`
	ShelfDepthPower          float64 `json:"shelf_depth_power"`
	OceanShelfBlend          float64 `json:"ocean_shelf_blend"`
	DomeLiftCoefficient      float64 `json:"dome_lift_coefficient"`
	DetailAmplitudeM         float64 `json:"detail_amplitude_m"`
}

// DefaultHeightConfig holds the height-composition formula constants.
func DefaultHeightConfig() HeightConfig {
	return HeightConfig{
		MaxLandHeightM:         8848.0,
		MaxOceanDepthM:         6000.0,
		BaseLandLiftM:          40.0,
		ContinentalityHeightM:  900.0,
		RidgeHeightM:           1400.0,
		CrustHeightM:           600.0,
		BasinHeightM:           -300.0,
		StressUpliftM:          500.0,
		OrogenyStrengthM:       3200.0,
		TransformStrengthM:     350.0,
		RiftStrengthM:          1100.0,
		InteriorBasinStrengthM: 400.0,
		CollisionDamping:       0.35,
		OceanDepthFactorM:      4500.0,
		ShelfDepthPower:        2.2,
		OceanShelfBlend:        0.5,
		DomeLiftCoefficient:    5e-5,
		DetailAmplitudeM:       120.0,
	}
}

// TectonicsConfig controls the plate scaffold in internal/tectonics.
type TectonicsConfig struct {
	MinPlateCount                 int     `json:"min_plate_count"`
	MaxPlateCount                 int     `json:"max_plate_count"`
	SiteMinDistance                float64 `json:"site_min_distance"`
	PlateWarpStrengthPx            float64 `json:"plate_warp_strength_px"`
	TangentWarpFraction            float64 `json:"tangent_warp_fraction"`
	NormalWarpFraction              float64 `json:"normal_warp_fraction"`
	MinLithosphereThicknessPx      float64 `json:"min_lithosphere_thickness_px"`
	CurvatureLimit                 float64 `json:"curvature_limit"`
	BoundaryConvergenceThreshold   float64 `json:"boundary_convergence_threshold"`
	DeformationMaxRadiusPx         float64 `json:"deformation_max_radius_px"`
	CollisionSoftmaxTemperature    float64 `json:"collision_softmax_temperature"`
	TripleJunctionBoost            float64 `json:"triple_junction_boost"`
	OrogenyRadiusPx                int     `json:"orogeny_radius_px"`
	RiftRadiusPx                   int     `json:"rift_radius_px"`
	TransformRadiusPx              int     `json:"transform_radius_px"`
	CrustRadiusPx                  int     `json:"crust_radius_px"`
	ShelfRadiusPx                  int     `json:"shelf_radius_px"`
	BlurPasses                     int     `json:"blur_passes"`
	OrogenyGamma                   float64 `json:"orogeny_gamma"`
	RiftGamma                      float64 `json:"rift_gamma"`
	TransformGamma                 float64 `json:"transform_gamma"`
	CrustPower                     float64 `json:"crust_power"`
	ShelfPower                     float64 `json:"shelf_power"`
}

// DefaultTectonicsConfig mirrors terrain/tectonics.py plus the richer
// warp/envelope/triple-junction additions built on top of it.
func DefaultTectonicsConfig() TectonicsConfig {
	return TectonicsConfig{
		MinPlateCount:               6,
		MaxPlateCount:               12,
		SiteMinDistance:             0.18,
		PlateWarpStrengthPx:         28.0,
		TangentWarpFraction:         0.65,
		NormalWarpFraction:          0.35,
		MinLithosphereThicknessPx:   6.0,
		CurvatureLimit:              0.6,
		BoundaryConvergenceThreshold: 0.12,
		DeformationMaxRadiusPx:      96.0,
		CollisionSoftmaxTemperature: 0.35,
		TripleJunctionBoost:         0.5,
		OrogenyRadiusPx:             18,
		RiftRadiusPx:                14,
		TransformRadiusPx:           10,
		CrustRadiusPx:               40,
		ShelfRadiusPx:               24,
		BlurPasses:                  3,
		OrogenyGamma:                0.85,
		RiftGamma:                   0.9,
		TransformGamma:              0.9,
		CrustPower:                  0.7,
		ShelfPower:                  1.3,
	}
}

// HydrologyConfig controls internal/hydrology.
type HydrologyConfig struct {
	SmoothSigmaPx              float64 `json:"hydro_smooth_sigma_px"`
	DepressionBreachMaxSaddleM float64 `json:"depression_breach_max_saddle_m"`
	DepressionEpsilonM         float64 `json:"depression_epsilon_m"`
	DropletCount                int     `json:"droplet_count"`
	DropletSteps                int     `json:"droplet_steps"`
	DropletCarveM               float64 `json:"droplet_carve_m"`
	DropletVelocityBlend         float64 `json:"droplet_velocity_blend"`
	MaxBasinPixels               int     `json:"max_basin_pixels"`
	MaxLinkLengthPx               float64 `json:"max_link_length_px"`
	CaptureFraction                float64 `json:"capture_fraction"`
	CaptureMaxSillM                 float64 `json:"hydro_capture_max_sill_m"`
	OutletMergeRadiusPx             float64 `json:"hydro_outlet_merge_radius_px"`
	OutletMinBasinPixels             int     `json:"hydro_outlet_min_basin_pixels"`
	RiverAccumThresholdBase           float64 `json:"river_accum_threshold_base"`
	RiverMaxWidthPx                    float64 `json:"river_max_width_px"`
	RiverWidthPower                     float64 `json:"river_width_power"`
	RiverMaxIncisionM                    float64 `json:"river_max_incision_m"`
}

// DefaultHydrologyConfig mirrors the constants in terrain/hydrology.py's
// active pipeline path (droplet kernel constants must stay bit-exact across
// runs sharing a seed).
func DefaultHydrologyConfig() HydrologyConfig {
	return HydrologyConfig{
		SmoothSigmaPx:              2.0,
		DepressionBreachMaxSaddleM: 3.0,
		DepressionEpsilonM:         1e-3,
		DropletCount:               50000,
		DropletSteps:               500,
		DropletCarveM:              0.02,
		DropletVelocityBlend:       0.7,
		MaxBasinPixels:             20000,
		MaxLinkLengthPx:            160.0,
		CaptureFraction:            0.5,
		CaptureMaxSillM:            25.0,
		OutletMergeRadiusPx:        8.0,
		OutletMinBasinPixels:       24,
		RiverAccumThresholdBase:    0.01,
		RiverMaxWidthPx:            6.0,
		RiverWidthPower:            0.5,
		RiverMaxIncisionM:          40.0,
	}
}

// GeomorphConfig controls internal/geomorph.
type GeomorphConfig struct {
	IncisionM                   float64 `json:"geomorph_incision_m"`
	IncisionN                   float64 `json:"geomorph_incision_n"`
	AMin                        float64 `json:"geomorph_a_min"`
	PowerScalePercentile        float64 `json:"geomorph_power_scale_percentile"`
	RidgePreserve               float64 `json:"geomorph_ridge_preserve"`
	ValleyBlurSigmaPx           float64 `json:"geomorph_valley_blur_sigma_px"`
	MaxDepthM                   float64 `json:"geomorph_max_depth_m"`
	IncisionStrength            float64 `json:"geomorph_incision_strength"`
	UsePhysicalStreamPower      bool    `json:"geomorph_use_physical_stream_power"`
}

// DefaultGeomorphConfig mirrors terrain/geomorph.py's defaults.
func DefaultGeomorphConfig() GeomorphConfig {
	return GeomorphConfig{
		IncisionM:              0.5,
		IncisionN:              1.0,
		AMin:                   0.02,
		PowerScalePercentile:   99.9,
		RidgePreserve:          0.25,
		ValleyBlurSigmaPx:      1.5,
		MaxDepthM:              220.0,
		IncisionStrength:       0.6,
		UsePhysicalStreamPower: false,
	}
}

// RenderConfig controls debug/preview rendering only; it never affects
// height.npy or any other deterministic output.
type RenderConfig struct {
	HillshadeAzimuthDeg         float64 `json:"hillshade_azimuth_deg"`
	HillshadeAltitudeDeg        float64 `json:"hillshade_altitude_deg"`
	HillshadeVerticalExaggeration float64 `json:"hillshade_vertical_exaggeration"`
}

// DefaultRenderConfig mirrors terrain/config.py's RenderConfig defaults.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		HillshadeAzimuthDeg:           315.0,
		HillshadeAltitudeDeg:          45.0,
		HillshadeVerticalExaggeration: 1.0,
	}
}

// Config aggregates every group plus the top-level run parameters. It is a
// plain immutable value passed explicitly through the pipeline; generation
// never reads from package-level mutable state.
type Config struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	MetersPerPixel float64 `json:"meters_per_pixel"`
	Seed           string  `json:"seed"`

	Mask      MaskConfig      `json:"mask"`
	HeightGen HeightConfig    `json:"height"`
	Tectonics TectonicsConfig `json:"tectonics"`
	Hydrology HydrologyConfig `json:"hydrology"`
	Geomorph  GeomorphConfig  `json:"geomorph"`
	Render    RenderConfig    `json:"render"`
}

// Default returns the full default configuration for the given run
// dimensions.
func Default(width, height int, metersPerPixel float64, seed string) Config {
	return Config{
		Width:          width,
		Height:         height,
		MetersPerPixel: metersPerPixel,
		Seed:           seed,
		Mask:           DefaultMaskConfig(),
		HeightGen:      DefaultHeightConfig(),
		Tectonics:      DefaultTectonicsConfig(),
		Hydrology:      DefaultHydrologyConfig(),
		Geomorph:       DefaultGeomorphConfig(),
		Render:         DefaultRenderConfig(),
	}
}
