package parameter

import "time"

// Explosion Defaults
// Applied when a caller passes a zero duration
const (
	DefaultFireDuration      = 60 * time.Second
	DefaultExplosionDuration = 2 * time.Second
)

// Per-class final explosion timings (fire, explosion)
const (
	LightFireDuration        = 10 * time.Second
	LightExplosionDuration   = 2500 * time.Millisecond
	MediumFireDuration       = 20 * time.Second
	MediumExplosionDuration  = 2 * time.Second
	HeavyFireDuration        = 30 * time.Second
	HeavyExplosionDuration   = 5 * time.Second
	DefaultRobotFireDuration = 0
	DefaultRobotExplosion    = 1 * time.Second
)

// Light explosion: pilot-light fires plus a rapid scatter of small blasts
const (
	LightFireCount       = 6
	LightFireJitter      = 3 // Max horizontal displacement in cells
	LightFireSink        = 1 // Rows the flame base sinks below the image bottom
	LightFireDelayMin    = 600 * time.Millisecond
	LightFireDelayMax    = 1000 * time.Millisecond
	LightFireFPSMin      = 10
	LightFireFPSMax      = 25
	LightBlastMin        = 15
	LightBlastMax        = 30
	LightBlastStagger    = 5 * time.Millisecond
	LightFadeLead        = 500 * time.Millisecond
	LightBlastKindSmall  = "e5"
	LightBlastKindMedium = "e2"
	LightBlastKindLarge  = "e3"
)

// Medium explosion
const (
	MediumFireOverlap     = 4 // Columns adjacent f2 flames overlap by
	MediumFireSink        = 1
	MediumFireJitter      = 1
	MediumFireExtraMin    = 100 * time.Millisecond
	MediumFireExtraMax    = 500 * time.Millisecond
	MediumFireFPSJitter   = 3
	MediumBlastDensity    = 3.8 // e4 blasts per e4-sized unit of robot area
	MediumBlastDivisorMin = 5
	MediumBlastDivisorMax = 10
	MediumFadeLead        = 2 * time.Second
)

// Heavy and assault explosion
const (
	HeavySmallDensity   = 1.7 // e1 blasts per e1-sized unit of robot area
	HeavyLargeDensity   = 3.5 // e7/e8 blasts per e7-sized unit of robot area
	HeavyFireMinCount   = 2
	HeavyFireJitter     = 1
	HeavyFireRealWidth  = 6 // Visible width of an f3 flame inside its sprite box
	HeavyFireFPSMin     = -5
	HeavyFireFPSMax     = 15
	HeavySparkDuration  = 500 * time.Millisecond
	HeavyFinaleMin      = 5
	HeavyFinaleMax      = 15
	HeavyFinaleDurMin   = 500 * time.Millisecond
	HeavyFinaleDurMax   = 4000 * time.Millisecond
	HeavyFinaleSpacing  = 250 * time.Millisecond
	DefaultFadeOpacity  = 0.1
	HeavyFinaleSparkPad = 500 * time.Millisecond
)

// Jump thrusters
const (
	JumpDuration        = 2 * time.Second
	JumpPartialDivisor  = 10
	JumpSmokeDuration   = 1 * time.Second
	JumpSmokeJitter     = 500 * time.Millisecond
	JumpBaseJitter      = 1 // Rows of vertical scatter around the image base
	JumpHeightFactor    = 2.5
	JumpLightFactor     = 0.7
	JumpHeavyFactor     = 1.25
	JumpAssaultFactor   = 1.5
	JumpLightRingsMin   = 2
	JumpLightRingsMax   = 3
	JumpMediumRingsMin  = 3
	JumpMediumRingsMax  = 5
	JumpHeavyRingsMin   = 8
	JumpHeavyRingsMax   = 15
	JumpAssaultRingsMin = 13
	JumpAssaultRingsMax = 20
	JumpSmokeKind       = "e10"
)
