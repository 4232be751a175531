package parameter

import "time"

// Robot Panel Geometry (cells)
const (
	// TopBarHeight is the name/hp/close row of a robot panel
	TopBarHeight = 1

	// ReferenceImageHeight is the natural height of the tallest robot image
	// Shorter robots scale down proportionally so relative size survives
	ReferenceImageHeight = 700

	// CellAspect is terminal cell height over width, used to keep robot images in proportion
	CellAspect = 2.0

	// FlipThreshold is the faction left edge (percent) below which robots face right
	FlipThreshold = 50
)

// Hitpoint colour bands for the acting side
const (
	HitpointsLow    = 0.333
	HitpointsMedium = 0.666
)

// Dialog geometry, percent of the surface
const (
	PassDialogLeft    = 30
	PassDialogTop     = 15
	PassDialogWidth   = 40
	TurnDialogLeft    = 35
	TurnDialogTop     = 5
	TurnDialogWidth   = 30
	TurnDialogHeight  = 15
	HintDialogLeft    = 45
	HintDialogTop     = 10
	HintDialogWidth   = 10
	ReportDialogLeft  = 30
	ReportDialogTop   = 15
	ReportDialogWidth = 40
	EndDialogLeft     = 25
	EndDialogTop      = 12
	EndDialogWidth    = 50
	EndDialogHeight   = 75
)

// Dialog timing
const (
	TurnDialogTimeout = 1500 * time.Millisecond
	HintDialogTimeout = 2000 * time.Millisecond

	// FadeDuration is how long Hide waits before removing the content from view
	FadeDuration = 1 * time.Second
)

// Backdrops
const (
	BackdropMin = 1
	BackdropMax = 2
)

// Text
const (
	UnlimitedAmmo = "∞"

	// EdictLongName is shortened to its in-story form in endgame text
	EdictLongName  = "The Prime Edict"
	EdictShortName = "The Edict"
)
