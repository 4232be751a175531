package parameter

// System Execution Priorities (lower runs first)
// Timers are drained by the loop before any system runs
const (
	PriorityMotion = 10 // Image displacement before sprites sample their parent
	PriorityEffect = 20
)

// Layers determine draw order and hit-test precedence
// Higher values render on top and receive clicks first
const (
	LayerBackdrop = 0
	LayerFaction  = 10
	LayerRobot    = 20
	LayerImage    = 30
	LayerSprite   = 40
	LayerWeapons  = 60
	LayerTopBar   = 70

	// Dialog layers grow with stack depth so newer dialogs cover older ones
	LayerOverlay    = 1000
	LayerDialog     = 1001
	LayerDialogStep = 2
)
