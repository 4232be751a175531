package game

import "errors"

var (
	ErrGameOver   = errors.New("game: no game in progress")
	ErrNoEnemy    = errors.New("game: no enemy selected")
	ErrNoWeapon   = errors.New("game: no weapon selected")
	ErrOutOfAmmo  = errors.New("game: weapon is out of ammunition")
	ErrNotEnemy   = errors.New("game: robot is not an enemy")
	ErrUnknownBot = errors.New("game: unknown robot")
)

// AttackResult describes one resolved attack
type AttackResult struct {
	Attacker *Robot
	Weapon   *Weapon
	Defender *Robot

	// OriginalDamage is the rolled damage before any dodge
	OriginalDamage int
	// Jumped is set when the defender tried to dodge
	Jumped bool
	// JumpDamage is the part of the damage the jump avoided
	JumpDamage int
	// Damage is what the defender actually lost
	Damage int

	// Report is the controller's damage report, one line per row
	Report []string
}

// PartialJump reports whether a jump failed to avoid all the damage
func (r AttackResult) PartialJump() bool {
	return r.Jumped && r.JumpDamage < r.OriginalDamage
}

// Controller owns turn order, damage and weapon state
// The view only reads through it and forwards player decisions
type Controller interface {
	// Factions returns faction names in board order, including defeated ones
	Factions() []string
	// Robots returns every robot in turn order
	Robots() []*Robot
	// FactionRobots returns the robots of one faction in turn order
	FactionRobots(faction string) []*Robot

	// CurrentRobot is the robot whose turn it is, nil when no game is running
	CurrentRobot() *Robot
	CurrentEnemy() *Robot
	CurrentWeapon() *Weapon

	InProgress() bool
	FactionType(faction string) FactionType
	// WinningFaction is empty while the game is in progress
	WinningFaction() string
	// IsFactionNameSingular selects "is" or "are" in text about the faction
	IsFactionNameSingular(faction string) bool

	// RemoveRobot drops a dead robot from the match
	RemoveRobot(r *Robot) bool
	SetCurrentEnemy(id string) error
	SetCurrentWeapon(name string) error
	AttackCurrentEnemy() (AttackResult, error)
	// NextRobot ends the turn and returns the new current robot
	NextRobot() *Robot
}
