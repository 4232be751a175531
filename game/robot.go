// Package game defines the combat controller contract the view renders and
// drives, plus an in-memory match that satisfies it.
package game

// Class is the robot weight class; it selects the explosion played on death
type Class string

const (
	ClassLight   Class = "light"
	ClassMedium  Class = "medium"
	ClassHeavy   Class = "heavy"
	ClassAssault Class = "assault"
)

// FactionType says who plays a faction; empty for unknown factions
type FactionType string

const (
	FactionNone  FactionType = ""
	FactionHuman FactionType = "human"
	FactionAI    FactionType = "ai"
)

// Weapon is one arsenal entry
// AmmoPerRound <= 0 means unlimited ammunition
type Weapon struct {
	InternalName string
	ShortName    string
	LongName     string
	Ammo         int
	AmmoPerRound int
	MinDamage    int
	MaxDamage    int
}

// Unlimited reports whether firing never consumes ammunition
func (w *Weapon) Unlimited() bool {
	return w.AmmoPerRound <= 0
}

// Usable reports whether at least one more round can be fired
func (w *Weapon) Usable() bool {
	return w.Unlimited() || w.Ammo >= w.AmmoPerRound
}

// Rounds returns the remaining rounds, -1 when unlimited
func (w *Weapon) Rounds() int {
	if w.Unlimited() {
		return -1
	}
	return w.Ammo / w.AmmoPerRound
}

// DamageRange returns the weapon damage bounds with negatives clamped to zero
func (w *Weapon) DamageRange() (lo, hi int) {
	return max(0, w.MinDamage), max(0, w.MaxDamage)
}

// Robot is a combatant as seen by the view
type Robot struct {
	ID                string
	LongName          string
	Faction           string
	Class             Class
	Hitpoints         int
	OriginalHitpoints int
	Arsenal           []*Weapon

	// Natural image size in source pixels; the tallest robots are 700 high
	ImageWidth  int
	ImageHeight int

	// JumpChance is the probability of jumping when attacked, 0 for robots that cannot jump
	JumpChance float64
}

// Alive reports whether the robot still has hitpoints
func (r *Robot) Alive() bool {
	return r.Hitpoints > 0
}

// HitpointRatio returns current over original hitpoints
func (r *Robot) HitpointRatio() float64 {
	if r.OriginalHitpoints <= 0 {
		return 0
	}
	return float64(r.Hitpoints) / float64(r.OriginalHitpoints)
}

// HasAmmo reports whether any weapon can still fire
func (r *Robot) HasAmmo() bool {
	for _, w := range r.Arsenal {
		if w.Usable() {
			return true
		}
	}
	return false
}

// FindWeapons returns the usable weapons with the given internal name
func (r *Robot) FindWeapons(name string) []*Weapon {
	var out []*Weapon
	for _, w := range r.Arsenal {
		if w.InternalName == name && w.Usable() {
			out = append(out, w)
		}
	}
	return out
}

// WeaponIndex returns the arsenal index of name or -1
func (r *Robot) WeaponIndex(name string) int {
	for i, w := range r.Arsenal {
		if w.InternalName == name {
			return i
		}
	}
	return -1
}

// CanJump reports whether the robot may dodge attacks by jumping
func (r *Robot) CanJump() bool {
	return r.JumpChance > 0
}
