package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
)

type faction struct {
	name     string
	typ      FactionType
	singular bool
}

// Match is an in-memory Controller: round-robin turns, uniform damage rolls
// and a jump dodge that avoids all or half of an attack
type Match struct {
	rng      *rand.Rand
	factions []faction
	robots   []*Robot

	current int // Index into robots, -1 before Start
	enemy   string
	weapon  string
}

// NewMatch creates an empty match; a nil rng is seeded from the wall clock
func NewMatch(rng *rand.Rand) *Match {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return &Match{rng: rng, current: -1}
}

// AddFaction registers a faction in board order
func (m *Match) AddFaction(name string, typ FactionType, singular bool) error {
	if m.factionIndex(name) >= 0 {
		return fmt.Errorf("game: duplicate faction %q", name)
	}
	m.factions = append(m.factions, faction{name: name, typ: typ, singular: singular})
	return nil
}

// AddRobot appends r to the turn order
func (m *Match) AddRobot(r *Robot) error {
	if m.factionIndex(r.Faction) < 0 {
		return fmt.Errorf("game: robot %s: unknown faction %q", r.ID, r.Faction)
	}
	if m.robot(r.ID) != nil {
		return fmt.Errorf("game: duplicate robot %s", r.ID)
	}
	if r.OriginalHitpoints <= 0 {
		r.OriginalHitpoints = r.Hitpoints
	}
	m.robots = append(m.robots, r)
	return nil
}

// Start hands the first turn to the first living robot
func (m *Match) Start() *Robot {
	m.current = -1
	m.enemy, m.weapon = "", ""
	for i, r := range m.robots {
		if r.Alive() {
			m.current = i
			break
		}
	}
	return m.CurrentRobot()
}

func (m *Match) Factions() []string {
	out := make([]string, len(m.factions))
	for i, f := range m.factions {
		out[i] = f.name
	}
	return out
}

func (m *Match) Robots() []*Robot {
	return slices.Clone(m.robots)
}

func (m *Match) FactionRobots(name string) []*Robot {
	var out []*Robot
	for _, r := range m.robots {
		if r.Faction == name {
			out = append(out, r)
		}
	}
	return out
}

func (m *Match) CurrentRobot() *Robot {
	if m.current < 0 || m.current >= len(m.robots) {
		return nil
	}
	return m.robots[m.current]
}

func (m *Match) CurrentEnemy() *Robot {
	if m.enemy == "" {
		return nil
	}
	return m.robot(m.enemy)
}

func (m *Match) CurrentWeapon() *Weapon {
	cur := m.CurrentRobot()
	if cur == nil || m.weapon == "" {
		return nil
	}
	if i := cur.WeaponIndex(m.weapon); i >= 0 {
		return cur.Arsenal[i]
	}
	return nil
}

// InProgress reports whether more than one faction still has a living robot
func (m *Match) InProgress() bool {
	return m.current >= 0 && len(m.livingFactions()) > 1
}

func (m *Match) FactionType(name string) FactionType {
	if i := m.factionIndex(name); i >= 0 {
		return m.factions[i].typ
	}
	return FactionNone
}

func (m *Match) WinningFaction() string {
	if m.current < 0 {
		return ""
	}
	living := m.livingFactions()
	if len(living) != 1 {
		return ""
	}
	return living[0]
}

func (m *Match) IsFactionNameSingular(name string) bool {
	if i := m.factionIndex(name); i >= 0 {
		return m.factions[i].singular
	}
	return false
}

// RemoveRobot drops a dead robot; living robots stay
func (m *Match) RemoveRobot(r *Robot) bool {
	if r == nil || r.Alive() {
		return false
	}
	idx := slices.Index(m.robots, r)
	if idx < 0 {
		return false
	}
	m.robots = slices.Delete(m.robots, idx, idx+1)
	if idx < m.current || (idx == m.current && m.current == len(m.robots)) {
		m.current--
	}
	if m.enemy == r.ID {
		m.enemy = ""
	}
	return true
}

// SetCurrentEnemy selects a living robot of another faction as the target
func (m *Match) SetCurrentEnemy(id string) error {
	cur := m.CurrentRobot()
	if cur == nil {
		return ErrGameOver
	}
	r := m.robot(id)
	switch {
	case r == nil:
		return fmt.Errorf("%w: %s", ErrUnknownBot, id)
	case r.Faction == cur.Faction || !r.Alive():
		return fmt.Errorf("%w: %s", ErrNotEnemy, id)
	}
	m.enemy = id
	return nil
}

// SetCurrentWeapon selects a usable weapon of the current robot
func (m *Match) SetCurrentWeapon(name string) error {
	cur := m.CurrentRobot()
	if cur == nil {
		return ErrGameOver
	}
	if len(cur.FindWeapons(name)) == 0 {
		return fmt.Errorf("%w: %s has no usable %q", ErrOutOfAmmo, cur.ID, name)
	}
	m.weapon = name
	return nil
}

// AttackCurrentEnemy fires the current weapon at the current enemy
// Selections survive the attack; NextRobot clears them
func (m *Match) AttackCurrentEnemy() (AttackResult, error) {
	if !m.InProgress() {
		return AttackResult{}, ErrGameOver
	}
	attacker := m.CurrentRobot()
	weapon := m.CurrentWeapon()
	defender := m.CurrentEnemy()
	switch {
	case weapon == nil:
		return AttackResult{}, ErrNoWeapon
	case defender == nil:
		return AttackResult{}, ErrNoEnemy
	case !weapon.Usable():
		return AttackResult{}, ErrOutOfAmmo
	}

	if !weapon.Unlimited() {
		weapon.Ammo -= weapon.AmmoPerRound
	}

	lo, hi := weapon.DamageRange()
	if hi < lo {
		hi = lo
	}
	res := AttackResult{
		Attacker:       attacker,
		Weapon:         weapon,
		Defender:       defender,
		OriginalDamage: lo + m.rng.IntN(hi-lo+1),
	}

	if defender.CanJump() && m.rng.Float64() < defender.JumpChance {
		res.Jumped = true
		res.JumpDamage = res.OriginalDamage
		if m.rng.IntN(2) == 0 {
			res.JumpDamage = res.OriginalDamage / 2
		}
	}
	res.Damage = res.OriginalDamage - res.JumpDamage

	before := defender.Hitpoints
	defender.Hitpoints = max(0, before-res.Damage)

	res.Report = append(res.Report,
		fmt.Sprintf("%s fires %s at %s", attacker.LongName, weapon.LongName, defender.LongName),
		fmt.Sprintf("Damage rolled: %d", res.OriginalDamage))
	if res.Jumped {
		res.Report = append(res.Report, fmt.Sprintf("Avoided by jumping: %d", res.JumpDamage))
	}
	res.Report = append(res.Report,
		fmt.Sprintf("Damage dealt: %d", res.Damage),
		fmt.Sprintf("%s hitpoints: %d → %d", defender.LongName, before, defender.Hitpoints))
	return res, nil
}

// NextRobot clears the selections and moves to the next living robot
func (m *Match) NextRobot() *Robot {
	m.enemy, m.weapon = "", ""
	n := len(m.robots)
	if n == 0 || m.current < 0 {
		return nil
	}
	for step := 1; step <= n; step++ {
		i := (m.current + step) % n
		if m.robots[i].Alive() {
			m.current = i
			break
		}
	}
	return m.CurrentRobot()
}

func (m *Match) robot(id string) *Robot {
	for _, r := range m.robots {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (m *Match) factionIndex(name string) int {
	return slices.IndexFunc(m.factions, func(f faction) bool { return f.name == name })
}

// livingFactions returns factions with a living robot, in board order
func (m *Match) livingFactions() []string {
	var out []string
	for _, f := range m.factions {
		if slices.ContainsFunc(m.robots, func(r *Robot) bool { return r.Faction == f.name && r.Alive() }) {
			out = append(out, f.name)
		}
	}
	return out
}
