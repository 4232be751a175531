package game

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func newDuel(t *testing.T) (*Match, *Robot, *Robot) {
	t.Helper()
	m := NewMatch(rand.New(rand.NewPCG(1, 2)))
	if err := m.AddFaction("Blue", FactionHuman, true); err != nil {
		t.Fatal(err)
	}
	if err := m.AddFaction("The Reds", FactionAI, false); err != nil {
		t.Fatal(err)
	}
	a := &Robot{ID: "a", LongName: "Scout", Faction: "Blue", Class: ClassLight, Hitpoints: 20,
		Arsenal: []*Weapon{
			{InternalName: "laser", LongName: "Laser", AmmoPerRound: 0, MinDamage: 5, MaxDamage: 5},
			{InternalName: "rocket", LongName: "Rocket", Ammo: 2, AmmoPerRound: 2, MinDamage: 30, MaxDamage: 30},
		}}
	b := &Robot{ID: "b", LongName: "Brute", Faction: "The Reds", Class: ClassHeavy, Hitpoints: 25,
		Arsenal: []*Weapon{{InternalName: "cannon", Ammo: 10, AmmoPerRound: 1, MinDamage: 1, MaxDamage: 3}}}
	for _, r := range []*Robot{a, b} {
		if err := m.AddRobot(r); err != nil {
			t.Fatal(err)
		}
	}
	m.Start()
	return m, a, b
}

func TestWeaponAmmo(t *testing.T) {
	tests := []struct {
		name   string
		w      Weapon
		usable bool
		rounds int
	}{
		{"unlimited", Weapon{AmmoPerRound: 0}, true, -1},
		{"two rounds", Weapon{Ammo: 5, AmmoPerRound: 2}, true, 2},
		{"short", Weapon{Ammo: 1, AmmoPerRound: 2}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.w.Usable() != tt.usable || tt.w.Rounds() != tt.rounds {
				t.Errorf("usable=%v rounds=%d, want %v/%d", tt.w.Usable(), tt.w.Rounds(), tt.usable, tt.rounds)
			}
		})
	}
}

// TestSelectionRules verifies only living enemies and usable weapons can be selected
func TestSelectionRules(t *testing.T) {
	m, a, b := newDuel(t)
	if m.CurrentRobot() != a {
		t.Fatal("first robot does not have the first turn")
	}
	if err := m.SetCurrentEnemy("a"); !errors.Is(err, ErrNotEnemy) {
		t.Errorf("ally selection err = %v", err)
	}
	if err := m.SetCurrentEnemy("zz"); !errors.Is(err, ErrUnknownBot) {
		t.Errorf("unknown selection err = %v", err)
	}
	if err := m.SetCurrentWeapon("cannon"); !errors.Is(err, ErrOutOfAmmo) {
		t.Errorf("foreign weapon err = %v", err)
	}
	if err := m.SetCurrentEnemy("b"); err != nil || m.CurrentEnemy() != b {
		t.Fatalf("enemy selection failed: %v", err)
	}
	if err := m.SetCurrentWeapon("laser"); err != nil || m.CurrentWeapon() != a.Arsenal[0] {
		t.Fatalf("weapon selection failed: %v", err)
	}
}

// TestAttackConsumesAmmoAndEndsGame verifies ammo, damage and the winner
func TestAttackConsumesAmmoAndEndsGame(t *testing.T) {
	m, a, b := newDuel(t)

	if _, err := m.AttackCurrentEnemy(); !errors.Is(err, ErrNoWeapon) {
		t.Errorf("attack without weapon err = %v", err)
	}
	m.SetCurrentWeapon("rocket")
	if _, err := m.AttackCurrentEnemy(); !errors.Is(err, ErrNoEnemy) {
		t.Errorf("attack without enemy err = %v", err)
	}
	m.SetCurrentEnemy("b")

	res, err := m.AttackCurrentEnemy()
	if err != nil {
		t.Fatal(err)
	}
	if res.OriginalDamage != 30 || res.Damage != 30 || res.Jumped {
		t.Errorf("result = %+v", res)
	}
	if b.Hitpoints != 0 || b.Alive() {
		t.Errorf("defender hitpoints = %d, want clamped to 0", b.Hitpoints)
	}
	if a.Arsenal[1].Ammo != 0 || a.Arsenal[1].Usable() {
		t.Error("rocket ammo not consumed")
	}
	if len(res.Report) == 0 {
		t.Error("empty damage report")
	}
	if m.InProgress() || m.WinningFaction() != "Blue" {
		t.Errorf("in progress=%v winner=%q", m.InProgress(), m.WinningFaction())
	}
	if _, err := m.AttackCurrentEnemy(); !errors.Is(err, ErrGameOver) {
		t.Errorf("attack after the end err = %v", err)
	}
}

// TestJumpAvoidsDamage verifies a sure jumper always avoids all or half the damage
func TestJumpAvoidsDamage(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		m, _, b := newDuel(t)
		m.rng = rand.New(rand.NewPCG(seed, 3))
		b.JumpChance = 1
		m.SetCurrentWeapon("laser")
		m.SetCurrentEnemy("b")

		res, err := m.AttackCurrentEnemy()
		if err != nil {
			t.Fatal(err)
		}
		if !res.Jumped {
			t.Fatalf("seed %d: sure jumper did not jump", seed)
		}
		if res.JumpDamage != 5 && res.JumpDamage != 2 {
			t.Errorf("seed %d: jump avoided %d of 5", seed, res.JumpDamage)
		}
		if res.PartialJump() != (res.Damage > 0) {
			t.Errorf("seed %d: partial=%v with %d damage taken", seed, res.PartialJump(), res.Damage)
		}
		if b.Hitpoints != 25-res.Damage {
			t.Errorf("seed %d: hitpoints %d after %d damage", seed, b.Hitpoints, res.Damage)
		}
	}
}

// TestNextRobotSkipsDeadAndClears verifies turn rotation and selection reset
func TestNextRobotSkipsDeadAndClears(t *testing.T) {
	m := NewMatch(rand.New(rand.NewPCG(1, 1)))
	m.AddFaction("A", FactionHuman, true)
	m.AddFaction("B", FactionAI, true)
	r1 := &Robot{ID: "1", Faction: "A", Hitpoints: 5}
	r2 := &Robot{ID: "2", Faction: "B", Hitpoints: 0, OriginalHitpoints: 5}
	r3 := &Robot{ID: "3", Faction: "B", Hitpoints: 5}
	for _, r := range []*Robot{r1, r2, r3} {
		m.AddRobot(r)
	}
	m.Start()
	m.SetCurrentEnemy("3")

	if next := m.NextRobot(); next != r3 {
		t.Fatalf("next = %v, want robot 3", next)
	}
	if m.CurrentEnemy() != nil || m.CurrentWeapon() != nil {
		t.Error("selections survived the turn change")
	}
	if next := m.NextRobot(); next != r1 {
		t.Errorf("turn did not wrap to robot 1")
	}
}

func TestRemoveRobot(t *testing.T) {
	m, a, b := newDuel(t)
	if m.RemoveRobot(b) {
		t.Error("removed a living robot")
	}
	b.Hitpoints = 0
	if !m.RemoveRobot(b) || len(m.Robots()) != 1 {
		t.Fatal("dead robot not removed")
	}
	if m.RemoveRobot(b) {
		t.Error("removed the same robot twice")
	}
	if m.CurrentRobot() != a {
		t.Error("current robot changed by removing another")
	}
	if got := m.FactionRobots("The Reds"); len(got) != 0 {
		t.Errorf("faction still lists %d robots", len(got))
	}
}

func TestFactionQueries(t *testing.T) {
	m, _, _ := newDuel(t)
	if m.FactionType("Blue") != FactionHuman || m.FactionType("Nobody") != FactionNone {
		t.Error("faction types wrong")
	}
	if !m.IsFactionNameSingular("Blue") || m.IsFactionNameSingular("The Reds") {
		t.Error("singular flags wrong")
	}
	if err := m.AddFaction("Blue", FactionAI, false); err == nil {
		t.Error("duplicate faction accepted")
	}
	if err := m.AddRobot(&Robot{ID: "x", Faction: "Nobody"}); err == nil {
		t.Error("robot of unknown faction accepted")
	}
}
