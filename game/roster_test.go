package game

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefaultRosterBuilds verifies the embedded roster yields a playable match
func TestDefaultRosterBuilds(t *testing.T) {
	m, err := DefaultRoster().Build(rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := len(m.Factions()); got != 2 {
		t.Fatalf("%d factions, want 2", got)
	}
	if m.FactionType("Blue Company") != FactionHuman || m.FactionType("The Prime Edict") != FactionAI {
		t.Error("faction types not applied")
	}
	if m.Start() == nil || !m.InProgress() {
		t.Fatal("match did not start")
	}

	wasp := m.FactionRobots("Blue Company")[0]
	if wasp.OriginalHitpoints != 40 || wasp.JumpChance != 0.3 || wasp.Class != ClassLight {
		t.Errorf("wasp = %+v", wasp)
	}
	if !wasp.Arsenal[0].Unlimited() || wasp.Arsenal[1].Rounds() != 5 {
		t.Error("weapon ammo not applied")
	}
}

// TestBuildCreatesFreshRobots verifies two matches from one roster share no state
func TestBuildCreatesFreshRobots(t *testing.T) {
	r := DefaultRoster()
	a, _ := r.Build(nil)
	b, _ := r.Build(nil)
	a.Robots()[0].Hitpoints = 0
	if b.Robots()[0].Hitpoints == 0 {
		t.Error("matches share robots")
	}
}

func TestParseRosterErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"syntax", "factions: [", "unmarshal roster"},
		{"one faction", "factions:\n  - {name: A, type: human, robots: [{id: a, hitpoints: 1}]}\n", "at least two"},
		{"bad type", `factions:
  - {name: A, type: robot, robots: [{id: a, hitpoints: 1}]}
  - {name: B, type: ai, robots: [{id: b, hitpoints: 1}]}
`, "unknown type"},
		{"empty faction", `factions:
  - {name: A, type: human}
  - {name: B, type: ai, robots: [{id: b, hitpoints: 1}]}
`, "no robots"},
		{"no hitpoints", `factions:
  - {name: A, type: human, robots: [{id: a}]}
  - {name: B, type: ai, robots: [{id: b, hitpoints: 1}]}
`, "positive hitpoints"},
		{"jump chance", `factions:
  - {name: A, type: human, robots: [{id: a, hitpoints: 1, jump_chance: 2}]}
  - {name: B, type: ai, robots: [{id: b, hitpoints: 1}]}
`, "jump chance"},
		{"inverted damage", `factions:
  - {name: A, type: human, robots: [{id: a, hitpoints: 1, weapons: [{id: w, damage: [5, 2]}]}]}
  - {name: B, type: ai, robots: [{id: b, hitpoints: 1}]}
`, "inverted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoster([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseRoster() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestBuildDuplicateRobot(t *testing.T) {
	r, err := ParseRoster([]byte(`factions:
  - {name: A, type: human, robots: [{id: x, hitpoints: 1}]}
  - {name: B, type: ai, robots: [{id: x, hitpoints: 1}]}
`))
	if err != nil {
		t.Fatalf("ParseRoster() error: %v", err)
	}
	if _, err := r.Build(nil); err == nil {
		t.Error("duplicate robot id accepted")
	}
}

func TestLoadRoster(t *testing.T) {
	if r, err := LoadRoster(""); err != nil || len(r.Factions) != 2 {
		t.Fatalf("LoadRoster(\"\") = %v, %v", r, err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "duel.yaml")
	data := `factions:
  - {name: Red, type: ai, robots: [{id: r, name: Rook, hitpoints: 5}]}
  - {name: Green, type: ai, robots: [{id: g, hitpoints: 5}]}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("LoadRoster() error: %v", err)
	}
	m, _ := r.Build(nil)
	if m.Robots()[0].LongName != "Rook" || m.Robots()[1].LongName != "g" {
		t.Error("robot names not applied")
	}

	if _, err := LoadRoster(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}
