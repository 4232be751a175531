package game

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed roster.yaml
var defaultRosterYAML []byte

// Roster is a match setup: factions in board order and their robots
type Roster struct {
	Factions []FactionSpec `yaml:"factions"`
}

// FactionSpec describes one side of a match
type FactionSpec struct {
	Name     string      `yaml:"name"`
	Type     FactionType `yaml:"type"`
	Singular bool        `yaml:"singular"`
	Robots   []RobotSpec `yaml:"robots"`
}

// RobotSpec describes one robot and its arsenal
type RobotSpec struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Class       Class        `yaml:"class"`
	Hitpoints   int          `yaml:"hitpoints"`
	JumpChance  float64      `yaml:"jump_chance"`
	ImageWidth  int          `yaml:"image_width"`
	ImageHeight int          `yaml:"image_height"`
	Weapons     []WeaponSpec `yaml:"weapons"`
}

// WeaponSpec describes one arsenal entry; a missing ammo_per_round is unlimited
type WeaponSpec struct {
	ID           string `yaml:"id"`
	Short        string `yaml:"short"`
	Name         string `yaml:"name"`
	Ammo         int    `yaml:"ammo"`
	AmmoPerRound int    `yaml:"ammo_per_round"`
	Damage       [2]int `yaml:"damage"`
}

// DefaultRoster returns the embedded two-faction skirmish
func DefaultRoster() *Roster {
	r, err := ParseRoster(defaultRosterYAML)
	if err != nil {
		panic(fmt.Sprintf("game: embedded roster: %v", err))
	}
	return r
}

// ParseRoster decodes and validates roster YAML
func ParseRoster(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("game: unmarshal roster: %w", err)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadRoster reads a roster file; an empty path returns the embedded roster
func LoadRoster(path string) (*Roster, error) {
	if path == "" {
		return DefaultRoster(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("game: load roster %s: %w", path, err)
	}
	r, err := ParseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("game: roster %s: %w", path, err)
	}
	return r, nil
}

func (r *Roster) validate() error {
	if len(r.Factions) < 2 {
		return fmt.Errorf("game: roster needs at least two factions, has %d", len(r.Factions))
	}
	for _, f := range r.Factions {
		switch f.Type {
		case FactionHuman, FactionAI:
		default:
			return fmt.Errorf("game: faction %q: unknown type %q", f.Name, f.Type)
		}
		if len(f.Robots) == 0 {
			return fmt.Errorf("game: faction %q has no robots", f.Name)
		}
		for _, rs := range f.Robots {
			if rs.ID == "" || rs.Hitpoints <= 0 {
				return fmt.Errorf("game: faction %q: robot %q needs an id and positive hitpoints", f.Name, rs.ID)
			}
			if rs.JumpChance < 0 || rs.JumpChance > 1 {
				return fmt.Errorf("game: robot %s: jump chance %v outside [0, 1]", rs.ID, rs.JumpChance)
			}
			for _, ws := range rs.Weapons {
				if ws.Damage[0] > ws.Damage[1] {
					return fmt.Errorf("game: robot %s weapon %s: damage %d-%d is inverted",
						rs.ID, ws.ID, ws.Damage[0], ws.Damage[1])
				}
			}
		}
	}
	return nil
}

// Build creates a match holding fresh robots for every entry
func (r *Roster) Build(rng *rand.Rand) (*Match, error) {
	m := NewMatch(rng)
	for _, f := range r.Factions {
		if err := m.AddFaction(f.Name, f.Type, f.Singular); err != nil {
			return nil, err
		}
		for _, rs := range f.Robots {
			if err := m.AddRobot(rs.robot(f.Name)); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (rs RobotSpec) robot(faction string) *Robot {
	name := rs.Name
	if name == "" {
		name = rs.ID
	}
	r := &Robot{
		ID:          rs.ID,
		LongName:    name,
		Faction:     faction,
		Class:       rs.Class,
		Hitpoints:   rs.Hitpoints,
		ImageWidth:  rs.ImageWidth,
		ImageHeight: rs.ImageHeight,
		JumpChance:  rs.JumpChance,
	}
	for _, ws := range rs.Weapons {
		r.Arsenal = append(r.Arsenal, &Weapon{
			InternalName: ws.ID,
			ShortName:    ws.Short,
			LongName:     ws.Name,
			Ammo:         ws.Ammo,
			AmmoPerRound: ws.AmmoPerRound,
			MinDamage:    ws.Damage[0],
			MaxDamage:    ws.Damage[1],
		})
	}
	return r
}
