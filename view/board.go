package view

import (
	"fmt"
	"log"
	"strconv"

	"github.com/lixenwraith/botview/game"
	"github.com/lixenwraith/botview/layout"
	"github.com/lixenwraith/botview/parameter"
	"github.com/lixenwraith/botview/surface"
)

const (
	radioOff = "( )"
	radioOn  = "(•)"
	closeBox = "×"
)

type factionPanel struct {
	name  string
	el    surface.ID
	index int // Position in the controller's faction list
	left  float64
}

type robotPanel struct {
	robot *game.Robot

	el      surface.ID
	topBar  surface.ID
	radio   surface.ID
	name    surface.ID
	hp      surface.ID
	close   surface.ID
	frame   surface.ID // Image area; hosts explosion sprites
	picture surface.ID
	weapons surface.ID
	rows    []weaponRow

	enemyChecked  bool
	weaponChecked int // Arsenal index, -1 for none
}

type weaponRow struct {
	el, name, ammo surface.ID
}

// Panel returns the robot's panel element
func (s *Session) Panel(robotID string) (surface.ID, bool) {
	rp, ok := s.robots[robotID]
	if !ok {
		return 0, false
	}
	return rp.el, true
}

// Picture returns the robot image element
func (s *Session) Picture(robotID string) (surface.ID, bool) {
	rp, ok := s.robots[robotID]
	if !ok {
		return 0, false
	}
	return rp.picture, true
}

// FactionPanel returns the faction panel element
func (s *Session) FactionPanel(name string) (surface.ID, bool) {
	fp, ok := s.factions[name]
	if !ok {
		return 0, false
	}
	return fp.el, true
}

// UpdateFactions creates panels for factions with living robots, collapses
// defeated ones and tiles the survivors across the board
func (s *Session) UpdateFactions() {
	names := s.ctrl.Factions()
	var living []*factionPanel
	for i, name := range names {
		fp := s.factions[name]
		if s.factionAlive(name) || (fp != nil && s.keepDefeated) {
			if fp == nil {
				fp = &factionPanel{name: name}
				fp.el = s.add(s.content, &surface.Element{
					Kind:   surface.KindBox,
					Name:   name,
					Title:  name,
					Border: true,
					Clip:   true,
					Layer:  parameter.LayerFaction,
				})
				s.factions[name] = fp
			}
			fp.index = i
			living = append(living, fp)
			continue
		}
		// Collapsed, not removed; dead robots keep their panels until closed
		if fp != nil {
			if el := s.tree.Get(fp.el); el != nil {
				el.Rect.W, el.Rect.H = 0, 0
			}
		}
	}

	w, h := s.tree.Size()
	slot := layout.Allocate(len(living))
	for k, fp := range living {
		p := slot.Place(k)
		x, fw := layout.Span(w, p.Left, p.Width)
		y, fh := layout.Span(h, p.Top, p.Height)
		fp.left = p.Left
		if el := s.tree.Get(fp.el); el != nil {
			el.Rect = surface.Rect{X: x, Y: y, W: fw, H: fh}
			el.SetClasses("faction", fmt.Sprintf("faction-%d", fp.index))
		}
	}
	s.statFactions.Store(int64(len(living)))
}

// AddRobot creates the robot's panel and lays out the board
// Returns false when the robot's faction has no panel, which happens for a
// dead robot of a defeated faction
func (s *Session) AddRobot(r *game.Robot) (surface.ID, bool) {
	if rp, ok := s.robots[r.ID]; ok {
		return rp.el, true
	}

	s.UpdateFactions()
	fp, ok := s.factions[r.Faction]
	if !ok {
		log.Printf("[WARN] view: cannot add %s %s, it is dead (%d hitpoints) and its faction %s is defeated",
			r.LongName, r.ID, r.Hitpoints, r.Faction)
		return 0, false
	}

	rp := &robotPanel{robot: r, weaponChecked: -1}
	rp.el = s.add(fp.el, &surface.Element{
		Kind:    surface.KindBox,
		Name:    r.ID,
		Clip:    true,
		Layer:   parameter.LayerRobot,
		Classes: []string{"robot"},
		Hidden:  true,
		OnClick: func() { s.ClickRobot(r) },
	})
	rp.topBar = s.add(rp.el, &surface.Element{Kind: surface.KindBox, Name: "top-bar", Layer: parameter.LayerTopBar})
	rp.radio = s.add(rp.topBar, &surface.Element{Kind: surface.KindText, Name: "select", Layer: parameter.LayerTopBar, Text: []string{radioOff}})
	rp.name = s.add(rp.topBar, &surface.Element{Kind: surface.KindText, Name: "name", Layer: parameter.LayerTopBar, Text: []string{r.LongName}, Classes: []string{"title"}})
	rp.hp = s.add(rp.topBar, &surface.Element{Kind: surface.KindText, Name: "hp", Layer: parameter.LayerTopBar, Tooltip: "Hitpoints"})
	rp.close = s.add(rp.topBar, &surface.Element{
		Kind:    surface.KindText,
		Name:    "close",
		Layer:   parameter.LayerTopBar,
		Text:    []string{closeBox},
		Tooltip: "Close",
		OnClick: func() { s.CloseRobot(r) },
	})
	rp.frame = s.add(rp.el, &surface.Element{Kind: surface.KindBox, Name: "main-image", Layer: parameter.LayerImage})
	rp.picture = s.add(rp.frame, &surface.Element{
		Kind:    surface.KindImage,
		Name:    "picture",
		Layer:   parameter.LayerImage,
		Glyph:   classGlyph(r.Class),
		Tooltip: r.LongName,
	})
	rp.weapons = s.add(rp.el, &surface.Element{Kind: surface.KindBox, Name: "weapons", Layer: parameter.LayerWeapons})
	s.robots[r.ID] = rp
	s.statRobots.Store(int64(len(s.robots)))

	s.UpdateRobots()

	if el := s.tree.Get(rp.el); el != nil {
		el.Hidden = false
	}
	return rp.el, true
}

// UpdateRobots refreshes every panel from the point of view of the current robot
func (s *Session) UpdateRobots() {
	s.UpdateFactions()

	active := s.ctrl.CurrentRobot()
	enemy := s.ctrl.CurrentEnemy()

	for _, fp := range s.factions {
		el := s.tree.Get(fp.el)
		if el == nil || el.Rect.W == 0 {
			continue
		}
		if fp.left < parameter.FlipThreshold {
			el.AddClass("flipped")
		}
		if active != nil && active.Faction == fp.name {
			el.AddClass("active")
		} else {
			el.AddClass("inactive")
		}
		if fp.name == s.winner {
			el.AddClass("success")
		}
	}

	offsets := make(map[string]int)
	for _, r := range s.ctrl.Robots() {
		offset := offsets[r.Faction]
		offsets[r.Faction]++

		rp, ok := s.robots[r.ID]
		if !ok {
			continue
		}
		fp := s.factions[r.Faction]
		if fp == nil {
			continue
		}
		fel := s.tree.Get(fp.el)
		pel := s.tree.Get(rp.el)
		if fel == nil || pel == nil {
			continue
		}

		// Dead robots keep their cell so their wreckage stays in place
		slot := layout.Allocate(len(s.ctrl.FactionRobots(r.Faction)))
		p := slot.PlaceFloored(offset)
		innerW, innerH := max(0, fel.Rect.W-2), max(0, fel.Rect.H-2)
		x, w := layout.Span(innerW, p.Left, p.Width)
		y, h := layout.Span(innerH, p.Top, p.Height)
		pel.Rect = surface.Rect{X: 1 + x, Y: 1 + y, W: w, H: h}

		s.placeImage(rp, slot, innerW, innerH)
		s.placeTopBar(rp, active)

		var classes []string
		switch {
		case active != nil && r.ID == active.ID:
			classes = []string{"robot", "active"}
		case active != nil && r.Faction == active.Faction:
			classes = []string{"robot", "inactive"}
		case enemy != nil && r.ID == enemy.ID:
			classes = []string{"robot", "targeted"}
		default:
			classes = []string{"robot"}
		}
		if !r.Alive() && (active == nil || r.ID != active.ID) {
			classes = append(classes, "dead")
		}
		pel.SetClasses(classes...)
		// The panel draws nothing itself; its state shows through the name
		if el := s.tree.Get(rp.name); el != nil {
			el.SetClasses(append([]string{"title"}, classes[1:]...)...)
		}
		if el := s.tree.Get(rp.picture); el != nil {
			el.SetClass("dead", !r.Alive())
		}

		if active == nil || r.ID != active.ID {
			rp.weaponChecked = -1
		}
		s.placeWeapons(rp, active)
	}
}

// placeImage fits the robot picture into the area below the top bar
func (s *Session) placeImage(rp *robotPanel, slot layout.Slot, containerW, containerH int) {
	pel := s.tree.Get(rp.el)
	frame := s.tree.Get(rp.frame)
	pic := s.tree.Get(rp.picture)
	if pel == nil || frame == nil || pic == nil {
		return
	}
	fit := layout.FitImage(slot, containerW, containerH, pel.Rect.W, rp.robot.ImageWidth, rp.robot.ImageHeight)
	frame.Rect = surface.Rect{
		X: (pel.Rect.W - fit.FrameWidth) / 2,
		Y: parameter.TopBarHeight,
		W: fit.FrameWidth,
		H: fit.MainHeight,
	}
	frame.Clip = fit.Clipped
	pic.Rect = surface.Rect{
		X: (fit.FrameWidth - fit.Width) / 2,
		Y: fit.PaddingTop,
		W: fit.Width,
		H: fit.Height,
	}
}

func (s *Session) placeTopBar(rp *robotPanel, active *game.Robot) {
	pel := s.tree.Get(rp.el)
	if pel == nil {
		return
	}
	w := pel.Rect.W
	r := rp.robot
	hpText := strconv.Itoa(r.Hitpoints)
	hpW := len(hpText)

	if bar := s.tree.Get(rp.topBar); bar != nil {
		bar.Rect = surface.Rect{W: w, H: parameter.TopBarHeight}
	}
	if el := s.tree.Get(rp.radio); el != nil {
		el.Rect = surface.Rect{W: 3, H: 1}
		el.Text = []string{radio(rp.enemyChecked)}
	}
	if el := s.tree.Get(rp.name); el != nil {
		el.Rect = surface.Rect{X: 4, W: max(0, w-4-hpW-3), H: 1}
	}
	if el := s.tree.Get(rp.hp); el != nil {
		el.Rect = surface.Rect{X: max(0, w-2-hpW), W: hpW, H: 1}
		el.Text = []string{hpText}
		// Only the acting side sees its health coloured
		el.SetClasses("hp")
		if active != nil && r.Faction == active.Faction {
			el.AddClass(hitpointClass(r.HitpointRatio()))
		}
	}
	if el := s.tree.Get(rp.close); el != nil {
		el.Rect = surface.Rect{X: max(0, w-1), W: 1, H: 1}
	}
}

// placeWeapons grows or shrinks the weapon rows to the arsenal and refreshes them
func (s *Session) placeWeapons(rp *robotPanel, active *game.Robot) {
	pel := s.tree.Get(rp.el)
	box := s.tree.Get(rp.weapons)
	if pel == nil || box == nil {
		return
	}
	r := rp.robot
	n := len(r.Arsenal)
	w := pel.Rect.W
	box.Rect = surface.Rect{Y: max(parameter.TopBarHeight, pel.Rect.H-n), W: w, H: n}

	for len(rp.rows) < n {
		i := len(rp.rows)
		row := weaponRow{}
		row.el = s.add(rp.weapons, &surface.Element{
			Kind:    surface.KindBox,
			Name:    "weapon",
			Layer:   parameter.LayerWeapons,
			OnClick: func() { s.ClickWeapon(r, i) },
		})
		row.name = s.add(row.el, &surface.Element{Kind: surface.KindText, Name: "name", Layer: parameter.LayerWeapons})
		row.ammo = s.add(row.el, &surface.Element{Kind: surface.KindText, Name: "ammo", Layer: parameter.LayerWeapons})
		rp.rows = append(rp.rows, row)
	}
	for len(rp.rows) > n {
		last := rp.rows[len(rp.rows)-1]
		s.tree.Remove(last.el)
		rp.rows = rp.rows[:len(rp.rows)-1]
	}

	isActive := active != nil && r.ID == active.ID
	for i, row := range rp.rows {
		wpn := r.Arsenal[i]
		ammo, ammoTip := s.ammoText(wpn)
		ammoW := len([]rune(ammo))

		if el := s.tree.Get(row.el); el != nil {
			el.Rect = surface.Rect{Y: i, W: w, H: 1}
			checked := isActive && rp.weaponChecked == i
			el.Text = []string{radio(checked)}
			el.SetClasses("weapon")
			el.SetClass("selected", checked)
			el.SetClass("empty", !wpn.Usable())
		}
		if el := s.tree.Get(row.name); el != nil {
			el.Rect = surface.Rect{X: 4, W: max(0, w-4-ammoW-1), H: 1}
			el.Text = []string{wpn.ShortName}
			el.Tooltip = s.weaponTooltip(wpn)
		}
		if el := s.tree.Get(row.ammo); el != nil {
			el.Rect = surface.Rect{X: max(0, w-ammoW), W: ammoW, H: 1}
			el.Text = []string{ammo}
			el.Tooltip = ammoTip
			el.SetClasses("ammo")
			el.SetClass("insufficient", !wpn.Usable())
		}
	}
}

func (s *Session) factionAlive(name string) bool {
	for _, r := range s.ctrl.FactionRobots(name) {
		if r.Alive() {
			return true
		}
	}
	return false
}

func hitpointClass(ratio float64) string {
	switch {
	case ratio < parameter.HitpointsLow:
		return "hp-low"
	case ratio < parameter.HitpointsMedium:
		return "hp-medium"
	default:
		return "hp-high"
	}
}

func radio(on bool) string {
	if on {
		return radioOn
	}
	return radioOff
}

func classGlyph(c game.Class) rune {
	switch c {
	case game.ClassLight:
		return '░'
	case game.ClassMedium:
		return '▒'
	default:
		return '▓'
	}
}
