package view

import (
	"log"

	"github.com/lixenwraith/botview/game"
)

// ClickRobot enemy-selects r for the current robot and moves the turn along
// Clicks on allies, dead robots and during computer turns are ignored
func (s *Session) ClickRobot(r *game.Robot) {
	cur := s.ctrl.CurrentRobot()
	if cur == nil || r.Faction == cur.Faction || !r.Alive() {
		return
	}
	if s.ctrl.FactionType(cur.Faction) != game.FactionHuman {
		return
	}
	if err := s.ctrl.SetCurrentEnemy(r.ID); err != nil {
		log.Printf("[WARN] view: cannot target %s %s: %v", r.LongName, r.ID, err)
		return
	}
	s.checkEnemy(r.ID, true)
	s.UpdateRobots()
	s.ShowNextDialogOrAdvanceTurn()
}

// ClickWeapon selects arsenal entry index of the current robot
// Rows of other robots only show their arsenal
func (s *Session) ClickWeapon(r *game.Robot, index int) {
	cur := s.ctrl.CurrentRobot()
	if cur == nil || cur.ID != r.ID {
		return
	}
	if s.ctrl.FactionType(cur.Faction) != game.FactionHuman {
		return
	}
	if index < 0 || index >= len(cur.Arsenal) {
		log.Printf("[ERROR] view: weapon index %d out of range, %s %s has %d weapons",
			index, cur.LongName, cur.ID, len(cur.Arsenal))
		return
	}
	if err := s.ctrl.SetCurrentWeapon(cur.Arsenal[index].InternalName); err != nil {
		log.Printf("[WARN] view: cannot select %s: %v", cur.Arsenal[index].InternalName, err)
		return
	}
	if rp, ok := s.robots[cur.ID]; ok {
		rp.weaponChecked = index
	}
	s.UpdateRobots()
	s.ShowNextDialogOrAdvanceTurn()
}

// CloseRobot removes r's panel; a dead robot is also dropped from the match
func (s *Session) CloseRobot(r *game.Robot) {
	rp, ok := s.robots[r.ID]
	if !ok {
		return
	}
	s.tree.Remove(rp.el)
	delete(s.robots, r.ID)
	s.statRobots.Store(int64(len(s.robots)))

	if !r.Alive() {
		s.ctrl.RemoveRobot(r)
	}
	s.UpdateRobots()
}

// SelectEnemyRobot checks or clears the selection marker of an enemy robot
// Used by computer players; the controller selection is theirs to make
func (s *Session) SelectEnemyRobot(r *game.Robot, checked bool) bool {
	if r == nil {
		log.Printf("[WARN] view: no enemy robot to select")
		return false
	}
	if _, ok := s.robots[r.ID]; !ok {
		log.Printf("[WARN] view: cannot select %s %s, its panel is gone", r.LongName, r.ID)
		return false
	}
	cur := s.ctrl.CurrentRobot()
	if cur == nil {
		log.Printf("[WARN] view: cannot select %s %s, there is no current robot", r.LongName, r.ID)
		return false
	}
	if r.Faction == cur.Faction {
		log.Printf("[WARN] view: cannot select %s %s, it is on the current robot's team (%s %s, %s)",
			r.LongName, r.ID, cur.LongName, cur.ID, cur.Faction)
		return false
	}
	s.checkEnemy(r.ID, checked)
	return true
}

// SelectCurrentRobotWeapon checks or clears the marker of one of r's usable weapons
func (s *Session) SelectCurrentRobotWeapon(r *game.Robot, weapon string, checked bool) bool {
	rp, ok := s.robots[r.ID]
	if !ok {
		log.Printf("[WARN] view: cannot select a weapon for %s %s, its panel is gone", r.LongName, r.ID)
		return false
	}
	if len(r.FindWeapons(weapon)) == 0 {
		log.Printf("[WARN] view: cannot select %q for %s %s, it has no such weapon or is out of ammunition",
			weapon, r.LongName, r.ID)
		return false
	}
	index := r.WeaponIndex(weapon)
	switch {
	case checked:
		rp.weaponChecked = index
	case rp.weaponChecked == index:
		rp.weaponChecked = -1
	}
	s.placeWeapons(rp, s.ctrl.CurrentRobot())
	return true
}

// RemoveDeadRobot removes the panel of a dead ally of the current robot
func (s *Session) RemoveDeadRobot(r *game.Robot) bool {
	cur := s.ctrl.CurrentRobot()
	if cur == nil || r.Faction != cur.Faction {
		log.Printf("[WARN] view: cannot remove %s %s, only allies of the current robot can be removed", r.LongName, r.ID)
		return false
	}
	if r.Alive() {
		log.Printf("[WARN] view: cannot remove %s %s, it still has %d hitpoints", r.LongName, r.ID, r.Hitpoints)
		return false
	}
	rp, ok := s.robots[r.ID]
	if !ok {
		log.Printf("[WARN] view: cannot remove %s %s, its panel is already gone", r.LongName, r.ID)
		return false
	}
	s.tree.Remove(rp.el)
	delete(s.robots, r.ID)
	s.statRobots.Store(int64(len(s.robots)))
	return true
}

// checkEnemy sets the marker on one robot; enemy markers are exclusive
func (s *Session) checkEnemy(id string, checked bool) {
	for rid, rp := range s.robots {
		switch {
		case rid == id:
			rp.enemyChecked = checked
		case checked:
			rp.enemyChecked = false
		default:
			continue
		}
		if el := s.tree.Get(rp.radio); el != nil {
			el.Text = []string{radio(rp.enemyChecked)}
		}
	}
}

// EnemyChecked reports whether the robot's selection marker is set
func (s *Session) EnemyChecked(id string) bool {
	rp, ok := s.robots[id]
	return ok && rp.enemyChecked
}

// WeaponChecked returns the checked arsenal index of a robot, -1 for none
func (s *Session) WeaponChecked(id string) int {
	rp, ok := s.robots[id]
	if !ok {
		return -1
	}
	return rp.weaponChecked
}
