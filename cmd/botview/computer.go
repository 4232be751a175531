package main

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/botview/dialog"
	"github.com/lixenwraith/botview/game"
	"github.com/lixenwraith/botview/view"
)

// computer plays non-human factions: it marks its choice, fires after a
// pause and dismisses its own report so computer-only matches run unattended
type computer struct {
	delay time.Duration
	rng   *rand.Rand
}

func newComputer(delay time.Duration, rng *rand.Rand) *computer {
	return &computer{delay: delay, rng: rng}
}

// Play takes the current robot's turn for faction
func (c *computer) Play(s *view.Session, faction string) {
	ctrl := s.Controller()
	cur := ctrl.CurrentRobot()
	if cur == nil || cur.Faction != faction {
		log.Printf("[WARN] computer: asked to play %s out of turn", faction)
		return
	}

	weapon := chooseWeapon(cur)
	if weapon == nil {
		c.dismissLater(s, s.ReportPass(cur))
		return
	}
	enemy := chooseTarget(ctrl, cur, c.rng)
	if enemy == nil {
		log.Printf("[WARN] computer: %s %s has no one to attack", cur.LongName, cur.ID)
		return
	}

	s.Timers().After(c.delay, func() {
		if err := ctrl.SetCurrentWeapon(weapon.InternalName); err != nil {
			log.Printf("[WARN] computer: %v", err)
			return
		}
		if err := ctrl.SetCurrentEnemy(enemy.ID); err != nil {
			log.Printf("[WARN] computer: %v", err)
			return
		}
		s.SelectCurrentRobotWeapon(cur, weapon.InternalName, true)
		s.SelectEnemyRobot(enemy, true)
		s.UpdateRobots()

		s.Timers().After(c.delay, func() {
			res, err := ctrl.AttackCurrentEnemy()
			if err != nil {
				log.Printf("[ERROR] computer: %s %s cannot attack: %v", cur.LongName, cur.ID, err)
				return
			}
			c.dismissLater(s, s.ReportAttack(res))
		})
	})
}

// dismissLater advances the turn if nobody has clicked the report in time
func (c *computer) dismissLater(s *view.Session, d *dialog.Dialog) {
	id := d.ID()
	s.Timers().After(2*c.delay, func() {
		if s.Dialogs().Get(id) != nil {
			s.AdvanceTurnHandler(id)()
		}
	})
}

// chooseWeapon picks the usable weapon with the best average damage
func chooseWeapon(r *game.Robot) *game.Weapon {
	var best *game.Weapon
	bestAvg := -1
	for _, w := range r.Arsenal {
		if !w.Usable() {
			continue
		}
		lo, hi := w.DamageRange()
		if avg := lo + hi; avg > bestAvg {
			best, bestAvg = w, avg
		}
	}
	return best
}

// chooseTarget picks the weakest living enemy, breaking ties at random
func chooseTarget(ctrl game.Controller, r *game.Robot, rng *rand.Rand) *game.Robot {
	var weakest []*game.Robot
	for _, e := range ctrl.Robots() {
		if e.Faction == r.Faction || !e.Alive() {
			continue
		}
		switch {
		case len(weakest) == 0 || e.Hitpoints < weakest[0].Hitpoints:
			weakest = []*game.Robot{e}
		case e.Hitpoints == weakest[0].Hitpoints:
			weakest = append(weakest, e)
		}
	}
	if len(weakest) == 0 {
		return nil
	}
	return weakest[rng.IntN(len(weakest))]
}
