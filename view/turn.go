package view

import (
	"log"
	"time"

	"github.com/lixenwraith/botview/dialog"
	"github.com/lixenwraith/botview/effect"
	"github.com/lixenwraith/botview/game"
	"github.com/lixenwraith/botview/parameter"
)

// ShowNextDialogOrAdvanceTurn tells a human player what to do next, or
// attacks once both a weapon and an enemy are selected
func (s *Session) ShowNextDialogOrAdvanceTurn() *dialog.Dialog {
	if !s.ctrl.InProgress() {
		return nil
	}
	cur := s.ctrl.CurrentRobot()
	if cur == nil {
		return nil
	}
	switch s.ctrl.FactionType(cur.Faction) {
	case game.FactionNone:
		log.Printf("[ERROR] view: no faction named %q, but the current robot belongs to it", cur.Faction)
		return nil
	case game.FactionHuman:
	default:
		log.Printf("[WARN] view: asked for a human player dialog during a computer turn, ignoring")
		return nil
	}

	weapon := s.ctrl.CurrentWeapon()
	enemy := s.ctrl.CurrentEnemy()

	switch {
	case !cur.HasAmmo():
		log.Printf("the human-controlled %s %s is out of ammunition", cur.LongName, cur.ID)
		return s.ReportPass(cur)

	case weapon == nil && enemy == nil:
		// Nothing chosen yet; the turn has just begun
		d := s.dialogs.Open(dialog.KindTurn, dialog.Placement{
			Left:   parameter.TurnDialogLeft,
			Top:    parameter.TurnDialogTop,
			Width:  parameter.TurnDialogWidth,
			Height: parameter.TurnDialogHeight,
		}, parameter.TurnDialogTimeout, true)
		d.AddClass("small")
		d.SetTitle(cur.Faction)
		d.SetText(msgTurn)
		d.Show()
		s.emit(effect.CueChime)
		return d

	case weapon == nil:
		return s.hint(msgPickWeapon)

	case enemy == nil:
		return s.hint(msgPickEnemy)
	}

	res, err := s.ctrl.AttackCurrentEnemy()
	if err != nil {
		log.Printf("[ERROR] view: %s %s cannot attack: %v", cur.LongName, cur.ID, err)
		return nil
	}
	return s.ReportAttack(res)
}

// ReportAttack shows the damage report of a resolved attack, plays the
// defender's destruction or jump, and advances the turn when dismissed
func (s *Session) ReportAttack(res game.AttackResult) *dialog.Dialog {
	d := s.dialogs.Open(dialog.KindGeneric, dialog.Placement{
		Left:  parameter.ReportDialogLeft,
		Top:   parameter.ReportDialogTop,
		Width: parameter.ReportDialogWidth,
	}, 0, true)
	d.SetTitle(msgDamageReport)
	d.SetText(res.Report...)
	d.Show()

	// Effects need the panels at their final size; a faction this attack
	// defeated stays on the board until the turn moves on
	s.keepDefeated = true
	s.UpdateRobots()
	s.keepDefeated = false

	if def := res.Defender; def != nil {
		switch {
		case !def.Alive():
			s.ExplodeRobot(def)
		case res.Jumped:
			flight := parameter.JumpDuration
			if res.PartialJump() {
				// A misfire: the jump is cut short
				flight /= parameter.JumpPartialDivisor
			}
			s.Explode(def, effect.KindJump, parameter.JumpSmokeDuration, flight)
		}
	}

	d.SetOnClick(nil)
	d.SetOverlayOnClick(s.AdvanceTurnHandler(d.ID()))
	return d
}

// ReportPass shows that r skips its turn for lack of ammunition
func (s *Session) ReportPass(r *game.Robot) *dialog.Dialog {
	d := s.dialogs.Open(dialog.KindGeneric, dialog.Placement{
		Left:  parameter.PassDialogLeft,
		Top:   parameter.PassDialogTop,
		Width: parameter.PassDialogWidth,
	}, 0, true)
	d.SetTitle(msgDamageReport)
	d.SetText(s.printer.Sprintf(msgPass, r.LongName))
	d.Show()

	d.SetOnClick(nil)
	d.SetOverlayOnClick(s.AdvanceTurnHandler(d.ID()))
	return d
}

func (s *Session) hint(text string) *dialog.Dialog {
	d := s.dialogs.Open(dialog.KindSmall, dialog.Placement{
		Left:  parameter.HintDialogLeft,
		Top:   parameter.HintDialogTop,
		Width: parameter.HintDialogWidth,
	}, parameter.HintDialogTimeout, true)
	d.AddClass("green")
	d.SetText(text)
	d.Show()
	return d
}

// AdvanceTurnHandler returns the click handler that closes dialog id and
// hands the turn to the next robot, or shows the endgame
func (s *Session) AdvanceTurnHandler(id dialog.ID) func() {
	return func() {
		// The dialog may already be gone if the handler outlived it
		s.dialogs.Close(id)

		if !s.ctrl.InProgress() {
			s.CheckForEndgame()
			return
		}

		cur := s.ctrl.CurrentRobot()
		if cur == nil {
			return
		}
		enemy := s.ctrl.CurrentEnemy()
		weapon := s.ctrl.CurrentWeapon()
		if (weapon == nil || enemy == nil) &&
			s.ctrl.FactionType(cur.Faction) == game.FactionHuman && cur.HasAmmo() {
			// A human who can still play has not played yet; a stale second click
			log.Printf("[WARN] view: turn advance requested before %s %s acted (dialog %d)", cur.LongName, cur.ID, id)
			return
		}

		if cur.HasAmmo() {
			// Clear the markers so the next turn does not read as already decided
			if weapon != nil {
				s.SelectCurrentRobotWeapon(cur, weapon.InternalName, false)
			}
			if enemy != nil {
				s.SelectEnemyRobot(enemy, false)
			}
		}

		next := s.ctrl.NextRobot()
		s.UpdateRobots()
		if next == nil {
			return
		}

		if s.ctrl.FactionType(next.Faction) == game.FactionHuman {
			s.ShowNextDialogOrAdvanceTurn()
			return
		}
		if s.ai == nil {
			log.Printf("[WARN] view: no computer player for %s", next.Faction)
			return
		}
		s.ai(s, next.Faction)
	}
}

// EndgameHandler returns the click handler of the endgame dialog: close it,
// fade the board and leave the match
func (s *Session) EndgameHandler(id dialog.ID) func() {
	return func() {
		s.dialogs.Close(id)
		s.Hide()
		if s.exit != nil {
			s.exit()
		}
	}
}

// CheckForEndgame shows the victory or defeat dialog once the game is over
func (s *Session) CheckForEndgame() *dialog.Dialog {
	if s.ctrl.InProgress() {
		return nil
	}

	winner := s.ctrl.WinningFaction()
	var losers []string
	humanPlayed := false
	for _, f := range s.ctrl.Factions() {
		if s.ctrl.FactionType(f) == game.FactionHuman {
			humanPlayed = true
		}
		if f != winner {
			losers = append(losers, shortFactionName(f))
		}
	}

	d := s.dialogs.Open(dialog.KindEndgame, dialog.Placement{
		Left:   parameter.EndDialogLeft,
		Top:    parameter.EndDialogTop,
		Width:  parameter.EndDialogWidth,
		Height: parameter.EndDialogHeight,
	}, 0, true)

	// A human winning, or a computer winning a computer-only match, is a victory
	humanWon := s.ctrl.FactionType(winner) == game.FactionHuman
	if humanWon || !humanPlayed {
		d.AddClass("green")
		d.SetTitle(msgVictory)
	} else {
		d.AddClass("red")
		d.SetTitle(msgDefeat)
	}

	verb := "have"
	if s.ctrl.IsFactionNameSingular(winner) {
		verb = "has"
	}
	d.SetText(s.printer.Sprintf(msgWinner, winner, verb, joinNames(losers)), "", msgReturn)

	s.winner = winner
	if fp, ok := s.factions[winner]; ok {
		if el := s.tree.Get(fp.el); el != nil {
			el.AddClass("success")
		}
	}

	d.SetOverlayOnClick(s.EndgameHandler(d.ID()))
	d.Show()
	return d
}

// Explode plays an explosion of kind over r's picture
func (s *Session) Explode(r *game.Robot, kind string, fire, expl time.Duration) bool {
	rp, ok := s.robots[r.ID]
	if !ok {
		log.Printf("[WARN] view: cannot explode %s %s, its panel is gone", r.LongName, r.ID)
		return false
	}
	return s.exploder.Explode(effect.Target{
		Area:    rp.frame,
		Picture: rp.picture,
		Class:   string(r.Class),
	}, kind, fire, expl)
}

// ExplodeRobot plays the final explosion for r's class
func (s *Session) ExplodeRobot(r *game.Robot) bool {
	fire, expl := DeathTimings(r.Class)
	return s.Explode(r, string(r.Class), fire, expl)
}

// DeathTimings returns the fire and explosion durations of a class's final explosion
func DeathTimings(c game.Class) (fire, expl time.Duration) {
	switch c {
	case game.ClassLight:
		return parameter.LightFireDuration, parameter.LightExplosionDuration
	case game.ClassMedium:
		return parameter.MediumFireDuration, parameter.MediumExplosionDuration
	case game.ClassHeavy, game.ClassAssault:
		return parameter.HeavyFireDuration, parameter.HeavyExplosionDuration
	default:
		return parameter.DefaultRobotFireDuration, parameter.DefaultRobotExplosion
	}
}
