package view

import (
	"fmt"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lixenwraith/botview/game"
	"github.com/lixenwraith/botview/parameter"
)

// Message keys double as fallback formats
const (
	msgRoundsRemaining = "%d round(s) remaining"
	msgUnlimitedAmmo   = "Unlimited ammunition"
	msgDamageRange     = "%s (%d-%d damage)"
	msgDamageFixed     = "%s (%d damage)"
	msgTurn            = "It's your turn."
	msgPickWeapon      = "Select a weapon to fire."
	msgPickEnemy       = "Select an enemy to attack."
	msgPass            = "With no ammunition remaining, the %s passes."
	msgDamageReport    = "Damage Report"
	msgVictory         = "Victory"
	msgDefeat          = "Defeat"
	msgWinner          = "%s %s defeated %s."
	msgReturn          = "Click anywhere to leave the battlefield."
)

func init() {
	en := language.English
	message.Set(en, msgRoundsRemaining, plural.Selectf(1, "%d",
		"one", "%d round remaining",
		"other", "%d rounds remaining"))
	message.SetString(en, msgUnlimitedAmmo, "Unlimited ammunition")
	message.SetString(en, msgDamageRange, "%s (%d-%d damage)")
	message.SetString(en, msgDamageFixed, "%s (%d damage)")
}

// weaponTooltip describes a weapon and its damage bounds
func (s *Session) weaponTooltip(w *game.Weapon) string {
	lo, hi := w.DamageRange()
	if lo == hi {
		return s.printer.Sprintf(msgDamageFixed, w.LongName, lo)
	}
	return s.printer.Sprintf(msgDamageRange, w.LongName, lo, hi)
}

// ammoText returns the ammo cell text and tooltip
func (s *Session) ammoText(w *game.Weapon) (text, tooltip string) {
	if w.Unlimited() {
		return parameter.UnlimitedAmmo, s.printer.Sprintf(msgUnlimitedAmmo)
	}
	return fmt.Sprint(w.Ammo), s.printer.Sprintf(msgRoundsRemaining, w.Rounds())
}

// shortFactionName returns the in-story name used in running text
func shortFactionName(name string) string {
	if name == parameter.EdictLongName {
		return parameter.EdictShortName
	}
	return name
}

// joinNames lists names as "A", "A and B" or "A, B, and C"
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
}

func backdropClass(n int) string {
	return fmt.Sprintf("backdrop-%d", n)
}
