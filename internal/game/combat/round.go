package combat

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/character"
)

// ResolveRound runs one round: every living hero in roster order attacks
// while any enemy is alive, then every living enemy in roster order attacks
// while any hero is alive.
//
// Precondition: hooks must be non-nil.
// Postcondition: Returns the round's events in resolution order; damage is
// applied in place on the characters.
func ResolveRound(round int, heroes, enemies []*character.Character, hooks Hooks) []Event {
	var events []Event
	events = resolveSide(events, round, SideHeroes, heroes, enemies, hooks)
	events = resolveSide(events, round, SideEnemies, enemies, heroes, hooks)
	return events
}

func resolveSide(events []Event, round int, side Side, attackers, defenders []*character.Character, hooks Hooks) []Event {
	for _, actor := range attackers {
		if actor == nil || !actor.Alive() {
			continue
		}
		r, ok := actor.Attack(defenders)
		if !ok {
			// No living defender left; nobody else on this side can attack either.
			break
		}
		ev := Event{Round: round, Side: side, Attack: r, Narrative: []string{Narrate(r)}}
		if line := hooks.OnAttack(r); line != "" {
			ev.Narrative = append(ev.Narrative, line)
		}
		if r.Killed {
			ev.Narrative = append(ev.Narrative, fmt.Sprintf("%s has fallen.", r.Target))
			if line := hooks.OnDeath(r.Target); line != "" {
				ev.Narrative = append(ev.Narrative, line)
			}
		}
		events = append(events, ev)
	}
	return events
}

// Narrate returns the narrative line for one attack.
func Narrate(r character.AttackResult) string {
	verb := "strikes"
	if r.Kind == character.Spell {
		verb = "casts a spell at"
	}
	return fmt.Sprintf("%s %s %s for %d damage (%s has %d health left).",
		r.Attacker, verb, r.Target, r.Dealt, r.Target, r.TargetHealth)
}

// Summary returns the closing line for an outcome.
func Summary(o Outcome) string {
	switch o {
	case Victory:
		return "Victory! All enemies have been defeated."
	case Defeat:
		return "Defeat... All heroes have fallen."
	default:
		return "The battle ended without a victor."
	}
}
