// Package combat implements the turn-based battle engine: heroes and enemies
// take turns attacking the weakest living opponent until one side is wiped out.
package combat

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/skirmish/internal/game/character"
)

var (
	// ErrStalemate is returned when a full round leaves every character's
	// health and mana unchanged; the battle would otherwise repeat forever.
	ErrStalemate = errors.New("battle stalemate: a full round changed nothing")
	// ErrRoundLimit is returned when the configured round cap is reached.
	ErrRoundLimit = errors.New("battle round limit reached")
)

// Side identifies which roster a character belongs to.
type Side int

const (
	SideHeroes Side = iota
	SideEnemies
)

// String returns a human-readable side label.
func (s Side) String() string {
	if s == SideEnemies {
		return "enemies"
	}
	return "heroes"
}

// Outcome is the result of a battle from the heroes' point of view.
type Outcome int

const (
	// Undecided is reported when Run stops early with an error.
	Undecided Outcome = iota
	Victory
	Defeat
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "undecided"
	}
}

// Event records one resolved attack.
type Event struct {
	Round  int
	Side   Side
	Attack character.AttackResult
	// Narrative is the human-readable account of the attack, including any
	// lines appended by hooks.
	Narrative []string
}

// Result is the record of a finished (or aborted) battle.
type Result struct {
	ID        uuid.UUID
	Outcome   Outcome
	Rounds    int
	Heroes    int
	Enemies   int
	Events    []Event
	StartedAt time.Time
}

// Hooks observe a battle and may add narrative. They must not change state.
type Hooks interface {
	// OnAttack is called after each attack; a non-empty return is appended to the narrative.
	OnAttack(r character.AttackResult) string
	// OnDeath is called when an attack kills its target; a non-empty return is appended.
	OnDeath(name string) string
}

type noHooks struct{}

func (noHooks) OnAttack(character.AttackResult) string { return "" }
func (noHooks) OnDeath(string) string                   { return "" }
