// Package character defines the battle character model: the Knight, Thief
// and Mage variants, their derived stats, and how they deal and take damage.
package character

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/weapon"
)

// SpellCost is the mana a Mage spends to cast a spell.
const SpellCost = 40

// ErrUnknownClass is returned by ParseClass for names outside knight, thief, mage.
var ErrUnknownClass = errors.New("unknown character class")

// Class is the character variant tag.
type Class int

const (
	Knight Class = iota
	Thief
	Mage
)

// String returns the display name of the class.
func (c Class) String() string {
	switch c {
	case Knight:
		return "Knight"
	case Thief:
		return "Thief"
	case Mage:
		return "Mage"
	default:
		return "unknown"
	}
}

// ParseClass maps a case-insensitive class name to a Class.
//
// Postcondition: Returns an error wrapping ErrUnknownClass for any other name.
func ParseClass(name string) (Class, error) {
	switch strings.ToLower(name) {
	case "knight":
		return Knight, nil
	case "thief":
		return Thief, nil
	case "mage":
		return Mage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
}

// DamageKind distinguishes weapon damage from spell damage.
type DamageKind int

const (
	Physical DamageKind = iota
	Spell
)

// String returns a human-readable damage kind label.
func (k DamageKind) String() string {
	if k == Spell {
		return "spell"
	}
	return "physical"
}

// Attributes holds the four input attributes of a character.
type Attributes struct {
	Strength     int
	Dexterity    int
	Vitality     int
	Intelligence int
}

// Character is one participant in a battle.
//
// Health and Mana are only changed through TakeDamage and Strike; both are
// always >= 0.
type Character struct {
	Name  string
	Class Class
	// Attributes includes the class bonus.
	Attributes Attributes

	Health     int
	MaxHealth  int
	Mana       int
	MaxMana    int
	Armor      int
	MagicArmor int

	Weapon weapon.Weapon
}

// Alive reports whether the character still has health.
//
// Postcondition: Returns true iff Health > 0.
func (c *Character) Alive() bool { return c.Health > 0 }

// Strike computes the outgoing damage of one attack and pays its cost.
// Knights hit for weapon damage plus strength, Thieves for weapon damage plus
// dexterity. A Mage with at least SpellCost mana casts a spell for the staff's
// spell bonus plus intelligence and loses SpellCost mana; otherwise it falls
// back to weapon damage plus strength.
//
// Postcondition: Mana >= 0; Mana decreases by exactly SpellCost iff kind == Spell.
func (c *Character) Strike() (kind DamageKind, amount int) {
	switch c.Class {
	case Thief:
		return Physical, c.Weapon.BaseDamage + c.Attributes.Dexterity
	case Mage:
		if c.Mana >= SpellCost {
			c.Mana -= SpellCost
			return Spell, c.Weapon.SpellBonus + c.Attributes.Intelligence
		}
		return Physical, c.Weapon.BaseDamage + c.Attributes.Strength
	default:
		return Physical, c.Weapon.BaseDamage + c.Attributes.Strength
	}
}

// TakeDamage applies incoming damage of the given kind and returns the damage
// actually dealt. Physical damage is reduced by Armor and by raw Dexterity;
// spell damage by MagicArmor and by raw Intelligence.
//
// Postcondition: 0 <= returned damage; Health >= 0.
func (c *Character) TakeDamage(kind DamageKind, incoming int) int {
	var reduced int
	if kind == Spell {
		reduced = incoming - c.MagicArmor - c.Attributes.Intelligence
	} else {
		reduced = incoming - c.Armor - c.Attributes.Dexterity
	}
	if reduced < 0 {
		reduced = 0
	}
	c.Health -= reduced
	if c.Health < 0 {
		c.Health = 0
	}
	return reduced
}

// AttackResult records one resolved attack.
type AttackResult struct {
	Attacker string
	Target   string
	Kind     DamageKind
	// Incoming is the damage before the target's reductions.
	Incoming int
	// Dealt is the damage after the target's reductions, before health is clamped at zero.
	Dealt int
	// TargetHealth is the target's health after the attack.
	TargetHealth int
	Killed       bool
}

// Attack selects the weakest living opponent and strikes it.
//
// Postcondition: ok is false and nothing changes when no opponent is alive.
func (c *Character) Attack(opponents []*Character) (AttackResult, bool) {
	target, ok := SelectTarget(opponents)
	if !ok {
		return AttackResult{}, false
	}
	kind, incoming := c.Strike()
	dealt := target.TakeDamage(kind, incoming)
	return AttackResult{
		Attacker:     c.Name,
		Target:       target.Name,
		Kind:         kind,
		Incoming:     incoming,
		Dealt:        dealt,
		TargetHealth: target.Health,
		Killed:       !target.Alive(),
	}, true
}
