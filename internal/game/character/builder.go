package character

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/weapon"
)

var (
	// ErrBlankName is returned when a character is built without a name.
	ErrBlankName = errors.New("character name must not be blank")
	// ErrNegativeStat is returned when an input attribute is below zero.
	ErrNegativeStat = errors.New("character attribute must be non-negative")
)

// profile holds the per-class bonuses applied on top of the input attributes.
type profile struct {
	weapon     weapon.Kind
	bonus      Attributes
	health     int
	mana       int
	armor      int
	magicArmor int
}

var profiles = map[Class]profile{
	Knight: {weapon: weapon.KindSword, bonus: Attributes{Strength: 5}, health: 20, armor: 5},
	Thief:  {weapon: weapon.KindDagger, bonus: Attributes{Dexterity: 5}, health: 10},
	Mage:   {weapon: weapon.KindStaff, bonus: Attributes{Intelligence: 5}, mana: 25, magicArmor: 5},
}

// applyBonus adds the class attribute bonus to the input attributes.
func applyBonus(a, bonus Attributes) Attributes {
	return Attributes{
		Strength:     a.Strength + bonus.Strength,
		Dexterity:    a.Dexterity + bonus.Dexterity,
		Vitality:     a.Vitality + bonus.Vitality,
		Intelligence: a.Intelligence + bonus.Intelligence,
	}
}

// New builds a character of the given class at full health and mana.
// The class attribute bonus is applied first; derived stats are then
// health = vitality×4, mana = intelligence×4, armor = dexterity/2 and
// magicArmor = intelligence/2, each plus the class bonus. The weapon is copied
// from catalog so no two characters share one.
//
// Precondition: catalog must be non-nil.
// Postcondition: Returns a Character with Health == MaxHealth and
// Mana == MaxMana, or a non-nil error.
func New(class Class, name string, attrs Attributes, catalog *weapon.Catalog) (*Character, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBlankName
	}
	if attrs.Strength < 0 || attrs.Dexterity < 0 || attrs.Vitality < 0 || attrs.Intelligence < 0 {
		return nil, fmt.Errorf("%s %q: %w", class, name, ErrNegativeStat)
	}
	p, ok := profiles[class]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownClass, int(class))
	}
	w, ok := catalog.Get(p.weapon)
	if !ok {
		return nil, fmt.Errorf("weapon catalog has no %s for %s %q", p.weapon, class, name)
	}

	a := applyBonus(attrs, p.bonus)
	maxHealth := a.Vitality*4 + p.health
	maxMana := a.Intelligence*4 + p.mana

	return &Character{
		Name:       name,
		Class:      class,
		Attributes: a,
		Health:     maxHealth,
		MaxHealth:  maxHealth,
		Mana:       maxMana,
		MaxMana:    maxMana,
		Armor:      a.Dexterity/2 + p.armor,
		MagicArmor: a.Intelligence/2 + p.magicArmor,
		Weapon:     w,
	}, nil
}
