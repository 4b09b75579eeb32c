// Package weapon provides the weapon catalog: the static Sword, Dagger and
// Staff records characters are armed with.
package weapon

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind identifies a weapon variant.
type Kind string

const (
	// KindSword is the Knight's weapon.
	KindSword Kind = "sword"
	// KindDagger is the Thief's weapon.
	KindDagger Kind = "dagger"
	// KindStaff is the Mage's weapon; the only kind with a spell damage bonus.
	KindStaff Kind = "staff"
)

// Weapon is an immutable weapon record.
type Weapon struct {
	Kind       Kind   `yaml:"kind"`
	Name       string `yaml:"name"`
	BaseDamage int    `yaml:"base_damage"`
	// SpellBonus is added to spell damage. Non-zero only for KindStaff.
	SpellBonus int `yaml:"spell_bonus"`
}

// Validate checks that the Weapon satisfies its invariants.
// Postcondition: returns nil iff all fields are valid.
func (w Weapon) Validate() error {
	var errs []error
	switch w.Kind {
	case KindSword, KindDagger, KindStaff:
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q", w.Kind))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if w.BaseDamage < 0 {
		errs = append(errs, errors.New("BaseDamage must be >= 0"))
	}
	if w.SpellBonus < 0 {
		errs = append(errs, errors.New("SpellBonus must be >= 0"))
	}
	if w.Kind != KindStaff && w.SpellBonus != 0 {
		errs = append(errs, errors.New("only a staff may carry a SpellBonus"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}

// Catalog maps each Kind to its record.
type Catalog struct {
	weapons map[Kind]Weapon
}

// DefaultCatalog returns the built-in weapon records.
//
// Postcondition: Returns a catalog containing all three kinds.
func DefaultCatalog() *Catalog {
	return &Catalog{weapons: map[Kind]Weapon{
		KindSword:  {Kind: KindSword, Name: "Sword", BaseDamage: 10},
		KindDagger: {Kind: KindDagger, Name: "Dagger", BaseDamage: 7},
		KindStaff:  {Kind: KindStaff, Name: "Staff", BaseDamage: 3, SpellBonus: 15},
	}}
}

// Get returns a copy of the weapon of the given kind.
//
// Postcondition: ok is false iff the catalog has no entry for kind.
func (c *Catalog) Get(kind Kind) (Weapon, bool) {
	w, ok := c.weapons[kind]
	return w, ok
}

// Len returns the number of weapons in the catalog.
func (c *Catalog) Len() int { return len(c.weapons) }

type catalogFile struct {
	Weapons []Weapon `yaml:"weapons"`
}

// LoadCatalog reads a YAML file of the form
//
//	weapons:
//	  - kind: sword
//	    name: Longsword
//	    base_damage: 12
//
// and overlays its entries on DefaultCatalog. Kinds not listed keep their
// built-in values.
//
// Precondition: path is a readable file.
// Postcondition: returns a catalog with all three kinds or the first encountered error.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadCatalog: cannot read file %q: %w", path, err)
	}
	return LoadCatalogFromBytes(data)
}

// LoadCatalogFromBytes parses catalog YAML as described in LoadCatalog.
func LoadCatalogFromBytes(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("LoadCatalog: cannot parse catalog: %w", err)
	}
	cat := DefaultCatalog()
	for _, w := range f.Weapons {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("LoadCatalog: invalid weapon %q: %w", w.Name, err)
		}
		cat.weapons[w.Kind] = w
	}
	return cat, nil
}
