package character_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
)

func attrs(str, dex, vit, intl int) character.Attributes {
	return character.Attributes{Strength: str, Dexterity: dex, Vitality: vit, Intelligence: intl}
}

func mustNew(t *testing.T, class character.Class, name string, a character.Attributes) *character.Character {
	t.Helper()
	c, err := character.New(class, name, a, weapon.DefaultCatalog())
	require.NoError(t, err)
	return c
}

func TestNew_MageDerivedStats(t *testing.T) {
	c := mustNew(t, character.Mage, "Gandalf The Grey", attrs(5, 5, 5, 20))
	assert.Equal(t, "Gandalf The Grey", c.Name)
	assert.Equal(t, 25, c.Attributes.Intelligence)
	assert.Equal(t, 125, c.MaxMana)
	assert.Equal(t, 125, c.Mana)
	assert.Equal(t, 20, c.MaxHealth)
	assert.Equal(t, 2, c.Armor)
	assert.Equal(t, 17, c.MagicArmor)
	assert.Equal(t, weapon.KindStaff, c.Weapon.Kind)
}

func TestNew_KnightDerivedStats(t *testing.T) {
	c := mustNew(t, character.Knight, "Arthur", attrs(10, 10, 10, 10))
	assert.Equal(t, 15, c.Attributes.Strength)
	assert.Equal(t, 60, c.MaxHealth)
	assert.Equal(t, 60, c.Health)
	assert.Equal(t, 40, c.MaxMana)
	assert.Equal(t, 10, c.Armor)
	assert.Equal(t, 5, c.MagicArmor)
	assert.Equal(t, weapon.KindSword, c.Weapon.Kind)
}

func TestNew_ThiefDerivedStats(t *testing.T) {
	c := mustNew(t, character.Thief, "Bilbo", attrs(10, 10, 10, 10))
	assert.Equal(t, 15, c.Attributes.Dexterity)
	assert.Equal(t, 50, c.MaxHealth)
	assert.Equal(t, 7, c.Armor)
	assert.Equal(t, weapon.KindDagger, c.Weapon.Kind)
}

func TestNew_RejectsBlankName(t *testing.T) {
	_, err := character.New(character.Knight, "   ", attrs(1, 1, 1, 1), weapon.DefaultCatalog())
	assert.True(t, errors.Is(err, character.ErrBlankName))
}

func TestNew_RejectsNegativeStat(t *testing.T) {
	_, err := character.New(character.Thief, "Bilbo", attrs(1, -1, 1, 1), weapon.DefaultCatalog())
	assert.True(t, errors.Is(err, character.ErrNegativeStat))
}

func TestNew_RejectsUnknownClass(t *testing.T) {
	_, err := character.New(character.Class(42), "X", attrs(1, 1, 1, 1), weapon.DefaultCatalog())
	assert.True(t, errors.Is(err, character.ErrUnknownClass))
}

func TestNew_WeaponsAreNotShared(t *testing.T) {
	a := mustNew(t, character.Knight, "A", attrs(1, 1, 1, 1))
	b := mustNew(t, character.Knight, "B", attrs(1, 1, 1, 1))
	a.Weapon.BaseDamage = 100
	assert.Equal(t, 10, b.Weapon.BaseDamage)
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		in   string
		want character.Class
	}{
		{"knight", character.Knight},
		{"KNIGHT", character.Knight},
		{"Thief", character.Thief},
		{"mAgE", character.Mage},
	}
	for _, tc := range tests {
		got, err := character.ParseClass(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
	_, err := character.ParseClass("paladin")
	assert.ErrorIs(t, err, character.ErrUnknownClass)
}

func TestNew_Property_DerivedStatsFollowFormulas(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		class := rapid.SampledFrom([]character.Class{character.Knight, character.Thief, character.Mage}).Draw(rt, "class")
		a := attrs(
			rapid.IntRange(0, 100).Draw(rt, "str"),
			rapid.IntRange(0, 100).Draw(rt, "dex"),
			rapid.IntRange(0, 100).Draw(rt, "vit"),
			rapid.IntRange(0, 100).Draw(rt, "int"),
		)
		c, err := character.New(class, "X", a, weapon.DefaultCatalog())
		if err != nil {
			rt.Fatalf("New: %v", err)
		}
		assert.GreaterOrEqual(rt, c.MaxHealth, c.Attributes.Vitality*4)
		assert.GreaterOrEqual(rt, c.MaxMana, c.Attributes.Intelligence*4)
		assert.GreaterOrEqual(rt, c.Armor, c.Attributes.Dexterity/2)
		assert.GreaterOrEqual(rt, c.MagicArmor, c.Attributes.Intelligence/2)
		assert.Equal(rt, c.MaxHealth, c.Health)
		assert.Equal(rt, c.MaxMana, c.Mana)
	})
}
