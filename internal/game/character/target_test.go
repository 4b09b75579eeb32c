package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/character"
)

func dummy(name string, health, armor int) *character.Character {
	return &character.Character{Name: name, Health: health, MaxHealth: health, Armor: armor}
}

func TestSelectTarget_LowestHealthPlusArmor(t *testing.T) {
	a := dummy("a", 30, 5)
	b := dummy("b", 20, 10)
	c := dummy("c", 10, 30)
	got, ok := character.SelectTarget([]*character.Character{a, b, c})
	require.True(t, ok)
	assert.Equal(t, "b", got.Name)
}

func TestSelectTarget_TieGoesToFirst(t *testing.T) {
	a := dummy("a", 20, 5)
	b := dummy("b", 15, 10)
	got, ok := character.SelectTarget([]*character.Character{a, b})
	require.True(t, ok)
	assert.Equal(t, "a", got.Name)
}

func TestSelectTarget_SkipsDead(t *testing.T) {
	dead := dummy("dead", 0, 0)
	live := dummy("live", 100, 100)
	got, ok := character.SelectTarget([]*character.Character{dead, live})
	require.True(t, ok)
	assert.Equal(t, "live", got.Name)
}

func TestSelectTarget_NoneAlive(t *testing.T) {
	_, ok := character.SelectTarget([]*character.Character{dummy("x", 0, 3)})
	assert.False(t, ok)
	_, ok = character.SelectTarget(nil)
	assert.False(t, ok)
}

func TestAnyAlive(t *testing.T) {
	assert.False(t, character.AnyAlive(nil))
	assert.False(t, character.AnyAlive([]*character.Character{dummy("x", 0, 0)}))
	assert.True(t, character.AnyAlive([]*character.Character{dummy("x", 0, 0), dummy("y", 1, 0)}))
}

func TestAnyAlive_NilEntriesSkipped(t *testing.T) {
	assert.False(t, character.AnyAlive([]*character.Character{nil, dummy("x", 0, 0), nil}))
	assert.True(t, character.AnyAlive([]*character.Character{nil, dummy("y", 1, 0)}))
}

func TestSelectTarget_Property_MinimalLivingFirstMatch(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(rt, "n")
		cs := make([]*character.Character, n)
		for i := range cs {
			cs[i] = dummy("c", rapid.IntRange(0, 50).Draw(rt, "health"), rapid.IntRange(0, 20).Draw(rt, "armor"))
		}

		got, ok := character.SelectTarget(cs)

		wantIdx := -1
		for i, c := range cs {
			if c.Health <= 0 {
				continue
			}
			if wantIdx < 0 || c.Health+c.Armor < cs[wantIdx].Health+cs[wantIdx].Armor {
				wantIdx = i
			}
		}
		if wantIdx < 0 {
			assert.False(rt, ok)
			return
		}
		require.True(rt, ok)
		assert.Same(rt, cs[wantIdx], got)
	})
}
