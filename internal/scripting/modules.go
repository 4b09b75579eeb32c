package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/character"
)

// RegisterModules registers the engine Lua table into L:
//
//	engine.spell_cost   the mana a Mage spell costs
//	engine.log(msg)     writes msg to the battle log at info level
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "spell_cost", lua.LNumber(character.SpellCost))
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Info("script", zap.String("message", L.CheckString(1)))
		return 0
	}))
	L.SetGlobal("engine", engine)
}
