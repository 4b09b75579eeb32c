package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/character"
)

const (
	// HookAttack is called as on_attack(attacker, target, damage, health).
	HookAttack = "on_attack"
	// HookDeath is called as on_death(name).
	HookDeath = "on_death"
)

// Manager owns one sandboxed LState holding every loaded battle script and
// dispatches hooks to it. It implements combat.Hooks.
//
// All methods are safe for concurrent use; calls are serialized.
type Manager struct {
	mu     sync.Mutex
	vm     *lua.LState
	limit  int
	logger *zap.Logger
}

// NewManager creates a Manager with an empty VM.
//
// Precondition: logger must be non-nil; instLimit >= 0 (0 uses DefaultInstructionLimit).
// Postcondition: Returns a non-nil Manager; call Close when done.
func NewManager(logger *zap.Logger, instLimit int) *Manager {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	m := &Manager{
		vm:     NewSandboxedState(),
		limit:  instLimit,
		logger: logger,
	}
	m.RegisterModules(m.vm)
	return m
}

// LoadDir executes every *.lua file in dir in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the number of files loaded, or an error on the first
// read or Lua failure.
func (m *Manager) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range luaFiles {
		if err := limited(m.vm, m.limit, func() error { return m.vm.DoFile(path) }); err != nil {
			return 0, fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	return len(luaFiles), nil
}

// LoadString executes src as a script chunk.
//
// Postcondition: Returns an error on Lua compile or runtime failure.
func (m *Manager) LoadString(src string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := limited(m.vm, m.limit, func() error { return m.vm.DoString(src) }); err != nil {
		return fmt.Errorf("scripting: loading chunk: %w", err)
	}
	return nil
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vm.Close()
}

// CallHook calls the named Lua global function. Returns LNil if the hook is
// not defined. Lua runtime errors, including exceeding the instruction limit,
// are logged at Warn level and never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) lua.LValue {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn := m.vm.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil
	}

	var ret lua.LValue = lua.LNil
	err := limited(m.vm, m.limit, func() error {
		if err := m.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
			return err
		}
		ret = m.vm.Get(-1)
		m.vm.Pop(1)
		return nil
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}
	return ret
}

// OnAttack calls on_attack(attacker, target, damage, health).
//
// Postcondition: Returns the hook's string result, or "" for any other result.
func (m *Manager) OnAttack(r character.AttackResult) string {
	return asLine(m.CallHook(HookAttack,
		lua.LString(r.Attacker),
		lua.LString(r.Target),
		lua.LNumber(r.Dealt),
		lua.LNumber(r.TargetHealth),
	))
}

// OnDeath calls on_death(name).
//
// Postcondition: Returns the hook's string result, or "" for any other result.
func (m *Manager) OnDeath(name string) string {
	return asLine(m.CallHook(HookDeath, lua.LString(name)))
}

func asLine(v lua.LValue) string {
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}
