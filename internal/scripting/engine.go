// Package scripting hosts the Lua hooks that drive enemy behaviour.
package scripting

import (
	"embed"
	"fmt"
	"io/fs"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/samdwyer/goblinrun/internal/combat"
)

//go:embed scripts/*.lua
var scriptFS embed.FS

const decideFunc = "decide_enemy_action"

// Engine wraps a single gopher-lua VM. Game loop access only.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine with the built-in scripts loaded. If
// override is not empty, that file is run afterwards and may redefine any
// hook.
func NewEngine(override string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := e.loadEmbedded(); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load built-in scripts: %w", err)
	}

	if override != "" {
		if err := vm.DoFile(override); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s: %w", override, err)
		}
		log.Info("loaded lua override", zap.String("file", override))
	}

	return e, nil
}

// NewEngineFromSource creates an engine running only the given source.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

func (e *Engine) loadEmbedded() error {
	entries, err := fs.ReadDir(scriptFS, "scripts")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := "scripts/" + entry.Name()
		src, err := scriptFS.ReadFile(path)
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Decide calls decide_enemy_action and returns the raw damage the enemy
// deals. Any scripting failure falls back to the enemy's attack stat.
func (e *Engine) Decide(enemy, player combat.Combatant) int {
	fallback := enemy.GetAttack()

	fn := e.vm.GetGlobal(decideFunc)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", decideFunc))
		return fallback
	}

	ctx := e.vm.NewTable()
	ctx.RawSetString("enemy", e.combatantTable(enemy))
	ctx.RawSetString("player", e.combatantTable(player))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, ctx); err != nil {
		e.log.Error("lua call error", zap.String("func", decideFunc), zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	switch rv := result.(type) {
	case *lua.LTable:
		dmg := rv.RawGetString("damage")
		if dmg.Type() != lua.LTNumber {
			e.log.Error("lua result missing damage", zap.String("func", decideFunc))
			return fallback
		}
		return max(0, int(lua.LVAsNumber(dmg)))
	case lua.LNumber:
		return max(0, int(rv))
	default:
		e.log.Error("lua returned unexpected type",
			zap.String("func", decideFunc),
			zap.String("type", result.Type().String()),
		)
		return fallback
	}
}

func (e *Engine) combatantTable(c combat.Combatant) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("name", lua.LString(c.GetName()))
	t.RawSetString("hp", lua.LNumber(c.GetHP()))
	t.RawSetString("max_hp", lua.LNumber(c.GetMaxHP()))
	t.RawSetString("attack", lua.LNumber(c.GetAttack()))
	t.RawSetString("defense", lua.LNumber(c.GetDefense()))
	return t
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
