package script

import (
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyecho/internal/input/key"
	"github.com/dshills/keyecho/internal/input/record"
)

// defaultHoldMS is the press duration tap uses when the script omits one.
const defaultHoldMS = 50

// builder accumulates events as the script's sequence functions run.
// The cursor is the script's current position on the timeline; it only
// moves forward, so the resulting event list is ordered by offset.
type builder struct {
	events []key.Event
	cursor time.Duration
}

// Run executes a Lua script and returns the recording it describes.
// The recording is validated before it is returned.
func Run(source string) (*record.Recording, error) {
	b := &builder{}

	L := lua.NewState()
	defer L.Close()
	b.register(L)

	if err := L.DoString(source); err != nil {
		return nil, fmt.Errorf("running script: %w", err)
	}

	rec := record.NewRecording(b.events)
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("script produced invalid sequence: %w", err)
	}
	return rec, nil
}

// RunFile executes the Lua script at path.
func RunFile(path string) (*record.Recording, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return Run(string(source))
}

// register installs the sequence API into the Lua state.
func (b *builder) register(L *lua.LState) {
	L.SetGlobal("wait", L.NewFunction(b.luaWait))
	L.SetGlobal("down", L.NewFunction(b.luaDown))
	L.SetGlobal("up", L.NewFunction(b.luaUp))
	L.SetGlobal("tap", L.NewFunction(b.luaTap))
}

// luaWait implements wait(ms).
func (b *builder) luaWait(L *lua.LState) int {
	ms := L.CheckInt(1)
	if ms < 0 {
		L.ArgError(1, "wait duration must not be negative")
	}
	b.cursor += time.Duration(ms) * time.Millisecond
	return 0
}

// luaDown implements down(key).
func (b *builder) luaDown(L *lua.LState) int {
	b.append(L, key.ActionDown, b.cursor)
	return 0
}

// luaUp implements up(key).
func (b *builder) luaUp(L *lua.LState) int {
	b.append(L, key.ActionUp, b.cursor)
	return 0
}

// luaTap implements tap(key, hold_ms). The release lands hold_ms after
// the press and the cursor advances past it.
func (b *builder) luaTap(L *lua.LState) int {
	hold := L.OptInt(2, defaultHoldMS)
	if hold < 0 {
		L.ArgError(2, "hold duration must not be negative")
	}

	b.append(L, key.ActionDown, b.cursor)
	b.cursor += time.Duration(hold) * time.Millisecond
	b.append(L, key.ActionUp, b.cursor)
	return 0
}

// append normalizes the first Lua argument as a key name and records a
// transition at the given offset.
func (b *builder) append(L *lua.LState, action key.Action, at time.Duration) {
	name := key.Normalize(L.CheckString(1))
	if name == "" {
		L.ArgError(1, "key name must not be empty")
	}
	b.events = append(b.events, key.NewEvent(name, action, at))
}
