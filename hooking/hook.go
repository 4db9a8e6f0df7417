// Package hooking lets observers attach to simulation objects without
// the objects knowing who is listening. The controller invokes hooks
// at command-issue and cycle-boundary positions; tracers and monitors
// subscribe to them.
package hooking

// HookPos names a position in an object's lifecycle where hooks fire.
type HookPos struct {
	Name string
}

// HookCtx describes one hook invocation.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable is an object that accepts hooks.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
}

// A Hook is a piece of program invoked by a hookable object.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase provides the hook bookkeeping for types that embed it.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of registered hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all registered hooks.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook registers a hook. Registering the same hook twice is a
// programming error.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, existing := range h.hookList {
		if existing == hook {
			panic("duplicated hook")
		}
	}

	h.hookList = append(h.hookList, hook)
}

// InvokeHook triggers all registered hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
