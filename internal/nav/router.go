// Package nav keeps track of the visible screen and the history used by Back.
//
// A Router is driven from a single goroutine; it holds no locks.
package nav

import "fmt"

// ScreenID names a registered screen.
type ScreenID string

// Params carries values handed to a screen when it is entered.
type Params map[string]any

// String returns p[key] when it holds a string.
func (p Params) String(key string) string {
	if p == nil {
		return ""
	}
	s, _ := p[key].(string)
	return s
}

// Screen is one view managed by the Router. Both hooks are always invoked;
// embed BaseScreen to get no-op defaults.
type Screen interface {
	OnEnter(params Params)
	OnExit()
}

// BaseScreen implements Screen with no-op hooks.
type BaseScreen struct{}

func (BaseScreen) OnEnter(Params) {}
func (BaseScreen) OnExit()        {}

type showOptions struct {
	remember bool
}

// ShowOption adjusts a single Show call.
type ShowOption func(*showOptions)

// Forget shows the target without pushing the current screen onto history.
func Forget() ShowOption {
	return func(o *showOptions) { o.remember = false }
}

// Router stores the active screen and a LIFO history of previously active
// screens. Show never pushes the screen being shown, but an earlier visit to
// the active screen may still sit deeper in the history.
type Router struct {
	screens map[ScreenID]Screen
	active  ScreenID
	started bool
	history []ScreenID
	onBack  []func(bool)
}

// NewRouter returns an empty router. Register screens before Start.
func NewRouter() *Router {
	return &Router{screens: make(map[ScreenID]Screen)}
}

// Register adds a screen under id. Registering an id twice panics.
func (r *Router) Register(id ScreenID, s Screen) {
	if s == nil {
		panic(fmt.Sprintf("nav: nil screen for %q", id))
	}
	if _, dup := r.screens[id]; dup {
		panic(fmt.Sprintf("nav: screen %q registered twice", id))
	}
	r.screens[id] = s
}

// OnBackAvailable subscribes fn to back-availability changes. fn receives
// true when history is non-empty after a transition.
func (r *Router) OnBackAvailable(fn func(bool)) {
	r.onBack = append(r.onBack, fn)
}

// Start shows the initial screen with an empty history.
func (r *Router) Start(id ScreenID) {
	r.Show(id, nil, Forget())
}

// Show makes id the active screen. Unless Forget is given, a different
// active screen is pushed onto history and receives OnExit. The target always
// receives OnEnter(params). Showing an unregistered id panics.
func (r *Router) Show(id ScreenID, params Params, opts ...ShowOption) {
	target := r.mustScreen(id)
	o := showOptions{remember: true}
	for _, opt := range opts {
		opt(&o)
	}
	if r.started && o.remember && r.active != id {
		r.history = append(r.history, r.active)
		r.screens[r.active].OnExit()
	}
	target.OnEnter(params)
	r.active = id
	r.started = true
	r.notify()
}

// Back returns to the most recently remembered screen. It does nothing when
// the history is empty.
func (r *Router) Back() bool {
	if len(r.history) == 0 {
		return false
	}
	r.screens[r.active].OnExit()
	prev := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.active = prev
	r.notify()
	return true
}

// Active returns the active screen id, or "" before Start.
func (r *Router) Active() ScreenID { return r.active }

// Screen returns the registered screen for id.
func (r *Router) Screen(id ScreenID) (Screen, bool) {
	s, ok := r.screens[id]
	return s, ok
}

// CanGoBack reports whether Back would change the active screen.
func (r *Router) CanGoBack() bool { return len(r.history) > 0 }

// HistoryLen returns the depth of the history stack.
func (r *Router) HistoryLen() int { return len(r.history) }

// History returns a copy of the history stack, oldest first.
func (r *Router) History() []ScreenID {
	out := make([]ScreenID, len(r.history))
	copy(out, r.history)
	return out
}

func (r *Router) mustScreen(id ScreenID) Screen {
	s, ok := r.screens[id]
	if !ok {
		panic(fmt.Sprintf("nav: unknown screen %q", id))
	}
	return s
}

func (r *Router) notify() {
	ok := r.CanGoBack()
	for _, fn := range r.onBack {
		fn(ok)
	}
}
