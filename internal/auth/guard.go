package auth

// State is the observed auth state of a page view.
type State int

const (
	// StateLoading means the session has not been resolved yet.
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "loading"
	}
}

// Action is what a gated page does after observing a state.
type Action int

const (
	// ActionWait renders the loading placeholder.
	ActionWait Action = iota
	// ActionRender renders the page bound to the user.
	ActionRender
	// ActionRedirect sends the client to the login route.
	ActionRedirect
	// ActionNone renders nothing further; the redirect was already issued.
	ActionNone
)

func (a Action) String() string {
	switch a {
	case ActionRender:
		return "render"
	case ActionRedirect:
		return "redirect"
	case ActionNone:
		return "none"
	default:
		return "wait"
	}
}

// Guard is the page gate: loading -> {authenticated, unauthenticated}.
// A redirect is issued once per transition into StateUnauthenticated and never while loading.
// A Guard is not safe for concurrent use; create one per page view.
type Guard struct {
	state State
}

// NewGuard returns a guard in StateLoading.
func NewGuard() *Guard {
	return &Guard{state: StateLoading}
}

// State returns the last observed state.
func (g *Guard) State() State {
	return g.state
}

// Observe records s and returns the action the page must take.
func (g *Guard) Observe(s State) Action {
	prev := g.state
	g.state = s

	switch s {
	case StateAuthenticated:
		return ActionRender
	case StateUnauthenticated:
		if prev == StateUnauthenticated {
			return ActionNone
		}
		return ActionRedirect
	default:
		return ActionWait
	}
}
