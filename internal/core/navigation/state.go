package navigation

// State is a step of one navigation attempt.
type State uint8

const (
	Idle State = iota
	GuardEvaluating
	GuardFailed
	GuardPassed
	Loading
	LoadFailed
	LoadSucceeded
	Redirected
	Rendered
	// Discarded marks a navigation superseded by a newer one of the same
	// session and tab before it settled. Its result is dropped.
	Discarded
)

var stateNames = [...]string{
	Idle:            "idle",
	GuardEvaluating: "guard_evaluating",
	GuardFailed:     "guard_failed",
	GuardPassed:     "guard_passed",
	Loading:         "loading",
	LoadFailed:      "load_failed",
	LoadSucceeded:   "load_succeeded",
	Redirected:      "redirected",
	Rendered:        "rendered",
	Discarded:       "discarded",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "invalid"
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	return s == Redirected || s == Rendered || s == Discarded
}

// transitions lists the legal successors of each state.
var transitions = map[State][]State{
	Idle:            {GuardEvaluating},
	GuardEvaluating: {GuardFailed, GuardPassed, Discarded},
	GuardFailed:     {Redirected, Discarded},
	GuardPassed:     {Loading, Rendered, Discarded},
	Loading:         {LoadFailed, LoadSucceeded, Discarded},
	LoadFailed:      {Redirected, Discarded},
	LoadSucceeded:   {Rendered, Discarded},
}

// CanTransition reports whether to may follow from.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
