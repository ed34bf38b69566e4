package draft

import "slices"

// State is the draft of a single game. Actions is the only source of truth;
// phase, next step, picks and bans are all derived from it. Blocked holds the
// series-wide fearless set for this game and is fixed when the state is
// created.
type State struct {
	Actions []Action        `json:"actions"`
	Blocked map[string]bool `json:"-"`
}

func NewState(blocked map[string]bool) State {
	b := make(map[string]bool, len(blocked))
	for c := range blocked {
		b[c] = true
	}
	return State{Actions: []Action{}, Blocked: b}
}

func (s State) Phase() Phase { return DerivePhase(len(s.Actions)) }

func (s State) Complete() bool { return len(s.Actions) >= len(Order) }

// NextStep reports whose turn it is and what they do. ok is false when the
// draft is complete.
func (s State) NextStep() (Step, bool) { return StepAt(len(s.Actions)) }

func (s State) Picks(side Side) []string {
	var out []string
	for _, a := range s.Actions {
		if a.Type == ActionPick && a.Side == side {
			out = append(out, a.Champion)
		}
	}
	return out
}

func (s State) Bans(side Side) []string {
	var out []string
	for _, a := range s.Actions {
		if a.Type == ActionBan && a.Side == side {
			out = append(out, a.Champion)
		}
	}
	return out
}

// PickCount is the number of picks locked so far on both sides. The
// role-phase tables are keyed by this.
func (s State) PickCount() int {
	n := 0
	for _, a := range s.Actions {
		if a.Type == ActionPick {
			n++
		}
	}
	return n
}

func (s State) hasAction(t ActionType, champion string) bool {
	for _, a := range s.Actions {
		if a.Type == t && a.Champion == champion {
			return true
		}
	}
	return false
}

// Unavailable reports whether a champion is out of the game: picked, banned,
// or fearless-blocked.
func (s State) Unavailable(champion string) bool {
	if s.Blocked[champion] {
		return true
	}
	for _, a := range s.Actions {
		if a.Champion == champion {
			return true
		}
	}
	return false
}

func (s State) CanPick(champion string) bool {
	if champion == "" {
		return false
	}
	return !s.Unavailable(champion)
}

func (s State) CanBan(champion string) bool {
	if champion == "" {
		return false
	}
	// Fearless champions are already gone; banning one wastes the ban.
	return !s.Unavailable(champion)
}

// Observe appends one live draft action. The action must be the next one in
// the fixed order: sequence, side and type all have to line up, and the
// champion has to be available. The input state is never mutated.
func Observe(s State, a Action) (State, error) {
	step, ok := s.NextStep()
	if !ok {
		return s, ErrDraftComplete
	}
	if a.Seq != 0 && a.Seq != len(s.Actions)+1 {
		return s, ErrOutOfSequence
	}
	if a.Side != step.Side || a.Type != step.Type {
		return s, ErrWrongTurn
	}

	switch a.Type {
	case ActionPick:
		if !s.CanPick(a.Champion) {
			return s, ErrIllegalPick
		}
	case ActionBan:
		if !s.CanBan(a.Champion) {
			return s, ErrIllegalBan
		}
	}

	a.Seq = len(s.Actions) + 1
	next := s
	// Clip so the append cannot scribble on a sibling copy's backing array.
	next.Actions = append(slices.Clip(s.Actions), a)
	return next, nil
}
