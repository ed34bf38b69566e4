package draft

// Order is the tournament draft sequence: 6 bans, 6 picks, 4 bans, 4 picks.
var Order = []Step{
	// Ban Phase 1
	{Side: SideBlue, Type: ActionBan},
	{Side: SideRed, Type: ActionBan},
	{Side: SideBlue, Type: ActionBan},
	{Side: SideRed, Type: ActionBan},
	{Side: SideBlue, Type: ActionBan},
	{Side: SideRed, Type: ActionBan},
	// Pick Phase 1
	{Side: SideBlue, Type: ActionPick},
	{Side: SideRed, Type: ActionPick},
	{Side: SideRed, Type: ActionPick},
	{Side: SideBlue, Type: ActionPick},
	{Side: SideBlue, Type: ActionPick},
	{Side: SideRed, Type: ActionPick},
	// Ban Phase 2
	{Side: SideRed, Type: ActionBan},
	{Side: SideBlue, Type: ActionBan},
	{Side: SideRed, Type: ActionBan},
	{Side: SideBlue, Type: ActionBan},
	// Pick Phase 2
	{Side: SideRed, Type: ActionPick},
	{Side: SideBlue, Type: ActionPick},
	{Side: SideBlue, Type: ActionPick},
	{Side: SideRed, Type: ActionPick},
}

// DerivePhase maps a completed-action count onto the draft phase. The phase is
// never stored; it is always re-derived from here so it cannot drift from the
// action list.
func DerivePhase(actionCount int) Phase {
	switch {
	case actionCount >= len(Order):
		return PhaseDone
	case actionCount <= 5:
		return PhaseBan1
	case actionCount <= 11:
		return PhasePick1
	case actionCount <= 15:
		return PhaseBan2
	default:
		return PhasePick2
	}
}

// StepAt returns the expected side/type for the action at the given count of
// already-completed actions. ok is false once the draft is over.
func StepAt(actionCount int) (Step, bool) {
	if actionCount < 0 || actionCount >= len(Order) {
		return Step{}, false
	}
	return Order[actionCount], true
}
