package draft

import (
	"errors"
	"strings"
)

var ErrWrongTurn = errors.New("invalid turn")
var ErrIllegalPick = errors.New("illegal champion")
var ErrIllegalBan = errors.New("illegal ban")
var ErrOutOfSequence = errors.New("action out of sequence")
var ErrDraftComplete = errors.New("draft already completed")

type Side string

const (
	SideBlue Side = "blue"
	SideRed  Side = "red"
)

func (s Side) Opponent() Side {
	if s == SideBlue {
		return SideRed
	}
	return SideBlue
}

func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(s) {
	case "blue":
		return SideBlue, true
	case "red":
		return SideRed, true
	default:
		return "", false
	}
}

type ActionType string

const (
	ActionBan  ActionType = "ban"
	ActionPick ActionType = "pick"
)

func ParseActionType(s string) (ActionType, bool) {
	switch strings.ToLower(s) {
	case "ban":
		return ActionBan, true
	case "pick":
		return ActionPick, true
	default:
		return "", false
	}
}

type Phase string

const (
	PhaseBan1  Phase = "ban1"
	PhasePick1 Phase = "pick1"
	PhaseBan2  Phase = "ban2"
	PhasePick2 Phase = "pick2"
	PhaseDone  Phase = "done"
)

type Role string

const (
	RoleTop     Role = "top"
	RoleJungle  Role = "jungle"
	RoleMid     Role = "mid"
	RoleBot     Role = "bot"
	RoleSupport Role = "support"
)

// RoleOrder is the fixed tie-break order for anything that has to choose
// between equally ranked roles. Alphabetical on the canonical name, so the
// result never depends on map iteration.
var RoleOrder = []Role{RoleBot, RoleJungle, RoleMid, RoleSupport, RoleTop}

// ParseRole accepts the spellings that show up in exports: Riot's
// TOP/JUNGLE/MIDDLE/BOTTOM/UTILITY plus the colloquial ones.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return RoleTop, true
	case "jungle", "jg", "jungler":
		return RoleJungle, true
	case "mid", "middle":
		return RoleMid, true
	case "bot", "bottom", "adc", "marksman":
		return RoleBot, true
	case "support", "sup", "supp", "utility":
		return RoleSupport, true
	default:
		return "", false
	}
}

// Action is one entry in the 20-action draft sequence.
type Action struct {
	Seq      int        `json:"seq"` // 1..20
	Type     ActionType `json:"type"`
	Side     Side       `json:"side"`
	Champion string     `json:"champion"`
}

type Step struct {
	Side Side
	Type ActionType
}
