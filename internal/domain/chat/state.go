package chat

import "strings"

// Phase enumerates the multi-turn flows a conversation can be in.
type Phase int

const (
	// PhaseNone means no special flow is in progress.
	PhaseNone Phase = iota
	// PhaseCollectingEstimate means the next message describes desired work.
	PhaseCollectingEstimate
	// PhaseAwaitingScheduleCall means the next message answers a yes/no
	// scheduling prompt.
	PhaseAwaitingScheduleCall
)

// State is the conversation flow marker round-tripped through the caller.
// The service keeps no session store; everything lives in the wire tag.
type State struct {
	Phase Phase
	// RemainingFollowups bounds how many clarifying questions the estimate
	// flow may still ask before it must retrieve.
	RemainingFollowups int
}

// Wire tags understood by ParseState. The two estimate tags encode the
// follow-up budget: the plain tag has one round left, the final tag has none.
const (
	tagCollectingEstimate      = "collecting_estimate_details"
	tagCollectingEstimateFinal = "collecting_estimate_details_final"
	tagAwaitingScheduleCall    = "awaiting_schedule_call_confirmation"
)

// ParseState maps a caller supplied tag onto a State. Unknown tags are
// treated as no special state.
func ParseState(tag string) State {
	switch strings.TrimSpace(tag) {
	case tagCollectingEstimate:
		return State{Phase: PhaseCollectingEstimate, RemainingFollowups: 1}
	case tagCollectingEstimateFinal:
		return State{Phase: PhaseCollectingEstimate, RemainingFollowups: 0}
	case tagAwaitingScheduleCall:
		return State{Phase: PhaseAwaitingScheduleCall}
	}
	if strings.Contains(tag, "schedule_call") {
		return State{Phase: PhaseAwaitingScheduleCall}
	}
	return State{Phase: PhaseNone}
}

// Tag encodes the state back into its wire representation. A nil result
// clears the conversation state on the caller side.
func (s State) Tag() *string {
	switch s.Phase {
	case PhaseCollectingEstimate:
		tag := tagCollectingEstimateFinal
		if s.RemainingFollowups > 0 {
			tag = tagCollectingEstimate
		}
		return &tag
	case PhaseAwaitingScheduleCall:
		tag := tagAwaitingScheduleCall
		return &tag
	}
	return nil
}
