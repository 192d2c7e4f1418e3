package lifecycle

import "github.com/jonathan/talent-screener/internal/types"

// transitions lists the permitted target states for each source state.
// Terminal states (hired, rejected, withdrawn) have no outgoing edges.
// Withdrawal is only reachable from pre-interview states; HR may skip
// screening and shortlist directly, and may reject from any active state.
var transitions = map[types.ApplicationStatus][]types.ApplicationStatus{
	types.StatusSubmitted: {
		types.StatusScreening,
		types.StatusShortlisted,
		types.StatusRejected,
		types.StatusWithdrawn,
	},
	types.StatusScreening: {
		types.StatusShortlisted,
		types.StatusRejected,
		types.StatusWithdrawn,
	},
	types.StatusShortlisted: {
		types.StatusInterviewScheduled,
		types.StatusRejected,
		types.StatusWithdrawn,
	},
	types.StatusInterviewScheduled: {
		types.StatusInterviewed,
		types.StatusRejected,
		types.StatusWithdrawn,
	},
	types.StatusInterviewed: {
		types.StatusHired,
		types.StatusRejected,
	},
	types.StatusHired:     nil,
	types.StatusRejected:  nil,
	types.StatusWithdrawn: nil,
}

// CanTransition reports whether moving from one status to another is
// permitted by the state machine.
func CanTransition(from, to types.ApplicationStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition checks a proposed move and returns a typed error when
// it is not permitted. Unrecognized targets fail with InvalidStatusError;
// recognized but unreachable targets fail with InvalidTransitionError.
func ValidateTransition(from, to types.ApplicationStatus) error {
	if !to.Valid() {
		return &InvalidStatusError{Status: string(to)}
	}
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}
