package statemachine

import (
	"recicla/internal/model"
)

// validTransitions is the authoritative lifecycle definition:
// SCHEDULED → IN_ROUTE → COMPLETED, with CANCELED reachable from either
// non-terminal state. COMPLETED and CANCELED are terminal.
var validTransitions = map[model.CollectionStatus][]model.CollectionStatus{
	model.StatusScheduled: {model.StatusInRoute, model.StatusCanceled},
	model.StatusInRoute:   {model.StatusCompleted, model.StatusCanceled},
	model.StatusCompleted: {},
	model.StatusCanceled:  {},
}

// CanTransition reports whether a collection may move from one status to another.
func CanTransition(from, to model.CollectionStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the given status.
func IsTerminal(status model.CollectionStatus) bool {
	return len(validTransitions[status]) == 0
}

// NextStates returns all statuses reachable from the given one.
func NextStates(from model.CollectionStatus) []model.CollectionStatus {
	return validTransitions[from]
}
