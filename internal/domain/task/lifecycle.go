package task

import "slices"

// Allowed status transitions. Completed and cancelled tasks are final; a
// failed task can still be cancelled by its owner.
var validTransitions = map[Status][]Status{
	StatusPending: {
		StatusProcessing,
		StatusCancelled,
	},
	StatusProcessing: {
		StatusCompleted,
		StatusFailed,
		StatusCancelled,
	},
	StatusFailed: {
		StatusCancelled,
	},
}

// CanTransition reports whether a task may move from current to next.
func CanTransition(current, next Status) bool {
	return slices.Contains(validTransitions[current], next)
}
