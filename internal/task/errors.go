package task

import (
	"fmt"

	"github.com/google/uuid"
)

// CycleError indicates a move would place a subtree beneath itself.
type CycleError struct {
	Node   uuid.UUID
	Target uuid.UUID
}

func (e CycleError) Error() string {
	return fmt.Sprintf("moving %s under %s would create a cycle", ShortID(e.Node), ShortID(e.Target))
}

// PermitError indicates a structural edit without a valid edit permit.
type PermitError struct {
	Reason string
}

func (e PermitError) Error() string {
	return "invalid edit permit: " + e.Reason
}
