package lifecycle

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AssignCandidate is one unassigned registrant of a registration touched
// by a bulk team-assignment request.
type AssignCandidate struct {
	ID             uuid.UUID
	RegistrationID uuid.UUID
	FullName       string
}

// IncompleteGroupError rejects a bulk assignment that would split a
// registration group across teams. Members of one registration stay
// together, so the request must name every unassigned registrant of
// every registration it touches.
type IncompleteGroupError struct {
	MissingNames []string
}

func (e *IncompleteGroupError) Error() string {
	return fmt.Sprintf("registration group incomplete, missing: %s", strings.Join(e.MissingNames, ", "))
}

// CapacityError rejects a bulk assignment exceeding the team's free slots.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("team capacity exceeded: requested %d, available %d", e.Requested, e.Available)
}

// PlanBulkAssign validates a bulk team assignment before any row is
// written. requested is the set of registrant IDs named by the admin;
// groupMembers holds, per registration touched by the request, ALL of
// that registration's still-unassigned registrants; available is the
// team's remaining capacity.
//
// The whole batch is rejected (no partial success) when a registration
// group is incomplete or capacity would be exceeded. Per-registrant
// failures that do not invalidate the batch (scope mismatch, raced
// assignment) are reported by the caller during the write loop instead.
func PlanBulkAssign(requested []uuid.UUID, groupMembers map[uuid.UUID][]AssignCandidate, available int) error {
	reqSet := make(map[uuid.UUID]struct{}, len(requested))
	for _, id := range requested {
		reqSet[id] = struct{}{}
	}

	var missing []string
	for _, members := range groupMembers {
		for _, m := range members {
			if _, ok := reqSet[m.ID]; !ok {
				missing = append(missing, m.FullName)
			}
		}
	}
	if len(missing) > 0 {
		return &IncompleteGroupError{MissingNames: missing}
	}

	if len(requested) > available {
		return &CapacityError{Requested: len(requested), Available: available}
	}
	return nil
}
