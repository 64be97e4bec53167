package lifecycle

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestPlanBulkAssignCompleteness(t *testing.T) {
	regID := uuid.New()
	a := AssignCandidate{ID: uuid.New(), RegistrationID: regID, FullName: "An"}
	b := AssignCandidate{ID: uuid.New(), RegistrationID: regID, FullName: "Binh"}
	c := AssignCandidate{ID: uuid.New(), RegistrationID: regID, FullName: "Chi"}

	// Naming only 2 of 3 unassigned siblings rejects the whole batch and
	// names who is missing.
	err := PlanBulkAssign(
		[]uuid.UUID{a.ID, b.ID},
		map[uuid.UUID][]AssignCandidate{regID: {a, b, c}},
		10,
	)
	var incomplete *IncompleteGroupError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteGroupError, got %v", err)
	}
	if len(incomplete.MissingNames) != 1 || incomplete.MissingNames[0] != "Chi" {
		t.Errorf("MissingNames = %v, want [Chi]", incomplete.MissingNames)
	}

	// Complete group passes.
	if err := PlanBulkAssign(
		[]uuid.UUID{a.ID, b.ID, c.ID},
		map[uuid.UUID][]AssignCandidate{regID: {a, b, c}},
		10,
	); err != nil {
		t.Errorf("complete group rejected: %v", err)
	}
}

func TestPlanBulkAssignCapacity(t *testing.T) {
	regID := uuid.New()
	var requested []uuid.UUID
	var members []AssignCandidate
	for i := 0; i < 3; i++ {
		m := AssignCandidate{ID: uuid.New(), RegistrationID: regID, FullName: "x"}
		requested = append(requested, m.ID)
		members = append(members, m)
	}

	err := PlanBulkAssign(requested, map[uuid.UUID][]AssignCandidate{regID: members}, 2)
	var full *CapacityError
	if !errors.As(err, &full) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if full.Requested != 3 || full.Available != 2 {
		t.Errorf("CapacityError = %+v", full)
	}

	// Exactly fitting batch is allowed.
	if err := PlanBulkAssign(requested, map[uuid.UUID][]AssignCandidate{regID: members}, 3); err != nil {
		t.Errorf("fitting batch rejected: %v", err)
	}
}

func TestPlanBulkAssignMultipleGroups(t *testing.T) {
	reg1, reg2 := uuid.New(), uuid.New()
	a := AssignCandidate{ID: uuid.New(), RegistrationID: reg1, FullName: "An"}
	b := AssignCandidate{ID: uuid.New(), RegistrationID: reg2, FullName: "Binh"}
	c := AssignCandidate{ID: uuid.New(), RegistrationID: reg2, FullName: "Chi"}

	err := PlanBulkAssign(
		[]uuid.UUID{a.ID, b.ID},
		map[uuid.UUID][]AssignCandidate{reg1: {a}, reg2: {b, c}},
		10,
	)
	var incomplete *IncompleteGroupError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteGroupError, got %v", err)
	}
}
