// Package workflow holds the finite-state machines for the four
// workflow entities. It answers one question: is this status change
// structurally legal, and may this role trigger it. Capability checks
// for issues live in the capability package; the coordinator combines
// the two.
//
// A role that may never touch the entity gets faults.ErrForbidden. A
// role that may, asking for a shape-illegal change, gets
// faults.ErrInvalidTransition. The two are deliberately distinct.
package workflow

import (
	"github.com/carebridge/carebridge/internal/domain/faults"
	"github.com/carebridge/carebridge/internal/domain/models"
)

// IssueTransition validates pending → in-progress → resolved, with
// pending → resolved allowed as a skip-ahead. Resolved is terminal.
// Only NGO reviewers transition issues; the eligibility of the
// particular reviewer is checked separately.
func IssueTransition(role models.Role, from, to string) error {
	if role != models.RoleNGO {
		return faults.ErrForbidden
	}
	switch {
	case from == models.IssuePending && to == models.IssueInProgress:
		return nil
	case from == models.IssuePending && to == models.IssueResolved:
		return nil
	case from == models.IssueInProgress && to == models.IssueResolved:
		return nil
	}
	return faults.ErrInvalidTransition
}

// RequestTransition validates pending → accepted|rejected, triggered by
// a restaurant. Both outcomes are terminal.
func RequestTransition(role models.Role, from, to string) error {
	if role != models.RoleRestaurant {
		return faults.ErrForbidden
	}
	if from != models.RequestPending {
		return faults.ErrInvalidTransition
	}
	if to != models.RequestAccepted && to != models.RequestRejected {
		return faults.ErrInvalidTransition
	}
	return nil
}

// OpportunityClose validates the manual close override: open or full →
// closed, by the owning NGO (ownership checked by the coordinator).
func OpportunityClose(role models.Role, from string) error {
	if role != models.RoleNGO {
		return faults.ErrForbidden
	}
	if from != models.OpportunityOpen && from != models.OpportunityFull {
		return faults.ErrInvalidTransition
	}
	return nil
}
