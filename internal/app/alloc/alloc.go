// Package alloc computes state deltas for the two allocation shapes:
// seat allocation (many claimants, capacity N) on opportunities and
// exclusive claim (capacity 1) on food donations.
//
// Each Plan function validates against the document as read and
// returns the field ops plus the precondition guarding the commit.
// Committing, conflict handling, and the single signup retry are the
// coordinator's job.
package alloc

import (
	"time"

	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/domain/faults"
	"github.com/carebridge/carebridge/internal/domain/models"
)

// PlanSignUp validates a seat signup and returns the set-union commit.
// The precondition pins the revision observed at read time, so any
// interleaved write surfaces as faults.ErrConflict at commit.
func PlanSignUp(o *models.Opportunity, actorID string) (entity.Ops, *entity.Precondition, error) {
	if o.SignedUp(actorID) {
		return entity.Ops{}, nil, faults.ErrAlreadySignedUp
	}
	if len(o.SignedUpVolunteers) >= o.Spots {
		return entity.Ops{}, nil, faults.ErrFull
	}
	if o.Status != models.OpportunityOpen {
		return entity.Ops{}, nil, faults.ErrNotOpen
	}

	ops := entity.Ops{
		AddToSet: map[string]any{"signed_up_volunteers": actorID},
	}
	if len(o.SignedUpVolunteers)+1 >= o.Spots {
		ops.Set = map[string]any{"status": models.OpportunityFull}
	}
	return ops, &entity.Precondition{Rev: o.Rev}, nil
}

// PlanCancel validates a signup cancellation. The status is reset to
// open unconditionally and the commit carries no precondition: any
// cancellation reopens the opportunity, even if a racing signup just
// filled the last seat. That is the documented behavior, kept as is.
func PlanCancel(o *models.Opportunity, actorID string) (entity.Ops, error) {
	if !o.SignedUp(actorID) {
		return entity.Ops{}, faults.ErrNotSignedUp
	}
	return entity.Ops{
		Pull: map[string]any{"signed_up_volunteers": actorID},
		Set:  map[string]any{"status": models.OpportunityOpen},
	}, nil
}

// PlanClaim validates an exclusive claim on a donation. The commit is
// guarded on status still being "available"; a concurrent winner turns
// the commit into faults.ErrConflict, which the coordinator reports as
// AlreadyClaimed without retrying. The loser truly lost.
func PlanClaim(d *models.FoodDonation, actorID, actorName, notes, phone string) (entity.Ops, *entity.Precondition, error) {
	switch d.Status {
	case models.DonationAvailable:
	case models.DonationClaimed:
		return entity.Ops{}, nil, faults.ErrAlreadyClaimed
	default:
		return entity.Ops{}, nil, faults.ErrNotAvailable
	}

	now := time.Now().UTC()
	ops := entity.Ops{
		Set: map[string]any{
			"status":                  models.DonationClaimed,
			"claimed_by_volunteer_id": actorID,
			"volunteer_name":          actorName,
			"claimed_at":              now,
			"volunteer_pickup_notes":  notes,
			"volunteer_phone_number":  phone,
		},
	}
	pre := &entity.Precondition{Fields: map[string]any{"status": models.DonationAvailable}}
	return ops, pre, nil
}

// PlanMarkUnavailable validates a restaurant withdrawing its own
// donation. Only legal from "available"; a claimed donation stays
// claimed.
func PlanMarkUnavailable(d *models.FoodDonation, restaurantID string) (entity.Ops, *entity.Precondition, error) {
	if d.RestaurantID != restaurantID {
		return entity.Ops{}, nil, faults.ErrNotOwner
	}
	if d.Status != models.DonationAvailable {
		return entity.Ops{}, nil, faults.ErrNotAvailable
	}
	ops := entity.Ops{Set: map[string]any{"status": models.DonationUnavailable}}
	pre := &entity.Precondition{Fields: map[string]any{"status": models.DonationAvailable}}
	return ops, pre, nil
}
