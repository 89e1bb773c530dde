package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridge/carebridge/internal/app/alloc"
	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/carebridge/carebridge/internal/domain/faults"
	"github.com/carebridge/carebridge/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateDonationInput describes a surplus-food posting.
type CreateDonationInput struct {
	FoodType           string
	Quantity           string
	PickupLocation     string
	PickupInstructions string
	BestBefore         string
}

// CreateDonation posts a new available donation under the acting
// restaurant.
func (c *Coordinator) CreateDonation(ctx context.Context, actor identity.Actor, in CreateDonationInput) (models.FoodDonation, error) {
	if actor.Role != models.RoleRestaurant {
		return models.FoodDonation{}, faults.ErrForbidden
	}
	if in.FoodType == "" || in.Quantity == "" || in.PickupLocation == "" {
		return models.FoodDonation{}, errEmptyField
	}

	d := models.FoodDonation{
		ID:                 uuid.NewString(),
		RestaurantID:       actor.ID,
		RestaurantName:     actor.DisplayName,
		FoodType:           in.FoodType,
		Quantity:           in.Quantity,
		PickupLocation:     in.PickupLocation,
		PickupInstructions: in.PickupInstructions,
		BestBefore:         in.BestBefore,
		Status:             models.DonationAvailable,
		CreatedAt:          now(),
	}
	if err := c.store.Create(ctx, models.ColDonations, d); err != nil {
		return models.FoodDonation{}, fmt.Errorf("create donation: %w", err)
	}
	c.log.Info("donation posted",
		zap.String("donation_id", d.ID),
		zap.String("restaurant_id", actor.ID),
		zap.String("food_type", d.FoodType))
	return d, nil
}

// AvailableDonations lists unclaimed donations, newest first.
func (c *Coordinator) AvailableDonations(ctx context.Context) ([]models.FoodDonation, error) {
	var out []models.FoodDonation
	q := entity.Query{
		Filters:  []entity.Filter{{Field: "status", Op: entity.OpEq, Value: models.DonationAvailable}},
		SortBy:   "created_at",
		SortDesc: true,
		Limit:    int64(c.cfg.ListLimit),
	}
	if err := c.store.Query(ctx, models.ColDonations, q, &out); err != nil {
		return nil, fmt.Errorf("available donations: %w", err)
	}
	return out, nil
}

// ClaimDonation takes the donation exclusively for the acting
// volunteer. The commit verifies the donation is still available; a
// concurrent winner means this caller lost and gets AlreadyClaimed.
// Exclusive claims are never retried.
func (c *Coordinator) ClaimDonation(ctx context.Context, actor identity.Actor, donationID, notes, phone string) (models.FoodDonation, error) {
	if actor.Role != models.RoleVolunteer {
		return models.FoodDonation{}, faults.ErrForbidden
	}

	var d models.FoodDonation
	if err := c.store.Get(ctx, models.ColDonations, donationID, &d); err != nil {
		return models.FoodDonation{}, err
	}
	ops, pre, err := alloc.PlanClaim(&d, actor.ID, actor.DisplayName, notes, phone)
	if err != nil {
		return models.FoodDonation{}, err
	}

	if err := c.store.AtomicUpdate(ctx, models.ColDonations, donationID, pre, ops); err != nil {
		if errors.Is(err, faults.ErrConflict) {
			return models.FoodDonation{}, faults.ErrAlreadyClaimed
		}
		return models.FoodDonation{}, err
	}

	c.log.Info("donation claimed",
		zap.String("donation_id", donationID),
		zap.String("volunteer_id", actor.ID))

	if err := c.store.Get(ctx, models.ColDonations, donationID, &d); err != nil {
		return models.FoodDonation{}, err
	}
	return d, nil
}

// MarkDonationUnavailable withdraws the restaurant's own still-available
// donation. A donation that got claimed in the meantime stays claimed
// and the caller gets NotAvailable.
func (c *Coordinator) MarkDonationUnavailable(ctx context.Context, actor identity.Actor, donationID string) error {
	if actor.Role != models.RoleRestaurant {
		return faults.ErrForbidden
	}

	var d models.FoodDonation
	if err := c.store.Get(ctx, models.ColDonations, donationID, &d); err != nil {
		return err
	}
	ops, pre, err := alloc.PlanMarkUnavailable(&d, actor.ID)
	if err != nil {
		return err
	}

	if err := c.store.AtomicUpdate(ctx, models.ColDonations, donationID, pre, ops); err != nil {
		if errors.Is(err, faults.ErrConflict) {
			return faults.ErrNotAvailable
		}
		return err
	}
	c.log.Info("donation withdrawn",
		zap.String("donation_id", donationID),
		zap.String("restaurant_id", actor.ID))
	return nil
}
