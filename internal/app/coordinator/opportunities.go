package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridge/carebridge/internal/app/alloc"
	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/carebridge/carebridge/internal/app/workflow"
	"github.com/carebridge/carebridge/internal/domain/faults"
	"github.com/carebridge/carebridge/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateOpportunityInput describes a new volunteer opportunity.
type CreateOpportunityInput struct {
	Title    string
	Category string
	Location string
	Date     string
	Time     string
	Spots    int
}

// CreateOpportunity posts a new opportunity under the acting NGO.
func (c *Coordinator) CreateOpportunity(ctx context.Context, actor identity.Actor, in CreateOpportunityInput) (models.Opportunity, error) {
	if actor.Role != models.RoleNGO {
		return models.Opportunity{}, faults.ErrForbidden
	}
	if in.Title == "" {
		return models.Opportunity{}, errEmptyField
	}
	if in.Spots <= 0 {
		return models.Opportunity{}, errBadSpots
	}

	opp := models.Opportunity{
		ID:                 uuid.NewString(),
		Title:              in.Title,
		Category:           in.Category,
		Location:           in.Location,
		Date:               in.Date,
		Time:               in.Time,
		Spots:              in.Spots,
		OrgID:              actor.ID,
		OrgName:            actor.DisplayName,
		Status:             models.OpportunityOpen,
		SignedUpVolunteers: []string{},
		CreatedAt:          now(),
	}
	if err := c.store.Create(ctx, models.ColOpportunities, opp); err != nil {
		return models.Opportunity{}, fmt.Errorf("create opportunity: %w", err)
	}
	c.log.Info("opportunity created",
		zap.String("opportunity_id", opp.ID),
		zap.String("org_id", actor.ID),
		zap.Int("spots", opp.Spots))
	return opp, nil
}

// ListOpportunities returns recent opportunities, newest first.
func (c *Coordinator) ListOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	var opps []models.Opportunity
	q := entity.Query{
		SortBy:   "created_at",
		SortDesc: true,
		Limit:    int64(c.cfg.ListLimit),
	}
	if err := c.store.Query(ctx, models.ColOpportunities, q, &opps); err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	return opps, nil
}

// SignUp claims one seat on an opportunity for the acting volunteer.
//
// The commit is conditioned on the revision observed at read time. If
// another writer got in first, the state is re-read, the checks rerun
// against the fresh state, and the commit retried exactly once. A
// second conflict is reported to the caller as faults.ErrConflict —
// the signup is never dropped silently.
func (c *Coordinator) SignUp(ctx context.Context, actor identity.Actor, opportunityID string) error {
	if actor.Role != models.RoleVolunteer {
		return faults.ErrForbidden
	}

	const attempts = 2
	for i := 0; i < attempts; i++ {
		var opp models.Opportunity
		if err := c.store.Get(ctx, models.ColOpportunities, opportunityID, &opp); err != nil {
			return err
		}
		ops, pre, err := alloc.PlanSignUp(&opp, actor.ID)
		if err != nil {
			return err
		}
		err = c.store.AtomicUpdate(ctx, models.ColOpportunities, opportunityID, pre, ops)
		if err == nil {
			c.log.Info("volunteer signed up",
				zap.String("opportunity_id", opportunityID),
				zap.String("actor_id", actor.ID),
				zap.Int("attempt", i+1))
			return nil
		}
		if !errors.Is(err, faults.ErrConflict) {
			return err
		}
	}
	return faults.ErrConflict
}

// CancelSignUp releases the actor's seat. The opportunity always goes
// back to open, whatever the remaining occupancy — see alloc.PlanCancel.
func (c *Coordinator) CancelSignUp(ctx context.Context, actor identity.Actor, opportunityID string) error {
	if actor.Role != models.RoleVolunteer {
		return faults.ErrForbidden
	}
	var opp models.Opportunity
	if err := c.store.Get(ctx, models.ColOpportunities, opportunityID, &opp); err != nil {
		return err
	}
	ops, err := alloc.PlanCancel(&opp, actor.ID)
	if err != nil {
		return err
	}
	if err := c.store.AtomicUpdate(ctx, models.ColOpportunities, opportunityID, nil, ops); err != nil {
		return err
	}
	c.log.Info("signup cancelled",
		zap.String("opportunity_id", opportunityID),
		zap.String("actor_id", actor.ID))
	return nil
}

// CloseOpportunity applies the manual close override. Only the owning
// NGO may close, and only from open or full.
func (c *Coordinator) CloseOpportunity(ctx context.Context, actor identity.Actor, opportunityID string) error {
	var opp models.Opportunity
	if err := c.store.Get(ctx, models.ColOpportunities, opportunityID, &opp); err != nil {
		return err
	}
	if err := workflow.OpportunityClose(actor.Role, opp.Status); err != nil {
		return err
	}
	if opp.OrgID != actor.ID {
		return faults.ErrForbidden
	}

	ops := entity.Ops{Set: map[string]any{"status": models.OpportunityClosed}}
	pre := &entity.Precondition{Rev: opp.Rev}
	if err := c.store.AtomicUpdate(ctx, models.ColOpportunities, opportunityID, pre, ops); err != nil {
		return err
	}
	c.log.Info("opportunity closed",
		zap.String("opportunity_id", opportunityID),
		zap.String("org_id", actor.ID))
	return nil
}
