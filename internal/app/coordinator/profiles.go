package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/carebridge/carebridge/internal/domain/faults"
	"github.com/carebridge/carebridge/internal/domain/models"
	"go.uber.org/zap"
)

var errBadRole = fmt.Errorf(`%w: role must be "citizen"|"volunteer"|"ngo"|"restaurant"|"superadmin"`, faults.ErrInvalidInput)

// EnsureProfile creates the actor's profile document on first sight.
// The role comes from the identity provider and is fixed here for the
// life of the account; nothing in this service changes it afterwards.
// Calling again for an existing profile is a no-op.
func (c *Coordinator) EnsureProfile(ctx context.Context, actor identity.Actor) (models.ActorProfile, error) {
	if !models.ValidRole(actor.Role) {
		return models.ActorProfile{}, errBadRole
	}

	var existing models.ActorProfile
	err := c.store.Get(ctx, models.ColProfiles, actor.ID, &existing)
	if err == nil {
		return existing, nil
	}

	p := models.ActorProfile{
		ID:        actor.ID,
		Name:      actor.DisplayName,
		Role:      actor.Role,
		CreatedAt: now(),
	}
	if err := c.store.Create(ctx, models.ColProfiles, p); err != nil {
		// A concurrent first request may have won the insert.
		if errors.Is(err, entity.ErrDuplicateID) {
			if gerr := c.store.Get(ctx, models.ColProfiles, actor.ID, &existing); gerr == nil {
				return existing, nil
			}
		}
		return models.ActorProfile{}, fmt.Errorf("ensure profile: %w", err)
	}
	c.log.Info("profile created",
		zap.String("actor_id", actor.ID),
		zap.String("role", string(actor.Role)))
	return p, nil
}

// ProfileUpdate holds the self-service mutable profile fields. Role is
// deliberately absent.
type ProfileUpdate struct {
	Name       string
	PhotoURL   string
	FocusAreas []string
}

// UpdateProfile updates the actor's own profile. Focus areas are only
// meaningful for NGO reviewers and are rejected for anyone else.
func (c *Coordinator) UpdateProfile(ctx context.Context, actor identity.Actor, upd ProfileUpdate) (models.ActorProfile, error) {
	var p models.ActorProfile
	if err := c.store.Get(ctx, models.ColProfiles, actor.ID, &p); err != nil {
		return models.ActorProfile{}, err
	}
	if len(upd.FocusAreas) > 0 && p.Role != models.RoleNGO {
		return models.ActorProfile{}, faults.ErrForbidden
	}

	set := map[string]any{}
	if upd.Name != "" {
		set["name"] = upd.Name
	}
	if upd.PhotoURL != "" {
		set["photo_url"] = upd.PhotoURL
	}
	if p.Role == models.RoleNGO && upd.FocusAreas != nil {
		set["focus_areas"] = upd.FocusAreas
	}
	if len(set) == 0 {
		return p, nil
	}

	pre := &entity.Precondition{Rev: p.Rev}
	if err := c.store.AtomicUpdate(ctx, models.ColProfiles, actor.ID, pre, entity.Ops{Set: set}); err != nil {
		return models.ActorProfile{}, err
	}
	if err := c.store.Get(ctx, models.ColProfiles, actor.ID, &p); err != nil {
		return models.ActorProfile{}, err
	}
	return p, nil
}
