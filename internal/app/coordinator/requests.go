package coordinator

import (
	"context"
	"fmt"

	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/carebridge/carebridge/internal/app/workflow"
	"github.com/carebridge/carebridge/internal/domain/faults"
	"github.com/carebridge/carebridge/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateFoodRequestInput describes an NGO's ask for food.
type CreateFoodRequestInput struct {
	FoodType    string
	Quantity    string
	Description string
}

// CreateFoodRequest files a pending request under the acting NGO.
func (c *Coordinator) CreateFoodRequest(ctx context.Context, actor identity.Actor, in CreateFoodRequestInput) (models.FoodRequest, error) {
	if actor.Role != models.RoleNGO {
		return models.FoodRequest{}, faults.ErrForbidden
	}
	if in.FoodType == "" || in.Quantity == "" {
		return models.FoodRequest{}, errEmptyField
	}

	req := models.FoodRequest{
		ID:          uuid.NewString(),
		NGOID:       actor.ID,
		FoodType:    in.FoodType,
		Quantity:    in.Quantity,
		Description: in.Description,
		Status:      models.RequestPending,
		CreatedAt:   now(),
	}
	if err := c.store.Create(ctx, models.ColRequests, req); err != nil {
		return models.FoodRequest{}, fmt.Errorf("create food request: %w", err)
	}
	c.log.Info("food request filed",
		zap.String("request_id", req.ID),
		zap.String("ngo_id", actor.ID))
	return req, nil
}

// RequestsForNGO lists the acting NGO's own requests, newest first.
func (c *Coordinator) RequestsForNGO(ctx context.Context, actor identity.Actor) ([]models.FoodRequest, error) {
	if actor.Role != models.RoleNGO {
		return nil, faults.ErrForbidden
	}
	var out []models.FoodRequest
	q := entity.Query{
		Filters:  []entity.Filter{{Field: "ngo_id", Op: entity.OpEq, Value: actor.ID}},
		SortBy:   "created_at",
		SortDesc: true,
		Limit:    int64(c.cfg.ListLimit),
	}
	if err := c.store.Query(ctx, models.ColRequests, q, &out); err != nil {
		return nil, fmt.Errorf("requests for ngo: %w", err)
	}
	return out, nil
}

// PendingRequests lists requests awaiting a restaurant's answer.
func (c *Coordinator) PendingRequests(ctx context.Context, actor identity.Actor) ([]models.FoodRequest, error) {
	if actor.Role != models.RoleRestaurant {
		return nil, faults.ErrForbidden
	}
	var out []models.FoodRequest
	q := entity.Query{
		Filters:  []entity.Filter{{Field: "status", Op: entity.OpEq, Value: models.RequestPending}},
		SortBy:   "created_at",
		SortDesc: true,
		Limit:    int64(c.cfg.ListLimit),
	}
	if err := c.store.Query(ctx, models.ColRequests, q, &out); err != nil {
		return nil, fmt.Errorf("pending requests: %w", err)
	}
	return out, nil
}

// ResolveFoodRequest accepts or rejects a pending request on behalf of
// the acting restaurant, recording it as the acting party. Both
// outcomes are terminal; a racing resolver surfaces as
// faults.ErrConflict.
func (c *Coordinator) ResolveFoodRequest(ctx context.Context, actor identity.Actor, requestID string, accept bool) (models.FoodRequest, error) {
	var req models.FoodRequest
	if err := c.store.Get(ctx, models.ColRequests, requestID, &req); err != nil {
		return models.FoodRequest{}, err
	}

	to := models.RequestRejected
	if accept {
		to = models.RequestAccepted
	}
	if err := workflow.RequestTransition(actor.Role, req.Status, to); err != nil {
		return models.FoodRequest{}, err
	}

	stamped := now()
	ops := entity.Ops{Set: map[string]any{
		"status":                 to,
		"acted_by_restaurant_id": actor.ID,
		"updated_at":             stamped,
	}}
	pre := &entity.Precondition{
		Rev:    req.Rev,
		Fields: map[string]any{"status": models.RequestPending},
	}
	if err := c.store.AtomicUpdate(ctx, models.ColRequests, requestID, pre, ops); err != nil {
		return models.FoodRequest{}, err
	}

	c.log.Info("food request resolved",
		zap.String("request_id", requestID),
		zap.String("restaurant_id", actor.ID),
		zap.String("outcome", to))

	req.Status = to
	req.ActedByRestaurantID = actor.ID
	req.UpdatedAt = &stamped
	return req, nil
}
