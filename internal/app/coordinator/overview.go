package coordinator

import (
	"context"
	"fmt"

	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/carebridge/carebridge/internal/domain/faults"
	"github.com/carebridge/carebridge/internal/domain/models"
)

// Overview is the role-specific landing data for an actor. Exactly one
// of the role sections is populated.
type Overview struct {
	Role models.Role `json:"role"`

	// Citizen / volunteer.
	ReportedIssues []models.Issue        `json:"reported_issues,omitempty"`
	SignedUp       []models.Opportunity  `json:"signed_up,omitempty"`
	ClaimedByMe    []models.FoodDonation `json:"claimed_by_me,omitempty"`

	// NGO.
	MyOpportunities []models.Opportunity `json:"my_opportunities,omitempty"`
	MyRequests      []models.FoodRequest `json:"my_requests,omitempty"`

	// Restaurant.
	MyDonations     []models.FoodDonation `json:"my_donations,omitempty"`
	PendingRequests []models.FoodRequest  `json:"pending_requests,omitempty"`

	// Superadmin.
	Totals *Totals `json:"totals,omitempty"`
}

// Totals is the superadmin's entity census.
type Totals struct {
	Issues        int `json:"issues"`
	Opportunities int `json:"opportunities"`
	Donations     int `json:"donations"`
	Requests      int `json:"requests"`
}

// ActorOverview assembles the per-role view in one switch over the role
// enum: one branch per role, no dispatch tables, no inheritance.
func (c *Coordinator) ActorOverview(ctx context.Context, actor identity.Actor) (Overview, error) {
	out := Overview{Role: actor.Role}

	switch actor.Role {
	case models.RoleCitizen:
		issues, err := c.queryIssuesBy(ctx, "reporter_id", actor.ID)
		if err != nil {
			return Overview{}, err
		}
		out.ReportedIssues = issues

	case models.RoleVolunteer:
		issues, err := c.queryIssuesBy(ctx, "reporter_id", actor.ID)
		if err != nil {
			return Overview{}, err
		}
		out.ReportedIssues = issues

		opps, err := c.ListOpportunities(ctx)
		if err != nil {
			return Overview{}, err
		}
		for _, o := range opps {
			if o.SignedUp(actor.ID) {
				out.SignedUp = append(out.SignedUp, o)
			}
		}

		var claimed []models.FoodDonation
		q := entity.Query{
			Filters:  []entity.Filter{{Field: "claimed_by_volunteer_id", Op: entity.OpEq, Value: actor.ID}},
			SortBy:   "created_at",
			SortDesc: true,
			Limit:    int64(c.cfg.ListLimit),
		}
		if err := c.store.Query(ctx, models.ColDonations, q, &claimed); err != nil {
			return Overview{}, fmt.Errorf("overview: claimed donations: %w", err)
		}
		out.ClaimedByMe = claimed

	case models.RoleNGO:
		var opps []models.Opportunity
		q := entity.Query{
			Filters:  []entity.Filter{{Field: "org_id", Op: entity.OpEq, Value: actor.ID}},
			SortBy:   "created_at",
			SortDesc: true,
			Limit:    int64(c.cfg.ListLimit),
		}
		if err := c.store.Query(ctx, models.ColOpportunities, q, &opps); err != nil {
			return Overview{}, fmt.Errorf("overview: opportunities: %w", err)
		}
		out.MyOpportunities = opps

		reqs, err := c.RequestsForNGO(ctx, actor)
		if err != nil {
			return Overview{}, err
		}
		out.MyRequests = reqs

	case models.RoleRestaurant:
		var donations []models.FoodDonation
		q := entity.Query{
			Filters:  []entity.Filter{{Field: "restaurant_id", Op: entity.OpEq, Value: actor.ID}},
			SortBy:   "created_at",
			SortDesc: true,
			Limit:    int64(c.cfg.ListLimit),
		}
		if err := c.store.Query(ctx, models.ColDonations, q, &donations); err != nil {
			return Overview{}, fmt.Errorf("overview: donations: %w", err)
		}
		out.MyDonations = donations

		pending, err := c.PendingRequests(ctx, actor)
		if err != nil {
			return Overview{}, err
		}
		out.PendingRequests = pending

	case models.RoleSuperAdmin:
		totals := Totals{}
		for _, col := range []struct {
			name  string
			count *int
		}{
			{models.ColIssues, &totals.Issues},
			{models.ColOpportunities, &totals.Opportunities},
			{models.ColDonations, &totals.Donations},
			{models.ColRequests, &totals.Requests},
		} {
			var docs []struct {
				ID string `bson:"_id"`
			}
			if err := c.store.Query(ctx, col.name, entity.Query{}, &docs); err != nil {
				return Overview{}, fmt.Errorf("overview: count %s: %w", col.name, err)
			}
			*col.count = len(docs)
		}
		out.Totals = &totals

	default:
		return Overview{}, faults.ErrForbidden
	}

	return out, nil
}

func (c *Coordinator) queryIssuesBy(ctx context.Context, field, value string) ([]models.Issue, error) {
	var issues []models.Issue
	q := entity.Query{
		Filters:  []entity.Filter{{Field: field, Op: entity.OpEq, Value: value}},
		SortBy:   "timestamp",
		SortDesc: true,
		Limit:    int64(c.cfg.ListLimit),
	}
	if err := c.store.Query(ctx, models.ColIssues, q, &issues); err != nil {
		return nil, fmt.Errorf("overview: issues: %w", err)
	}
	return issues, nil
}
