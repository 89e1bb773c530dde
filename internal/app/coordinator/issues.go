package coordinator

import (
	"context"
	"fmt"
	"sort"

	"github.com/carebridge/carebridge/internal/app/policy/capability"
	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/carebridge/carebridge/internal/app/workflow"
	"github.com/carebridge/carebridge/internal/domain/faults"
	"github.com/carebridge/carebridge/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportIssueInput is what a reporter supplies; everything else on the
// Issue is server-assigned.
type ReportIssueInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	ImageURL    string
}

// ReportIssue creates a pending issue on behalf of a citizen or
// volunteer reporter.
func (c *Coordinator) ReportIssue(ctx context.Context, actor identity.Actor, in ReportIssueInput) (models.Issue, error) {
	switch actor.Role {
	case models.RoleCitizen, models.RoleVolunteer:
	default:
		return models.Issue{}, faults.ErrForbidden
	}
	if in.Title == "" || in.Description == "" {
		return models.Issue{}, errEmptyField
	}
	if in.Category == "" {
		return models.Issue{}, errBadCategory
	}

	issue := models.Issue{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		ReporterID:  actor.ID,
		ImageURL:    in.ImageURL,
		Status:      models.IssuePending,
		Timestamp:   now(),
	}
	if err := c.store.Create(ctx, models.ColIssues, issue); err != nil {
		return models.Issue{}, fmt.Errorf("report issue: %w", err)
	}
	c.log.Info("issue reported",
		zap.String("issue_id", issue.ID),
		zap.String("category", issue.Category),
		zap.String("reporter_id", actor.ID))
	return issue, nil
}

// VisibleIssues resolves the issues an NGO reviewer may act on. The
// reviewer's focus areas are partitioned into batches no larger than
// the store's multi-value filter limit; batch results are merged,
// re-sorted by report time descending, and capped.
//
// A reviewer with no focus areas gets faults.ErrNoFocusAreas rather
// than an empty list, so the caller can tell misconfiguration apart
// from "no issues exist".
func (c *Coordinator) VisibleIssues(ctx context.Context, actor identity.Actor) ([]models.Issue, error) {
	if actor.Role != models.RoleNGO {
		return nil, faults.ErrForbidden
	}
	var profile models.ActorProfile
	if err := c.store.Get(ctx, models.ColProfiles, actor.ID, &profile); err != nil {
		return nil, fmt.Errorf("visible issues: reviewer profile: %w", err)
	}
	if len(profile.FocusAreas) == 0 {
		return nil, faults.ErrNoFocusAreas
	}

	var merged []models.Issue
	for _, batch := range capability.Batches(profile.FocusAreas, c.cfg.InFilterLimit) {
		var issues []models.Issue
		q := entity.Query{
			Filters: []entity.Filter{{Field: "category", Op: entity.OpIn, Value: batch}},
		}
		if err := c.store.Query(ctx, models.ColIssues, q, &issues); err != nil {
			return nil, fmt.Errorf("visible issues: %w", err)
		}
		merged = append(merged, issues...)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	if len(merged) > c.cfg.VisibleIssueLimit {
		merged = merged[:c.cfg.VisibleIssueLimit]
	}
	return merged, nil
}

// TransitionIssue moves an issue through its review lifecycle. The
// actor must be an NGO reviewer whose focus areas contain the issue's
// category; the transition itself must be legal for the issue's
// current status. Commits are guarded on the revision read here, and a
// lost race surfaces as faults.ErrConflict.
func (c *Coordinator) TransitionIssue(ctx context.Context, actor identity.Actor, issueID, to string) (models.Issue, error) {
	var issue models.Issue
	if err := c.store.Get(ctx, models.ColIssues, issueID, &issue); err != nil {
		return models.Issue{}, err
	}
	if err := workflow.IssueTransition(actor.Role, issue.Status, to); err != nil {
		return models.Issue{}, err
	}

	var profile models.ActorProfile
	if err := c.store.Get(ctx, models.ColProfiles, actor.ID, &profile); err != nil {
		return models.Issue{}, fmt.Errorf("transition issue: reviewer profile: %w", err)
	}
	if !capability.Eligible(profile.FocusAreas, issue.Category) {
		return models.Issue{}, faults.ErrForbidden
	}

	stamped := now()
	ops := entity.Ops{Set: map[string]any{
		"status":     to,
		"updated_at": stamped,
	}}
	pre := &entity.Precondition{Rev: issue.Rev}
	if err := c.store.AtomicUpdate(ctx, models.ColIssues, issueID, pre, ops); err != nil {
		return models.Issue{}, err
	}

	c.log.Info("issue transitioned",
		zap.String("issue_id", issueID),
		zap.String("from", issue.Status),
		zap.String("to", to),
		zap.String("reviewer_id", actor.ID))

	issue.Status = to
	issue.UpdatedAt = &stamped
	return issue, nil
}
