// Package testutil provides shared helpers for CareBridge tests.
//
// Tests run against the in-memory entity store, so no external services
// are required.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/app/store/entity/memstore"
	"github.com/carebridge/carebridge/internal/domain/models"
)

// TestContext returns a context with a timeout suitable for tests.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// Logger returns a no-op logger for tests.
func Logger() *zap.Logger {
	return zap.NewNop()
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	store entity.Store
	t     *testing.T
}

// NewFixtures creates a Fixtures instance backed by a fresh in-memory
// store.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	return &Fixtures{store: memstore.New(), t: t}
}

// Store returns the underlying store for direct access in tests.
func (f *Fixtures) Store() entity.Store {
	return f.store
}

// CreateProfile inserts an actor profile and returns it.
func (f *Fixtures) CreateProfile(ctx context.Context, name string, role models.Role) models.ActorProfile {
	f.t.Helper()

	p := models.ActorProfile{
		ID:        uuid.NewString(),
		Name:      name,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := f.store.Create(ctx, models.ColProfiles, p); err != nil {
		f.t.Fatalf("create profile: %v", err)
	}
	return p
}

// CreateNGO inserts an NGO profile with the given focus areas.
func (f *Fixtures) CreateNGO(ctx context.Context, name string, focusAreas []string) models.ActorProfile {
	f.t.Helper()

	p := models.ActorProfile{
		ID:         uuid.NewString(),
		Name:       name,
		Role:       models.RoleNGO,
		FocusAreas: focusAreas,
		CreatedAt:  time.Now().UTC(),
	}
	if err := f.store.Create(ctx, models.ColProfiles, p); err != nil {
		f.t.Fatalf("create ngo profile: %v", err)
	}
	return p
}

// CreateIssue inserts a pending issue in the given category.
func (f *Fixtures) CreateIssue(ctx context.Context, reporterID, category string) models.Issue {
	f.t.Helper()

	iss := models.Issue{
		ID:          uuid.NewString(),
		Title:       "Test Issue",
		Description: "Something needs fixing",
		Category:    category,
		Location:    "Test Street",
		ReporterID:  reporterID,
		Status:      models.IssuePending,
		Timestamp:   time.Now().UTC(),
	}
	if err := f.store.Create(ctx, models.ColIssues, iss); err != nil {
		f.t.Fatalf("create issue: %v", err)
	}
	return iss
}

// CreateOpportunity inserts an open opportunity with the given seat
// count.
func (f *Fixtures) CreateOpportunity(ctx context.Context, orgID string, spots int) models.Opportunity {
	f.t.Helper()

	opp := models.Opportunity{
		ID:        uuid.NewString(),
		Title:     "Test Opportunity",
		Category:  "environment",
		Location:  "Test Park",
		Date:      "2026-09-01",
		Time:      "09:00",
		Spots:     spots,
		OrgID:     orgID,
		OrgName:   "Test Org",
		Status:    models.OpportunityOpen,
		CreatedAt: time.Now().UTC(),
	}
	if err := f.store.Create(ctx, models.ColOpportunities, opp); err != nil {
		f.t.Fatalf("create opportunity: %v", err)
	}
	return opp
}

// CreateDonation inserts an available food donation.
func (f *Fixtures) CreateDonation(ctx context.Context, restaurantID string) models.FoodDonation {
	f.t.Helper()

	d := models.FoodDonation{
		ID:             uuid.NewString(),
		RestaurantID:   restaurantID,
		RestaurantName: "Test Restaurant",
		FoodType:       "cooked meals",
		Quantity:       "10 boxes",
		PickupLocation: "Back entrance",
		Status:         models.DonationAvailable,
		CreatedAt:      time.Now().UTC(),
	}
	if err := f.store.Create(ctx, models.ColDonations, d); err != nil {
		f.t.Fatalf("create donation: %v", err)
	}
	return d
}

// CreateRequest inserts a pending food request for the given NGO.
func (f *Fixtures) CreateRequest(ctx context.Context, ngoID string) models.FoodRequest {
	f.t.Helper()

	req := models.FoodRequest{
		ID:          uuid.NewString(),
		NGOID:       ngoID,
		FoodType:    "rice",
		Quantity:    "25 kg",
		Description: "Weekly shelter supply",
		Status:      models.RequestPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := f.store.Create(ctx, models.ColRequests, req); err != nil {
		f.t.Fatalf("create request: %v", err)
	}
	return req
}
