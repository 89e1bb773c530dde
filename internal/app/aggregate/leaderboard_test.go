package aggregate

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/app/store/entity/memstore"
	"github.com/carebridge/carebridge/internal/domain/models"
	"go.uber.org/zap"
)

func seedDonation(t *testing.T, s entity.Store, id, restaurantID, status string) {
	t.Helper()
	d := models.FoodDonation{
		ID:           id,
		RestaurantID: restaurantID,
		FoodType:     "meals",
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Create(context.Background(), models.ColDonations, d); err != nil {
		t.Fatalf("seed donation: %v", err)
	}
}

func seedProfile(t *testing.T, s entity.Store, id, name string, role models.Role, donated int64) {
	t.Helper()
	p := models.ActorProfile{ID: id, Name: name, Role: role, TotalDonated: donated, CreatedAt: time.Now().UTC()}
	if err := s.Create(context.Background(), models.ColProfiles, p); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func TestDonationLeaderboard_CountsClaimedOnly(t *testing.T) {
	s := memstore.New()
	e := New(s, zap.NewNop())
	ctx := context.Background()

	seedProfile(t, s, "r1", "First Kitchen", models.RoleRestaurant, 0)
	seedProfile(t, s, "r2", "Second Kitchen", models.RoleRestaurant, 0)

	seedDonation(t, s, "d1", "r1", models.DonationClaimed)
	seedDonation(t, s, "d2", "r1", models.DonationClaimed)
	seedDonation(t, s, "d3", "r2", models.DonationClaimed)
	seedDonation(t, s, "d4", "r2", models.DonationAvailable)
	seedDonation(t, s, "d5", "r2", models.DonationUnavailable)

	got, err := e.DonationLeaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].RestaurantID != "r1" || got[0].Claimed != 2 {
		t.Errorf("expected r1 on top with 2 claims, got %+v", got[0])
	}
	if got[0].Name != "First Kitchen" {
		t.Errorf("expected profile name, got %q", got[0].Name)
	}
	if got[1].RestaurantID != "r2" || got[1].Claimed != 1 {
		t.Errorf("expected r2 with 1 claim, got %+v", got[1])
	}
}

func TestDonationLeaderboard_FallbackNameWithoutProfile(t *testing.T) {
	s := memstore.New()
	e := New(s, zap.NewNop())
	ctx := context.Background()

	seedDonation(t, s, "d1", "restaurant-unknown", models.DonationClaimed)

	got, err := e.DonationLeaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if !strings.HasPrefix(got[0].Name, "Restaurant (") {
		t.Errorf("expected synthetic name, got %q", got[0].Name)
	}
}

func TestDonationLeaderboard_TiesBreakByID(t *testing.T) {
	s := memstore.New()
	e := New(s, zap.NewNop())
	ctx := context.Background()

	seedDonation(t, s, "d1", "rB", models.DonationClaimed)
	seedDonation(t, s, "d2", "rA", models.DonationClaimed)

	got, err := e.DonationLeaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if got[0].RestaurantID != "rA" || got[1].RestaurantID != "rB" {
		t.Errorf("expected deterministic ID tiebreak, got [%s %s]", got[0].RestaurantID, got[1].RestaurantID)
	}
}

func TestMonetaryLeaderboard_OrdersAndExcludesZero(t *testing.T) {
	s := memstore.New()
	e := New(s, zap.NewNop())
	ctx := context.Background()

	seedProfile(t, s, "a1", "Small Giver", models.RoleCitizen, 100)
	seedProfile(t, s, "a2", "Big Giver", models.RoleVolunteer, 9000)
	seedProfile(t, s, "a3", "Never Gave", models.RoleCitizen, 0)

	got, err := e.MonetaryLeaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("zero donors must be excluded, got %d entries", len(got))
	}
	if got[0].ActorID != "a2" || got[0].TotalDonated != 9000 {
		t.Errorf("expected a2 on top, got %+v", got[0])
	}
	if got[1].ActorID != "a1" {
		t.Errorf("expected a1 second, got %+v", got[1])
	}
}

func TestMonetaryLeaderboard_CapsAtSize(t *testing.T) {
	s := memstore.New()
	e := New(s, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < DefaultSize+5; i++ {
		seedProfile(t, s, string(rune('a'+i)), "Giver", models.RoleCitizen, int64(100+i))
	}

	got, err := e.MonetaryLeaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(got) != DefaultSize {
		t.Errorf("expected %d entries, got %d", DefaultSize, len(got))
	}
	if got[0].TotalDonated != int64(100+DefaultSize+4) {
		t.Errorf("expected largest donor first, got %d", got[0].TotalDonated)
	}
}
