// Package aggregate derives the two leaderboards at read time from the
// committed documents. Nothing here maintains persisted rollups; the
// only persisted counter in the system is ActorProfile.TotalDonated,
// which the coordinator increments atomically per payment event.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/domain/faults"
	"github.com/carebridge/carebridge/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultSize is how many entries each leaderboard returns.
const DefaultSize = 10

type Engine struct {
	store entity.Store
	log   *zap.Logger
	size  int
}

func New(store entity.Store, logger *zap.Logger) *Engine {
	return &Engine{store: store, log: logger, size: DefaultSize}
}

// DonationEntry is one row of the donation leaderboard.
type DonationEntry struct {
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	PhotoURL     string `json:"photo_url,omitempty"`
	Claimed      int    `json:"claimed"`
}

// MonetaryEntry is one row of the monetary leaderboard.
type MonetaryEntry struct {
	ActorID      string `json:"actor_id"`
	Name         string `json:"name"`
	PhotoURL     string `json:"photo_url,omitempty"`
	TotalDonated int64  `json:"total_donated"`
}

// DonationLeaderboard groups claimed donations by restaurant, counts,
// and returns the top entries. A failed or empty profile lookup for one
// restaurant degrades that entry to a synthetic name; it never aborts
// the whole board.
func (e *Engine) DonationLeaderboard(ctx context.Context) ([]DonationEntry, error) {
	var donations []models.FoodDonation
	q := entity.Query{
		Filters: []entity.Filter{{Field: "status", Op: entity.OpEq, Value: models.DonationClaimed}},
	}
	if err := e.store.Query(ctx, models.ColDonations, q, &donations); err != nil {
		return nil, fmt.Errorf("donation leaderboard: %w", err)
	}

	counts := map[string]int{}
	for _, d := range donations {
		counts[d.RestaurantID]++
	}

	entries := make([]DonationEntry, 0, len(counts))
	for id, n := range counts {
		entries = append(entries, DonationEntry{RestaurantID: id, Claimed: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Claimed != entries[j].Claimed {
			return entries[i].Claimed > entries[j].Claimed
		}
		return entries[i].RestaurantID < entries[j].RestaurantID
	})
	if len(entries) > e.size {
		entries = entries[:e.size]
	}

	for i := range entries {
		entries[i].Name, entries[i].PhotoURL = e.restaurantDisplay(ctx, entries[i].RestaurantID)
	}
	return entries, nil
}

func (e *Engine) restaurantDisplay(ctx context.Context, id string) (name, photo string) {
	var p models.ActorProfile
	err := e.store.Get(ctx, models.ColProfiles, id, &p)
	if err != nil {
		if !errors.Is(err, faults.ErrNotFound) {
			e.log.Warn("leaderboard profile lookup failed",
				zap.String("restaurant_id", id),
				zap.Error(err))
		}
		return fallbackName(id), ""
	}
	if p.Name == "" {
		return fallbackName(id), p.PhotoURL
	}
	return p.Name, p.PhotoURL
}

func fallbackName(id string) string {
	prefix := id
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	return fmt.Sprintf("Restaurant (%s)", prefix)
}

// MonetaryLeaderboard returns the top actors by accumulated monetary
// donations, straight off the persisted counters.
func (e *Engine) MonetaryLeaderboard(ctx context.Context) ([]MonetaryEntry, error) {
	var profiles []models.ActorProfile
	q := entity.Query{
		Filters:  []entity.Filter{{Field: "total_donated", Op: entity.OpGt, Value: int64(0)}},
		SortBy:   "total_donated",
		SortDesc: true,
		Limit:    int64(e.size),
	}
	if err := e.store.Query(ctx, models.ColProfiles, q, &profiles); err != nil {
		return nil, fmt.Errorf("monetary leaderboard: %w", err)
	}

	entries := make([]MonetaryEntry, 0, len(profiles))
	for _, p := range profiles {
		name := p.Name
		if name == "" {
			name = "Anonymous"
		}
		entries = append(entries, MonetaryEntry{
			ActorID:      p.ID,
			Name:         name,
			PhotoURL:     p.PhotoURL,
			TotalDonated: p.TotalDonated,
		})
	}
	return entries, nil
}
