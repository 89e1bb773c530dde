package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carebridge/carebridge/internal/domain/models"
)

// EnsureIndexes creates the indexes the allocation queries depend on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	byCollection := map[string][]mongo.IndexModel{
		models.ColIssues: {
			// Visible-issue fan-out: category batches sorted by recency
			{
				Keys:    bson.D{{Key: "category", Value: 1}, {Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("idx_issues_category_ts"),
			},
			// Reporter's own issues
			{
				Keys:    bson.D{{Key: "reporter_id", Value: 1}, {Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("idx_issues_reporter"),
			},
		},
		models.ColOpportunities: {
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_opps_status"),
			},
			{
				Keys:    bson.D{{Key: "org_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_opps_org"),
			},
		},
		models.ColDonations: {
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_donations_status"),
			},
			{
				Keys:    bson.D{{Key: "restaurant_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_donations_restaurant"),
			},
		},
		models.ColRequests: {
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_requests_status"),
			},
			{
				Keys:    bson.D{{Key: "ngo_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_requests_ngo"),
			},
		},
		models.ColProfiles: {
			// Monetary leaderboard scan
			{
				Keys:    bson.D{{Key: "total_donated", Value: -1}},
				Options: options.Index().SetName("idx_profiles_donated"),
			},
		},
	}

	for col, indexes := range byCollection {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}
	return nil
}
