// Package mongostore implements the entity.Store adapter on MongoDB.
//
// Preconditions become part of the update filter, so the conditional
// check and the write are one server-side operation. A matched count of
// zero is disambiguated into not-found vs conflict with a follow-up
// existence check.
package mongostore

import (
	"context"
	"fmt"

	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/domain/faults"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, collection, id string, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return faults.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, collection string, q entity.Query, out any) error {
	filter := bson.M{}
	for _, f := range q.Filters {
		switch f.Op {
		case entity.OpEq:
			filter[f.Field] = f.Value
		case entity.OpIn:
			filter[f.Field] = bson.M{"$in": f.Value}
		case entity.OpGt:
			filter[f.Field] = bson.M{"$gt": f.Value}
		default:
			return fmt.Errorf("query %s: unknown filter op %q", collection, f.Op)
		}
	}

	opts := options.Find()
	if q.SortBy != "" {
		dir := 1
		if q.SortDesc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.SortBy, Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("query %s: %w", collection, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("query %s: decode: %w", collection, err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, collection string, doc any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("create %s: encode: %w", collection, err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("create %s: decode: %w", collection, err)
	}
	m[entity.RevField] = int64(1)

	if _, err := s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return entity.ErrDuplicateID
		}
		return fmt.Errorf("create %s: %w", collection, err)
	}
	return nil
}

func (s *Store) AtomicUpdate(ctx context.Context, collection, id string, pre *entity.Precondition, ops entity.Ops) error {
	filter := bson.M{"_id": id}
	if pre != nil {
		if pre.Rev != 0 {
			filter[entity.RevField] = pre.Rev
		}
		for k, v := range pre.Fields {
			filter[k] = v
		}
	}

	update := bson.M{}
	if len(ops.Set) > 0 {
		update["$set"] = bson.M(ops.Set)
	}
	inc := bson.M{entity.RevField: int64(1)}
	for k, v := range ops.Inc {
		inc[k] = v
	}
	update["$inc"] = inc
	if len(ops.AddToSet) > 0 {
		update["$addToSet"] = bson.M(ops.AddToSet)
	}
	if len(ops.Pull) > 0 {
		update["$pull"] = bson.M(ops.Pull)
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the document is gone or the precondition
	// lost a race.
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("update %s/%s: recheck: %w", collection, id, err)
	}
	if n == 0 {
		return faults.ErrNotFound
	}
	return faults.ErrConflict
}
