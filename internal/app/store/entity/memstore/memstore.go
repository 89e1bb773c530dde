// Package memstore is an in-memory entity.Store used by tests and
// local development. It keeps the same semantics as mongostore:
// per-document atomicity, rev bumping, set-union/difference array ops,
// and precondition conflicts. Documents are stored as encoded BSON so
// decode behavior matches the Mongo driver's.
package memstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/domain/faults"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu   sync.Mutex
	cols map[string]map[string][]byte // collection -> id -> bson doc
}

func New() *Store {
	return &Store{cols: map[string]map[string][]byte{}}
}

func (s *Store) Get(ctx context.Context, collection, id string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.cols[collection][id]
	if !ok {
		return faults.ErrNotFound
	}
	return bson.Unmarshal(raw, out)
}

func (s *Store) Query(ctx context.Context, collection string, q entity.Query, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []bson.M
	for _, raw := range s.cols[collection] {
		doc, err := decode(raw)
		if err != nil {
			return err
		}
		ok, err := matches(doc, q.Filters)
		if err != nil {
			return err
		}
		if ok {
			matched = append(matched, doc)
		}
	}

	if q.SortBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			c := compare(matched[i][q.SortBy], matched[j][q.SortBy])
			if q.SortDesc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}

	slice := reflect.ValueOf(out).Elem()
	slice.Set(reflect.MakeSlice(slice.Type(), 0, len(matched)))
	for _, doc := range matched {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		ev := reflect.New(slice.Type().Elem())
		if err := bson.Unmarshal(raw, ev.Interface()); err != nil {
			return err
		}
		slice.Set(reflect.Append(slice, ev.Elem()))
	}
	return nil
}

func (s *Store) Create(ctx context.Context, collection string, doc any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	m, err := decode(raw)
	if err != nil {
		return err
	}
	id, _ := m["_id"].(string)
	if id == "" {
		return fmt.Errorf("create %s: document has no _id", collection)
	}
	m[entity.RevField] = int64(1)
	enc, err := bson.Marshal(m)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.cols[collection]
	if col == nil {
		col = map[string][]byte{}
		s.cols[collection] = col
	}
	if _, exists := col[id]; exists {
		return entity.ErrDuplicateID
	}
	col[id] = enc
	return nil
}

func (s *Store) AtomicUpdate(ctx context.Context, collection, id string, pre *entity.Precondition, ops entity.Ops) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.cols[collection][id]
	if !ok {
		return faults.ErrNotFound
	}
	doc, err := decode(raw)
	if err != nil {
		return err
	}

	if pre != nil {
		if pre.Rev != 0 && compare(doc[entity.RevField], pre.Rev) != 0 {
			return faults.ErrConflict
		}
		for k, want := range pre.Fields {
			if compare(doc[k], want) != 0 {
				return faults.ErrConflict
			}
		}
	}

	for k, v := range ops.Set {
		doc[k] = toBSON(v)
	}
	for k, v := range ops.Inc {
		doc[k] = asInt64(doc[k]) + v
	}
	for k, v := range ops.AddToSet {
		arr, _ := doc[k].(primitive.A)
		found := false
		for _, el := range arr {
			if compare(el, v) == 0 {
				found = true
				break
			}
		}
		if !found {
			doc[k] = append(arr, toBSON(v))
		}
	}
	for k, v := range ops.Pull {
		arr, _ := doc[k].(primitive.A)
		kept := make(primitive.A, 0, len(arr))
		for _, el := range arr {
			if compare(el, v) != 0 {
				kept = append(kept, el)
			}
		}
		doc[k] = kept
	}
	doc[entity.RevField] = asInt64(doc[entity.RevField]) + 1

	enc, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	s.cols[collection][id] = enc
	return nil
}

func decode(raw []byte) (bson.M, error) {
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func matches(doc bson.M, filters []entity.Filter) (bool, error) {
	for _, f := range filters {
		switch f.Op {
		case entity.OpEq:
			if compare(doc[f.Field], f.Value) != 0 {
				return false, nil
			}
		case entity.OpGt:
			if compare(doc[f.Field], f.Value) <= 0 {
				return false, nil
			}
		case entity.OpIn:
			vals, ok := f.Value.([]string)
			if !ok {
				return false, fmt.Errorf("in filter on %s: value must be []string", f.Field)
			}
			hit := false
			for _, v := range vals {
				if compare(doc[f.Field], v) == 0 {
					hit = true
					break
				}
			}
			if !hit {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unknown filter op %q", f.Op)
		}
	}
	return true, nil
}

// toBSON round-trips a single value through BSON encoding so stored
// values have the same types the Mongo driver would produce.
func toBSON(v any) any {
	raw, err := bson.Marshal(bson.M{"v": v})
	if err != nil {
		return v
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return v
	}
	return m["v"]
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

// compare orders two BSON-decoded scalars. Numbers (and DateTime)
// compare numerically, strings lexically; mismatched kinds compare by
// string form so the result is at least deterministic.
func compare(a, b any) int {
	an, aok := toFloat(a)
	bn, bok := toFloat(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}
	afs := fmt.Sprint(a)
	bfs := fmt.Sprint(b)
	switch {
	case afs < bfs:
		return -1
	case afs > bfs:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case primitive.DateTime:
		return float64(n), true
	}
	return 0, false
}
