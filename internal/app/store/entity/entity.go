// Package entity is the storage boundary for the service: a uniform
// get/query/create/atomic-update interface over persisted documents,
// with no business rules.
//
// Every document carries a "rev" field, set to 1 on create and bumped
// by every atomic update. An AtomicUpdate precondition that names the
// rev observed at read time gives conditional compare-and-set
// semantics: if any writer got in between, the update matches nothing
// and the caller sees faults.ErrConflict.
package entity

import (
	"context"
	"errors"
)

// ErrDuplicateID is returned by Create when a document with the same ID
// already exists in the collection.
var ErrDuplicateID = errors.New("document id already exists")

// RevField is the revision counter present on every document.
const RevField = "rev"

// FilterOp is a comparison operator usable in a Query filter.
type FilterOp string

const (
	OpEq FilterOp = "eq"
	OpIn FilterOp = "in"
	OpGt FilterOp = "gt"
)

// Filter restricts a query to documents whose field compares true
// against the value. OpIn expects a []string value.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// Query describes a filtered, ordered, capped read over a collection.
type Query struct {
	Filters  []Filter
	SortBy   string
	SortDesc bool
	Limit    int64
}

// Precondition guards an AtomicUpdate. Rev, when non-zero, must equal
// the document's current rev. Fields, when set, must all match by
// equality. A nil precondition makes the update unconditional (still
// atomic per document).
type Precondition struct {
	Rev    int64
	Fields map[string]any
}

// Ops is the set of field operations applied by one atomic update.
// AddToSet and Pull operate on array-valued fields with set semantics
// so concurrent membership changes never overwrite each other.
type Ops struct {
	Set      map[string]any
	Inc      map[string]int64
	AddToSet map[string]any
	Pull     map[string]any
}

// Empty reports whether the op set would change nothing.
func (o Ops) Empty() bool {
	return len(o.Set) == 0 && len(o.Inc) == 0 && len(o.AddToSet) == 0 && len(o.Pull) == 0
}

// Store is the adapter implemented by mongostore (production) and
// memstore (tests, local development).
type Store interface {
	// Get decodes the document with the given ID into out, which must
	// be a pointer to a struct with bson tags. Returns
	// faults.ErrNotFound if no such document exists.
	Get(ctx context.Context, collection, id string, out any) error

	// Query decodes all matching documents into out, which must be a
	// pointer to a slice.
	Query(ctx context.Context, collection string, q Query, out any) error

	// Create inserts doc, whose _id must already be set by the caller.
	// Returns ErrDuplicateID if the ID is taken.
	Create(ctx context.Context, collection string, doc any) error

	// AtomicUpdate applies ops to one document as a single conditional
	// write. Returns faults.ErrNotFound if the document does not exist
	// and faults.ErrConflict if it exists but the precondition no
	// longer holds.
	AtomicUpdate(ctx context.Context, collection, id string, pre *Precondition, ops Ops) error
}
