// Package coordinator exposes the service's operations. Each operation
// takes the acting identity, asks the workflow and capability layers
// whether it is legal, asks the allocation engine for the state delta,
// and commits through the entity store's atomic update primitive.
//
// Errors from the faults taxonomy are propagated to the caller
// verbatim. The only retry anywhere is the single signup retry on
// optimistic conflict.
package coordinator

import (
	"fmt"
	"time"

	"github.com/carebridge/carebridge/internal/app/aggregate"
	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/domain/faults"
	"go.uber.org/zap"
)

// Config carries the store-facing limits. Zero values fall back to the
// defaults below.
type Config struct {
	// InFilterLimit is the store's ceiling on multi-value equality
	// filters; the visible-issue fan-out is batched to stay under it.
	InFilterLimit int

	// VisibleIssueLimit caps the merged visible-issue result.
	VisibleIssueLimit int

	// ListLimit caps the plain listing queries.
	ListLimit int
}

const (
	defaultInFilterLimit     = 30
	defaultVisibleIssueLimit = 50
	defaultListLimit         = 50
)

type Coordinator struct {
	store entity.Store
	agg   *aggregate.Engine
	cfg   Config
	log   *zap.Logger
}

// New wires a Coordinator to its store. The store handle is injected
// here and nowhere else; there is no ambient global.
func New(store entity.Store, logger *zap.Logger, cfg Config) *Coordinator {
	if cfg.InFilterLimit <= 0 {
		cfg.InFilterLimit = defaultInFilterLimit
	}
	if cfg.VisibleIssueLimit <= 0 {
		cfg.VisibleIssueLimit = defaultVisibleIssueLimit
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = defaultListLimit
	}
	return &Coordinator{
		store: store,
		agg:   aggregate.New(store, logger),
		cfg:   cfg,
		log:   logger,
	}
}

var (
	errBadSpots    = fmt.Errorf("%w: spots must be a positive integer", faults.ErrInvalidInput)
	errBadAmount   = fmt.Errorf("%w: amount must be positive", faults.ErrInvalidInput)
	errBadSession  = fmt.Errorf("%w: payment session id required", faults.ErrInvalidInput)
	errEmptyField  = fmt.Errorf("%w: required field missing", faults.ErrInvalidInput)
	errBadCategory = fmt.Errorf("%w: category required", faults.ErrInvalidInput)
)

func now() time.Time { return time.Now().UTC() }
