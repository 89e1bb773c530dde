package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridge/carebridge/internal/app/aggregate"
	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/domain/models"
	"go.uber.org/zap"
)

// PaymentConfirmation is the payload the payment relay delivers once
// per completed external charge. Amount is in minor units.
type PaymentConfirmation struct {
	ActorID   string
	Amount    int64
	SessionID string
}

// ConfirmPayment applies the monetary-donation increment for a
// confirmed charge, at most once per payment session. The processed-
// session record is the dedup key: a redelivered confirmation finds
// the record already present and does nothing.
func (c *Coordinator) ConfirmPayment(ctx context.Context, conf PaymentConfirmation) error {
	if conf.SessionID == "" {
		return errBadSession
	}
	if conf.Amount <= 0 {
		return errBadAmount
	}

	event := models.PaymentEvent{
		ID:          conf.SessionID,
		ActorID:     conf.ActorID,
		Amount:      conf.Amount,
		ProcessedAt: now(),
	}
	if err := c.store.Create(ctx, models.ColPayments, event); err != nil {
		if errors.Is(err, entity.ErrDuplicateID) {
			c.log.Info("payment confirmation replayed, ignoring",
				zap.String("session_id", conf.SessionID))
			return nil
		}
		return fmt.Errorf("confirm payment: %w", err)
	}

	ops := entity.Ops{Inc: map[string]int64{"total_donated": conf.Amount}}
	if err := c.store.AtomicUpdate(ctx, models.ColProfiles, conf.ActorID, nil, ops); err != nil {
		// The session record exists but the counter did not move; the
		// relay will not redeliver, so this is worth a loud log line.
		c.log.Error("payment recorded but profile increment failed",
			zap.String("session_id", conf.SessionID),
			zap.String("actor_id", conf.ActorID),
			zap.Error(err))
		return fmt.Errorf("confirm payment: increment: %w", err)
	}

	c.log.Info("payment applied",
		zap.String("session_id", conf.SessionID),
		zap.String("actor_id", conf.ActorID),
		zap.Int64("amount", conf.Amount))
	return nil
}

// DonationLeaderboard returns the top restaurants by claimed donations.
func (c *Coordinator) DonationLeaderboard(ctx context.Context) ([]aggregate.DonationEntry, error) {
	return c.agg.DonationLeaderboard(ctx)
}

// MonetaryLeaderboard returns the top actors by monetary donations.
func (c *Coordinator) MonetaryLeaderboard(ctx context.Context) ([]aggregate.MonetaryEntry, error) {
	return c.agg.MonetaryLeaderboard(ctx)
}
