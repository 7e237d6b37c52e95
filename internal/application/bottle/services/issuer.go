// Package services implements the bottle-ledger collaborators used by the
// order generation flow.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/freshvale-inc/freshvale/internal/domain/bottle"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

// Issuer hands available bottles to a user at delivery time, recording each
// issue in the ledger. A partial issue is not an error: when stock runs short
// the caller learns how many bottles actually went out.
type Issuer struct {
	bottleRepo bottle.Repository
	logger     logger.Interface
}

func NewIssuer(bottleRepo bottle.Repository, logger logger.Interface) *Issuer {
	return &Issuer{bottleRepo: bottleRepo, logger: logger}
}

// IssueForDelivery issues up to count bottles to the user and returns how
// many were issued. Runs in the caller's transaction context.
func (s *Issuer) IssueForDelivery(ctx context.Context, userID uint, count int, asOf time.Time) (int, error) {
	if count <= 0 {
		return 0, nil
	}

	available, err := s.bottleRepo.FindAvailable(ctx, count)
	if err != nil {
		return 0, fmt.Errorf("failed to find available bottles: %w", err)
	}

	issued := 0
	for _, b := range available {
		if err := b.Issue(userID, asOf); err != nil {
			return issued, err
		}
		if err := s.bottleRepo.Update(ctx, b); err != nil {
			return issued, fmt.Errorf("failed to update bottle: %w", err)
		}
		issued++
	}

	if issued < count {
		s.logger.Warnw("bottle stock short for delivery",
			"user_id", userID,
			"requested", count,
			"issued", issued,
		)
	}

	return issued, nil
}

// ProcessReturn records returned bottles for a user. Bottles not currently
// issued to that user are skipped so one household's return cannot credit
// another's ledger. Damaged bottles forfeit the deposit refund. Returns how
// many bottles were processed and the total refund.
func (s *Issuer) ProcessReturn(ctx context.Context, userID uint, bottleIDs []uint, condition string, asOf time.Time) (int, float64, error) {
	processed := 0
	refund := 0.0

	for _, id := range bottleIDs {
		b, err := s.bottleRepo.GetByID(ctx, id)
		if err != nil {
			return processed, refund, fmt.Errorf("failed to get bottle: %w", err)
		}
		if b == nil {
			continue
		}
		if b.UserID() == nil || *b.UserID() != userID {
			s.logger.Warnw("bottle not issued to returning user, skipping",
				"bottle_sid", b.SID(),
				"user_id", userID,
			)
			continue
		}

		deposit := b.DepositAmount()
		if err := b.Return(condition, asOf); err != nil {
			return processed, refund, err
		}
		if err := s.bottleRepo.Update(ctx, b); err != nil {
			return processed, refund, fmt.Errorf("failed to update bottle: %w", err)
		}

		processed++
		if condition != "damaged" {
			refund += deposit
		}
	}

	return processed, refund, nil
}
