package booking

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bundleRepo "wezet/database/repository/bundle"
	redemptionRepo "wezet/database/repository/redemption"
	"wezet/models"
)

// Ledger debits bundle credits and redemption code uses. Both debits are
// single conditional decrements at the storage layer; this service only
// translates a missed decrement into the precise failure.
type Ledger interface {
	UseCredit(ctx context.Context, purchaseID string) (*models.BundlePurchase, error)
	RefundCredit(ctx context.Context, purchaseID string) error
	RedeemCode(ctx context.Context, code, userID string) (*models.RedemptionCode, error)
	RefundCodeUse(ctx context.Context, code string) error
}

// DefaultLedger implements Ledger.
type DefaultLedger struct {
	Bundles bundleRepo.BundlePurchaseRepository
	Codes   redemptionRepo.RedemptionCodeRepository
	Logger  *zap.Logger
}

func (l *DefaultLedger) UseCredit(ctx context.Context, purchaseID string) (*models.BundlePurchase, error) {
	purchase, err := l.Bundles.UseCredit(ctx, purchaseID)
	if err == nil {
		if l.Logger != nil {
			l.Logger.Info("bundle credit used",
				zap.String("purchaseID", purchaseID),
				zap.Int("remaining", purchase.RemainingCredits))
		}
		return purchase, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("credit debit failed: %w", err)
	}

	// The conditional decrement matched nothing: figure out why.
	if _, getErr := l.Bundles.GetByID(ctx, purchaseID); getErr != nil {
		if errors.Is(getErr, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("bundle purchase %s: %w", purchaseID, ErrNotFound)
		}
		return nil, fmt.Errorf("bundle purchase lookup failed: %w", getErr)
	}
	return nil, fmt.Errorf("bundle purchase %s: %w", purchaseID, ErrCreditExhausted)
}

func (l *DefaultLedger) RefundCredit(ctx context.Context, purchaseID string) error {
	return l.Bundles.RefundCredit(ctx, purchaseID)
}

func (l *DefaultLedger) RedeemCode(ctx context.Context, code, userID string) (*models.RedemptionCode, error) {
	rc, err := l.Codes.Redeem(ctx, code, userID)
	if err == nil {
		if l.Logger != nil {
			l.Logger.Info("redemption code used",
				zap.String("code", code),
				zap.Int("remainingUses", rc.RemainingUses))
		}
		return rc, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("code redemption failed: %w", err)
	}

	existing, getErr := l.Codes.GetByCode(ctx, code)
	if getErr != nil {
		if errors.Is(getErr, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("redemption code: %w", ErrCodeInvalid)
		}
		return nil, fmt.Errorf("redemption code lookup failed: %w", getErr)
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("redemption code: %w", ErrCodeNotOwned)
	}
	// Owned but expired or out of uses.
	return nil, fmt.Errorf("redemption code: %w", ErrCodeInvalid)
}

func (l *DefaultLedger) RefundCodeUse(ctx context.Context, code string) error {
	return l.Codes.RefundUse(ctx, code)
}
