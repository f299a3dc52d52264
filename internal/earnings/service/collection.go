package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fennecpets/fennec/internal/earnings/domain"
	"github.com/fennecpets/fennec/internal/earnings/monthkey"
	providerdomain "github.com/fennecpets/fennec/internal/provider/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Collect marks a provider-month collected, in full when no amount is
// given. Explicit amounts are clamped to [0, due]. The write is absolute:
// calling twice with the same amount is a no-op.
func (s *Service) Collect(ctx context.Context, req domain.CollectRequest) (domain.MonthRow, error) {
	month := monthkey.Canonicalize(req.Month)
	var out domain.MonthRow

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.findProfile(ctx, tx, req.ProviderID)
		if err != nil {
			return err
		}
		row, err := s.computeMonthRow(ctx, tx, profile, month, req.Kind)
		if err != nil {
			return err
		}

		amount := row.TotalCommission
		if req.Amount != nil {
			amount = clampAmount(*req.Amount, row.TotalCommission)
		}

		now := s.clock.Now()
		err = tx.Exec(`
			INSERT INTO admin_collections (id, provider_id, month, kind, amount_da, note, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (provider_id, month, kind) DO UPDATE SET
				amount_da = excluded.amount_da,
				note = COALESCE(excluded.note, admin_collections.note),
				updated_at = excluded.updated_at`,
			s.genID.Generate(), profile.ID, month, string(req.Kind), amount, req.Note, now, now).Error
		if err != nil {
			return err
		}
		if err := s.dropIfZero(tx, profile.ID, month, req.Kind); err != nil {
			return err
		}

		out, err = s.computeMonthRow(ctx, tx, profile, month, req.Kind)
		return err
	})
	if err != nil {
		return domain.MonthRow{}, err
	}

	s.log.Info("collection recorded",
		zap.String("provider_id", req.ProviderID.String()),
		zap.String("month", month),
		zap.String("kind", string(req.Kind)),
		zap.Int64("collected_da", out.CollectedAmount),
	)
	return out, nil
}

// AddToCollection increments the collected amount, saturating at the
// current due. The increment and clamp happen in one conditioned SQL
// statement so concurrent adds cannot lose updates or overshoot.
func (s *Service) AddToCollection(ctx context.Context, req domain.AdjustRequest) (domain.MonthRow, error) {
	month := monthkey.Canonicalize(req.Month)
	delta := floorZero(req.Amount)
	var out domain.MonthRow

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.findProfile(ctx, tx, req.ProviderID)
		if err != nil {
			return err
		}
		row, err := s.computeMonthRow(ctx, tx, profile, month, req.Kind)
		if err != nil {
			return err
		}
		due := row.TotalCommission

		now := s.clock.Now()
		err = tx.Exec(`
			INSERT INTO admin_collections (id, provider_id, month, kind, amount_da, note, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (provider_id, month, kind) DO UPDATE SET
				amount_da = CASE
					WHEN admin_collections.amount_da + ? > ? THEN ?
					ELSE admin_collections.amount_da + ?
				END,
				note = COALESCE(excluded.note, admin_collections.note),
				updated_at = excluded.updated_at`,
			s.genID.Generate(), profile.ID, month, string(req.Kind), clampAmount(delta, due), req.Note, now, now,
			delta, due, due, delta).Error
		if err != nil {
			return err
		}
		if err := s.dropIfZero(tx, profile.ID, month, req.Kind); err != nil {
			return err
		}

		out, err = s.computeMonthRow(ctx, tx, profile, month, req.Kind)
		return err
	})
	if err != nil {
		return domain.MonthRow{}, err
	}
	return out, nil
}

// SubtractFromCollection decrements the collected amount, flooring at
// zero. A record that reaches zero is deleted; a missing record is a
// no-op rather than an error.
func (s *Service) SubtractFromCollection(ctx context.Context, req domain.AdjustRequest) (domain.MonthRow, error) {
	month := monthkey.Canonicalize(req.Month)
	delta := floorZero(req.Amount)
	var out domain.MonthRow

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.findProfile(ctx, tx, req.ProviderID)
		if err != nil {
			return err
		}

		err = tx.Exec(`
			UPDATE admin_collections SET
				amount_da = CASE WHEN amount_da - ? < 0 THEN 0 ELSE amount_da - ? END,
				note = COALESCE(?, note),
				updated_at = ?
			WHERE provider_id = ? AND month = ? AND kind = ?`,
			delta, delta, req.Note, s.clock.Now(),
			profile.ID, month, string(req.Kind)).Error
		if err != nil {
			return err
		}
		if err := s.dropIfZero(tx, profile.ID, month, req.Kind); err != nil {
			return err
		}

		out, err = s.computeMonthRow(ctx, tx, profile, month, req.Kind)
		return err
	})
	if err != nil {
		return domain.MonthRow{}, err
	}
	return out, nil
}

// Uncollect deletes the collection record outright. Idempotent.
func (s *Service) Uncollect(ctx context.Context, providerID snowflake.ID, month string, kind providerdomain.Kind) (domain.MonthRow, error) {
	month = monthkey.Canonicalize(month)
	var out domain.MonthRow

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.findProfile(ctx, tx, providerID)
		if err != nil {
			return err
		}

		err = tx.Exec(`
			DELETE FROM admin_collections
			WHERE provider_id = ? AND month = ? AND kind = ?`,
			profile.ID, month, string(kind)).Error
		if err != nil {
			return err
		}

		out, err = s.computeMonthRow(ctx, tx, profile, month, kind)
		return err
	})
	if err != nil {
		return domain.MonthRow{}, err
	}

	s.log.Info("collection cleared",
		zap.String("provider_id", providerID.String()),
		zap.String("month", month),
		zap.String("kind", string(kind)),
	)
	return out, nil
}

// dropIfZero removes a collection record whose amount has reached zero,
// keeping "nothing collected" represented by row absence.
func (s *Service) dropIfZero(tx *gorm.DB, providerID snowflake.ID, month string, kind providerdomain.Kind) error {
	return tx.Exec(`
		DELETE FROM admin_collections
		WHERE provider_id = ? AND month = ? AND kind = ? AND amount_da = 0`,
		providerID, month, string(kind)).Error
}

func clampAmount(amount, max int64) int64 {
	if amount < 0 {
		return 0
	}
	if amount > max {
		return max
	}
	return amount
}

func floorZero(amount int64) int64 {
	if amount < 0 {
		return 0
	}
	return amount
}
