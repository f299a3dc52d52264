package service

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/fennecpets/fennec/internal/clock"
	"github.com/fennecpets/fennec/internal/config"
	"github.com/fennecpets/fennec/internal/earnings/domain"
	"github.com/fennecpets/fennec/internal/earnings/monthkey"
	providerdomain "github.com/fennecpets/fennec/internal/provider/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	Commission *config.CommissionHolder
	GenID      *snowflake.Node
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	commission *config.CommissionHolder
	genID      *snowflake.Node
}

func NewService(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("earnings.service"),
		clock:      p.Clock,
		commission: p.Commission,
		genID:      p.GenID,
	}
}

// MonthRow reconciles a single provider-month on one track.
func (s *Service) MonthRow(ctx context.Context, providerID snowflake.ID, month string, kind providerdomain.Kind) (domain.MonthRow, error) {
	profile, err := s.findProfile(ctx, s.db.WithContext(ctx), providerID)
	if err != nil {
		return domain.MonthRow{}, err
	}
	return s.computeMonthRow(ctx, s.db.WithContext(ctx), profile, monthkey.Canonicalize(month), kind)
}

// HistoryMonthly returns the last N month rows, most-recent first. The
// window is clamped to [1, 120] months.
func (s *Service) HistoryMonthly(ctx context.Context, providerID snowflake.ID, months int, kind providerdomain.Kind) ([]domain.MonthRow, error) {
	profile, err := s.findProfile(ctx, s.db.WithContext(ctx), providerID)
	if err != nil {
		return nil, err
	}

	keys := monthkey.LastN(s.clock.Now(), domain.ClampMonths(months))
	rows := make([]domain.MonthRow, 0, len(keys))
	for _, key := range keys {
		row, err := s.computeMonthRow(ctx, s.db.WithContext(ctx), profile, key, kind)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Service) findProfile(ctx context.Context, tx *gorm.DB, providerID snowflake.ID) (*providerdomain.ProviderProfile, error) {
	if providerID == 0 {
		return nil, providerdomain.ErrInvalidID
	}
	var profile providerdomain.ProviderProfile
	err := tx.Where("id = ?", providerID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, providerdomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
