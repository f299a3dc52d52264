package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/fennecpets/fennec/internal/config"
	providerdomain "github.com/fennecpets/fennec/internal/provider/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Commission *config.CommissionHolder
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	commission *config.CommissionHolder
}

func NewService(p Params) providerdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("provider.service"),
		commission: p.Commission,
	}
}

func (s *Service) ListCommissions(ctx context.Context, req providerdomain.ListCommissionsRequest) ([]providerdomain.ProviderCommission, error) {
	query := s.db.WithContext(ctx).Model(&providerdomain.ProviderProfile{})

	if req.IsApproved != nil {
		query = query.Where("is_approved = ?", *req.IsApproved)
	}
	if q := strings.TrimSpace(req.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(display_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var profiles []providerdomain.ProviderProfile
	if err := query.Order("display_name ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}

	defaults := s.commission.Get()
	out := make([]providerdomain.ProviderCommission, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, commissionView(profile, defaults))
	}
	return out, nil
}

func (s *Service) GetCommission(ctx context.Context, providerID snowflake.ID) (providerdomain.ProviderCommission, error) {
	profile, err := s.findProfile(ctx, providerID)
	if err != nil {
		return providerdomain.ProviderCommission{}, err
	}
	return commissionView(*profile, s.commission.Get()), nil
}

func (s *Service) UpdateCommission(ctx context.Context, providerID snowflake.ID, req providerdomain.UpdateCommissionRequest) (providerdomain.ProviderCommission, error) {
	profile, err := s.findProfile(ctx, providerID)
	if err != nil {
		return providerdomain.ProviderCommission{}, err
	}

	updates := map[string]any{}
	if req.VetCommissionDa != nil {
		updates["vet_commission_da"] = clampFloor(*req.VetCommissionDa)
	}
	if req.DaycareHourlyCommissionDa != nil {
		updates["daycare_hourly_commission_da"] = clampFloor(*req.DaycareHourlyCommissionDa)
	}
	if req.DaycareDailyCommissionDa != nil {
		updates["daycare_daily_commission_da"] = clampFloor(*req.DaycareDailyCommissionDa)
	}
	if req.PetshopCommissionPercent != nil {
		updates["petshop_commission_percent"] = clampPercent(*req.PetshopCommissionPercent)
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).
			Model(&providerdomain.ProviderProfile{}).
			Where("id = ?", providerID).
			Updates(updates).Error; err != nil {
			return providerdomain.ProviderCommission{}, err
		}
		profile, err = s.findProfile(ctx, providerID)
		if err != nil {
			return providerdomain.ProviderCommission{}, err
		}
	}

	return commissionView(*profile, s.commission.Get()), nil
}

func (s *Service) ResetCommission(ctx context.Context, providerID snowflake.ID) (providerdomain.ProviderCommission, error) {
	defaults := s.commission.Get()
	return s.UpdateCommission(ctx, providerID, providerdomain.UpdateCommissionRequest{
		VetCommissionDa:           &defaults.VetCommissionDa,
		DaycareHourlyCommissionDa: &defaults.DaycareHourlyCommissionDa,
		DaycareDailyCommissionDa:  &defaults.DaycareDailyCommissionDa,
		PetshopCommissionPercent:  &defaults.PetshopCommissionPercent,
	})
}

func (s *Service) FindByUserID(ctx context.Context, userID snowflake.ID) (*providerdomain.ProviderProfile, error) {
	var profile providerdomain.ProviderProfile
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, providerdomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) findProfile(ctx context.Context, providerID snowflake.ID) (*providerdomain.ProviderProfile, error) {
	if providerID == 0 {
		return nil, providerdomain.ErrInvalidID
	}
	var profile providerdomain.ProviderProfile
	err := s.db.WithContext(ctx).Where("id = ?", providerID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, providerdomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func commissionView(profile providerdomain.ProviderProfile, defaults config.CommissionConfig) providerdomain.ProviderCommission {
	return providerdomain.ProviderCommission{
		ProviderID:                profile.ID.String(),
		UserID:                    profile.UserID.String(),
		DisplayName:               profile.DisplayName,
		Email:                     profile.Email,
		IsApproved:                profile.IsApproved,
		Kind:                      profile.Kind(),
		VetCommissionDa:           orDefault(profile.VetCommissionDa, defaults.VetCommissionDa),
		DaycareHourlyCommissionDa: orDefault(profile.DaycareHourlyCommissionDa, defaults.DaycareHourlyCommissionDa),
		DaycareDailyCommissionDa:  orDefault(profile.DaycareDailyCommissionDa, defaults.DaycareDailyCommissionDa),
		PetshopCommissionPercent:  orDefault(profile.PetshopCommissionPercent, defaults.PetshopCommissionPercent),
	}
}

func orDefault(value *int64, def int64) int64 {
	if value == nil {
		return def
	}
	return *value
}

func clampFloor(value int64) int64 {
	if value < 0 {
		return 0
	}
	return value
}

func clampPercent(value int64) int64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
