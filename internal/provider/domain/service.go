package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// ListCommissionsRequest filters the admin commission listing.
type ListCommissionsRequest struct {
	Query      string
	IsApproved *bool
}

// UpdateCommissionRequest carries partial rate overrides; nil fields are
// left untouched.
type UpdateCommissionRequest struct {
	VetCommissionDa           *int64
	DaycareHourlyCommissionDa *int64
	DaycareDailyCommissionDa  *int64
	PetshopCommissionPercent  *int64
}

// ProviderCommission is the admin view of a provider's rates.
type ProviderCommission struct {
	ProviderID                string `json:"providerId"`
	UserID                    string `json:"userId"`
	DisplayName               string `json:"displayName"`
	Email                     string `json:"email"`
	IsApproved                bool   `json:"isApproved"`
	Kind                      Kind   `json:"kind"`
	VetCommissionDa           int64  `json:"vetCommissionDa"`
	DaycareHourlyCommissionDa int64  `json:"daycareHourlyCommissionDa"`
	DaycareDailyCommissionDa  int64  `json:"daycareDailyCommissionDa"`
	PetshopCommissionPercent  int64  `json:"petshopCommissionPercent"`
}

type Service interface {
	ListCommissions(ctx context.Context, req ListCommissionsRequest) ([]ProviderCommission, error)
	GetCommission(ctx context.Context, providerID snowflake.ID) (ProviderCommission, error)
	UpdateCommission(ctx context.Context, providerID snowflake.ID, req UpdateCommissionRequest) (ProviderCommission, error)
	ResetCommission(ctx context.Context, providerID snowflake.ID) (ProviderCommission, error)
	FindByUserID(ctx context.Context, userID snowflake.ID) (*ProviderProfile, error)
}

var (
	ErrNotFound  = errors.New("provider_not_found")
	ErrInvalidID = errors.New("invalid_provider_id")
)
