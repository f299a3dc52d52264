package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Kind distinguishes the three commission tracks.
type Kind string

const (
	KindVet     Kind = "vet"
	KindDaycare Kind = "daycare"
	KindPetshop Kind = "petshop"
)

// ParseKind normalizes a raw kind tag, defaulting to vet.
func ParseKind(raw string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindDaycare:
		return KindDaycare
	case KindPetshop:
		return KindPetshop
	default:
		return KindVet
	}
}

// IsValidKind reports whether raw names one of the three tracks exactly.
func IsValidKind(raw string) bool {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindVet, KindDaycare, KindPetshop:
		return true
	}
	return false
}

// ProviderProfile identifies a service professional. Override commission
// rates are nullable; platform defaults apply when unset. Profiles are
// soft-archived via IsApproved and never deleted.
type ProviderProfile struct {
	ID                        snowflake.ID   `gorm:"primaryKey"`
	UserID                    snowflake.ID   `gorm:"not null;index:idx_provider_profiles_user"`
	DisplayName               string         `gorm:"type:text;not null"`
	Email                     string         `gorm:"type:text;not null"`
	IsApproved                bool           `gorm:"not null;default:false"`
	Specialties               datatypes.JSON `gorm:"type:jsonb"`
	VetCommissionDa           *int64         `gorm:"column:vet_commission_da"`
	DaycareHourlyCommissionDa *int64         `gorm:"column:daycare_hourly_commission_da"`
	DaycareDailyCommissionDa  *int64         `gorm:"column:daycare_daily_commission_da"`
	PetshopCommissionPercent  *int64         `gorm:"column:petshop_commission_percent"`
	CreatedAt                 time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt                 time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ProviderProfile) TableName() string { return "provider_profiles" }

// Kind extracts the track tag from the specialties JSON, defaulting to vet.
func (p ProviderProfile) Kind() Kind {
	if len(p.Specialties) == 0 {
		return KindVet
	}
	var specialties struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(p.Specialties, &specialties); err != nil {
		return KindVet
	}
	return ParseKind(specialties.Kind)
}
