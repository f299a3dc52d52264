package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// AdminCollection records how much of a provider's monthly commission
// the platform has collected. One row per (provider, month, kind); a
// missing row means nothing collected. Rows that reach zero are deleted
// rather than kept.
type AdminCollection struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	ProviderID snowflake.ID `gorm:"not null;uniqueIndex:ux_admin_collections_provider_month_kind,priority:1"`
	Month      string       `gorm:"type:text;not null;uniqueIndex:ux_admin_collections_provider_month_kind,priority:2"`
	Kind       string       `gorm:"type:text;not null;uniqueIndex:ux_admin_collections_provider_month_kind,priority:3"`
	AmountDa   int64        `gorm:"not null;default:0"`
	Note       *string      `gorm:"type:text"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AdminCollection) TableName() string { return "admin_collections" }
