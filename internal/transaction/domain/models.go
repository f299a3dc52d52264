package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// BookingStatus is the lifecycle of a vet or daycare booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusExpired   BookingStatus = "EXPIRED"
)

// OrderStatus is the lifecycle of a pet-shop order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Booking is a vet appointment. Commission is not stored on the row;
// vet dues are resolved against the provider's current rate at read time.
type Booking struct {
	ID          snowflake.ID  `gorm:"primaryKey"`
	ProviderID  snowflake.ID  `gorm:"not null;index:idx_bookings_provider_scheduled,priority:1"`
	UserID      snowflake.ID  `gorm:"not null"`
	Status      BookingStatus `gorm:"type:text;not null"`
	ScheduledAt time.Time     `gorm:"not null;index:idx_bookings_provider_scheduled,priority:2"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Booking) TableName() string { return "bookings" }

// DaycareBooking snapshots its commission at creation time; a NULL
// snapshot falls back to the platform daily default at read time.
type DaycareBooking struct {
	ID           snowflake.ID  `gorm:"primaryKey"`
	ProviderID   snowflake.ID  `gorm:"not null;index:idx_daycare_bookings_provider_scheduled,priority:1"`
	UserID       snowflake.ID  `gorm:"not null"`
	Status       BookingStatus `gorm:"type:text;not null"`
	CommissionDa *int64        `gorm:"column:commission_da"`
	ScheduledAt  time.Time     `gorm:"not null;index:idx_daycare_bookings_provider_scheduled,priority:2"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (DaycareBooking) TableName() string { return "daycare_bookings" }

// Order snapshots its commission at creation time (percent of subtotal).
type Order struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	ProviderID   snowflake.ID `gorm:"not null;index:idx_orders_provider_placed,priority:1"`
	UserID       snowflake.ID `gorm:"not null"`
	Status       OrderStatus  `gorm:"type:text;not null"`
	SubtotalDa   int64        `gorm:"not null;default:0"`
	CommissionDa int64        `gorm:"not null;default:0"`
	PlacedAt     time.Time    `gorm:"not null;index:idx_orders_provider_placed,priority:2"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }
