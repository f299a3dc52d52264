package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	providerdomain "github.com/fennecpets/fennec/internal/provider/domain"
)

// History depth bounds for the monthly endpoints.
const (
	DefaultHistoryMonths = 12
	MinHistoryMonths     = 1
	MaxHistoryMonths     = 120
)

// ClampMonths bounds a requested history depth to [1, 120].
func ClampMonths(months int) int {
	if months < MinHistoryMonths {
		return MinHistoryMonths
	}
	if months > MaxHistoryMonths {
		return MaxHistoryMonths
	}
	return months
}

// MonthRow is the reconciled view of one provider-month on one track.
// DueDa, CollectedDa and NetDa mirror TotalCommission, CollectedAmount
// and NetAmount; older dashboard clients still read the short names.
type MonthRow struct {
	Month           string              `json:"month"`
	Kind            providerdomain.Kind `json:"kind"`
	BookingCount    int64               `json:"bookingCount"`
	TotalAmount     int64               `json:"totalAmount"`
	TotalCommission int64               `json:"totalCommission"`
	NetAmount       int64               `json:"netAmount"`
	Collected       bool                `json:"collected"`
	CollectedAmount int64               `json:"collectedAmount"`

	Pending   int64 `json:"PENDING"`
	Confirmed int64 `json:"CONFIRMED"`
	Completed int64 `json:"COMPLETED"`
	Cancelled int64 `json:"CANCELLED"`

	DueDa       int64 `json:"dueDa"`
	CollectedDa int64 `json:"collectedDa"`
	NetDa       int64 `json:"netDa"`
}

// CollectRequest marks a provider-month collected. A nil Amount means
// "collect in full"; any explicit amount is clamped to [0, due].
type CollectRequest struct {
	ProviderID snowflake.ID
	Month      string
	Kind       providerdomain.Kind
	Amount     *int64
	Note       *string
}

// AdjustRequest adds to or subtracts from a collection record. Negative
// amounts are treated as zero.
type AdjustRequest struct {
	ProviderID snowflake.ID
	Month      string
	Kind       providerdomain.Kind
	Amount     int64
	Note       *string
}

// KindStats aggregates one track inside a global stats response.
type KindStats struct {
	Kind             providerdomain.Kind `json:"kind"`
	ProviderCount    int64               `json:"providerCount"`
	TransactionCount int64               `json:"transactionCount"`
	TotalDueDa       int64               `json:"totalDueDa"`
	TotalCollectedDa int64               `json:"totalCollectedDa"`
	TotalRemainingDa int64               `json:"totalRemainingDa"`
}

// GlobalStats sums commission exposure across qualifying providers over
// a trailing window of months.
type GlobalStats struct {
	Months           int         `json:"months"`
	ProviderCount    int64       `json:"providerCount"`
	TransactionCount int64       `json:"transactionCount"`
	TotalDueDa       int64       `json:"totalDueDa"`
	TotalCollectedDa int64       `json:"totalCollectedDa"`
	TotalRemainingDa int64       `json:"totalRemainingDa"`
	Tracks           []KindStats `json:"tracks"`
}

type Service interface {
	MonthRow(ctx context.Context, providerID snowflake.ID, month string, kind providerdomain.Kind) (MonthRow, error)
	HistoryMonthly(ctx context.Context, providerID snowflake.ID, months int, kind providerdomain.Kind) ([]MonthRow, error)
	Collect(ctx context.Context, req CollectRequest) (MonthRow, error)
	AddToCollection(ctx context.Context, req AdjustRequest) (MonthRow, error)
	SubtractFromCollection(ctx context.Context, req AdjustRequest) (MonthRow, error)
	Uncollect(ctx context.Context, providerID snowflake.ID, month string, kind providerdomain.Kind) (MonthRow, error)
	GlobalStats(ctx context.Context, months int, kind *providerdomain.Kind) (GlobalStats, error)
}

var ErrInvalidKind = errors.New("invalid_kind")
