package service

import (
	"context"
	"errors"

	"github.com/fennecpets/fennec/internal/earnings/domain"
	"github.com/fennecpets/fennec/internal/earnings/monthkey"
	providerdomain "github.com/fennecpets/fennec/internal/provider/domain"
	transactiondomain "github.com/fennecpets/fennec/internal/transaction/domain"
	"gorm.io/gorm"
)

type statusCount struct {
	Status string
	Count  int64
}

// computeMonthRow builds the reconciled row for one provider-month on
// one track. month must already be canonical. Vet dues multiply the
// completed count by the provider's current effective rate, so rate
// changes apply retroactively; daycare and petshop dues sum per-row
// commission snapshots and are immune to later rate changes.
func (s *Service) computeMonthRow(ctx context.Context, tx *gorm.DB, profile *providerdomain.ProviderProfile, month string, kind providerdomain.Kind) (domain.MonthRow, error) {
	from, to := monthkey.Bounds(month)
	defaults := s.commission.Get()

	row := domain.MonthRow{Month: month, Kind: kind}

	switch kind {
	case providerdomain.KindVet:
		var counts []statusCount
		err := tx.Raw(`
			SELECT status, COUNT(1) AS count
			FROM bookings
			WHERE provider_id = ? AND scheduled_at >= ? AND scheduled_at < ?
			GROUP BY status`, profile.ID, from, to).Scan(&counts).Error
		if err != nil {
			return domain.MonthRow{}, err
		}
		fillBookingCounts(&row, counts)
		rate := effectiveRate(profile.VetCommissionDa, defaults.VetCommissionDa)
		row.TotalCommission = row.Completed * rate

	case providerdomain.KindDaycare:
		var counts []statusCount
		err := tx.Raw(`
			SELECT status, COUNT(1) AS count
			FROM daycare_bookings
			WHERE provider_id = ? AND scheduled_at >= ? AND scheduled_at < ?
			GROUP BY status`, profile.ID, from, to).Scan(&counts).Error
		if err != nil {
			return domain.MonthRow{}, err
		}
		fillBookingCounts(&row, counts)
		var due int64
		err = tx.Raw(`
			SELECT COALESCE(SUM(COALESCE(commission_da, ?)), 0)
			FROM daycare_bookings
			WHERE provider_id = ? AND status = ? AND scheduled_at >= ? AND scheduled_at < ?`,
			effectiveRate(profile.DaycareDailyCommissionDa, defaults.DaycareDailyCommissionDa),
			profile.ID, transactiondomain.BookingStatusCompleted, from, to).Scan(&due).Error
		if err != nil {
			return domain.MonthRow{}, err
		}
		row.TotalCommission = due

	case providerdomain.KindPetshop:
		var counts []statusCount
		err := tx.Raw(`
			SELECT status, COUNT(1) AS count
			FROM orders
			WHERE provider_id = ? AND placed_at >= ? AND placed_at < ?
			GROUP BY status`, profile.ID, from, to).Scan(&counts).Error
		if err != nil {
			return domain.MonthRow{}, err
		}
		fillOrderCounts(&row, counts)
		var totals struct {
			Commission int64
			Subtotal   int64
		}
		err = tx.Raw(`
			SELECT COALESCE(SUM(commission_da), 0) AS commission, COALESCE(SUM(subtotal_da), 0) AS subtotal
			FROM orders
			WHERE provider_id = ? AND status = ? AND placed_at >= ? AND placed_at < ?`,
			profile.ID, transactiondomain.OrderStatusDelivered, from, to).Scan(&totals).Error
		if err != nil {
			return domain.MonthRow{}, err
		}
		row.TotalCommission = totals.Commission
		row.TotalAmount = totals.Subtotal

	default:
		return domain.MonthRow{}, domain.ErrInvalidKind
	}

	row.BookingCount = row.Completed

	// Collection overlay. Stored amounts are clamped to the recomputed
	// due so that shrinking dues never leave collected > due.
	var record domain.AdminCollection
	err := tx.Where("provider_id = ? AND month = ? AND kind = ?", profile.ID, month, string(kind)).
		First(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.MonthRow{}, err
	}
	if err == nil {
		collected := record.AmountDa
		if collected > row.TotalCommission {
			collected = row.TotalCommission
		}
		if collected < 0 {
			collected = 0
		}
		row.CollectedAmount = collected
	}

	row.NetAmount = row.TotalCommission - row.CollectedAmount
	if row.NetAmount < 0 {
		row.NetAmount = 0
	}
	row.Collected = row.TotalCommission > 0 && row.CollectedAmount >= row.TotalCommission

	row.DueDa = row.TotalCommission
	row.CollectedDa = row.CollectedAmount
	row.NetDa = row.NetAmount
	return row, nil
}

func effectiveRate(override *int64, def int64) int64 {
	if override == nil {
		return def
	}
	return *override
}

func fillBookingCounts(row *domain.MonthRow, counts []statusCount) {
	for _, c := range counts {
		switch transactiondomain.BookingStatus(c.Status) {
		case transactiondomain.BookingStatusPending:
			row.Pending += c.Count
		case transactiondomain.BookingStatusConfirmed:
			row.Confirmed += c.Count
		case transactiondomain.BookingStatusCompleted:
			row.Completed += c.Count
		case transactiondomain.BookingStatusCancelled, transactiondomain.BookingStatusExpired:
			row.Cancelled += c.Count
		}
	}
}

// fillOrderCounts folds the order lifecycle into the four booking
// buckets the dashboard renders: in-flight fulfilment counts as
// confirmed, delivery as completed.
func fillOrderCounts(row *domain.MonthRow, counts []statusCount) {
	for _, c := range counts {
		switch transactiondomain.OrderStatus(c.Status) {
		case transactiondomain.OrderStatusPending:
			row.Pending += c.Count
		case transactiondomain.OrderStatusConfirmed, transactiondomain.OrderStatusShipped:
			row.Confirmed += c.Count
		case transactiondomain.OrderStatusDelivered:
			row.Completed += c.Count
		case transactiondomain.OrderStatusCancelled:
			row.Cancelled += c.Count
		}
	}
}
