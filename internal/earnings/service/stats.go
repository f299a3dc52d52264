package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fennecpets/fennec/internal/earnings/domain"
	"github.com/fennecpets/fennec/internal/earnings/monthkey"
	providerdomain "github.com/fennecpets/fennec/internal/provider/domain"
)

// GlobalStats reconciles every qualifying provider over a trailing
// window and sums the exposure. The vet track covers all approved
// providers; daycare and petshop only cover providers tagged with that
// kind. Passing a kind restricts the response to that single track.
func (s *Service) GlobalStats(ctx context.Context, months int, kind *providerdomain.Kind) (domain.GlobalStats, error) {
	months = domain.ClampMonths(months)
	keys := monthkey.LastN(s.clock.Now(), months)

	var profiles []providerdomain.ProviderProfile
	err := s.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("id ASC").
		Find(&profiles).Error
	if err != nil {
		return domain.GlobalStats{}, err
	}

	kinds := []providerdomain.Kind{providerdomain.KindVet, providerdomain.KindDaycare, providerdomain.KindPetshop}
	if kind != nil {
		kinds = []providerdomain.Kind{*kind}
	}

	stats := domain.GlobalStats{Months: months, Tracks: make([]domain.KindStats, 0, len(kinds))}
	seen := make(map[snowflake.ID]struct{})

	for _, k := range kinds {
		track := domain.KindStats{Kind: k}
		for i := range profiles {
			profile := &profiles[i]
			if k != providerdomain.KindVet && profile.Kind() != k {
				continue
			}
			track.ProviderCount++
			seen[profile.ID] = struct{}{}

			for _, key := range keys {
				row, err := s.computeMonthRow(ctx, s.db.WithContext(ctx), profile, key, k)
				if err != nil {
					return domain.GlobalStats{}, err
				}
				track.TransactionCount += row.BookingCount
				track.TotalDueDa += row.TotalCommission
				track.TotalCollectedDa += row.CollectedAmount
			}
		}
		track.TotalRemainingDa = track.TotalDueDa - track.TotalCollectedDa
		stats.Tracks = append(stats.Tracks, track)
		stats.TransactionCount += track.TransactionCount
		stats.TotalDueDa += track.TotalDueDa
		stats.TotalCollectedDa += track.TotalCollectedDa
		stats.TotalRemainingDa += track.TotalRemainingDa
	}

	stats.ProviderCount = int64(len(seen))
	return stats, nil
}
