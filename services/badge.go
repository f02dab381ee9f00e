package services

import (
	"github.com/shopspring/decimal"

	"swear-jar/models"
)

// BadgesFor evaluates every axis on its own; each yields at most one badge.
func BadgesFor(curseCount int, balance decimal.Decimal, streak int) []models.Badge {
	badges := make([]models.Badge, 0, 4)

	if b, ok := firstTier(models.VolumeTiers, func(t int64) bool { return int64(curseCount) >= t }); ok {
		badges = append(badges, b)
	}
	if b, ok := firstTier(models.CleanTiers, func(t int64) bool { return int64(curseCount) <= t }); ok {
		badges = append(badges, b)
	}
	if b, ok := firstTier(models.DebtTiers, func(t int64) bool { return balance.GreaterThanOrEqual(decimal.NewFromInt(t)) }); ok {
		badges = append(badges, b)
	}
	if b, ok := firstTier(models.StreakTiers, func(t int64) bool { return int64(streak) >= t }); ok {
		badges = append(badges, b)
	}

	return badges
}

func firstTier(tiers []models.BadgeTier, matches func(threshold int64) bool) (models.Badge, bool) {
	for _, tier := range tiers {
		if matches(tier.Threshold) {
			return tier.Badge, true
		}
	}
	return models.Badge{}, false
}
