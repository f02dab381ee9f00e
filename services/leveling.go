package services

import (
	"math"

	"swear-jar/models"
)

// BandFor returns the band containing xp. Negative xp counts as zero.
func BandFor(xp int64) models.LevelBand {
	if xp < 0 {
		xp = 0
	}
	for _, band := range models.Levels {
		if xp >= band.MinXP && xp < band.MaxXP {
			return band
		}
	}
	return models.Levels[len(models.Levels)-1]
}

func LevelFor(xp int64) int {
	return BandFor(xp).Level
}

// LevelInfoFor decorates xp for display. Progress is percent through the current band,
// capped at 100; the open-ended top band always reports 100.
func LevelInfoFor(xp int64) models.LevelInfo {
	band := BandFor(xp)
	info := models.LevelInfo{
		Level:       band.Level,
		Name:        band.Name,
		Icon:        band.Icon,
		ProgressPct: 100,
	}
	if band.MaxXP == math.MaxInt64 {
		return info
	}

	if xp < 0 {
		xp = 0
	}
	pct := float64(xp-band.MinXP) / float64(band.MaxXP-band.MinXP) * 100
	info.ProgressPct = math.Min(100, math.Round(pct*10)/10)
	return info
}
