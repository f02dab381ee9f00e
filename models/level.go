package models

import "math"

// LevelBand covers XP in [MinXP, MaxXP). The last band is unbounded.
type LevelBand struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	MinXP int64  `json:"min_xp"`
	MaxXP int64  `json:"max_xp"`
}

// Levels is ordered by MinXP; bands are contiguous.
var Levels = []LevelBand{
	{Level: 1, Name: "Rookie", Icon: "🌱", MinXP: 0, MaxXP: 100},
	{Level: 2, Name: "Apprentice", Icon: "🌿", MinXP: 100, MaxXP: 250},
	{Level: 3, Name: "Regular", Icon: "🌳", MinXP: 250, MaxXP: 500},
	{Level: 4, Name: "Veteran", Icon: "🏅", MinXP: 500, MaxXP: 1000},
	{Level: 5, Name: "Saint", Icon: "😇", MinXP: 1000, MaxXP: math.MaxInt64},
}

// LevelInfo is the display decoration for a participant's level.
type LevelInfo struct {
	Level       int     `json:"level"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	ProgressPct float64 `json:"progress_pct"`
}
