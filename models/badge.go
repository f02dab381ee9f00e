package models

// BadgeAxis groups badges that exclude each other; a participant holds at most one per axis.
type BadgeAxis string

const (
	AxisVolume BadgeAxis = "volume"
	AxisClean  BadgeAxis = "clean"
	AxisDebt   BadgeAxis = "debt"
	AxisStreak BadgeAxis = "streak"
)

type Badge struct {
	Code string    `json:"code"`
	Name string    `json:"name"`
	Icon string    `json:"icon"`
	Axis BadgeAxis `json:"axis"`
}

// BadgeTier is a threshold rule inside an axis.
type BadgeTier struct {
	Badge
	Threshold int64
}

// Tiers are listed highest threshold first; first match wins.
var (
	VolumeTiers = []BadgeTier{
		{Badge: Badge{Code: "king", Name: "Curse King", Icon: "👑", Axis: AxisVolume}, Threshold: 50},
		{Badge: Badge{Code: "master", Name: "Curse Master", Icon: "🔥", Axis: AxisVolume}, Threshold: 30},
		{Badge: Badge{Code: "apprentice", Name: "Curse Apprentice", Icon: "🗯️", Axis: AxisVolume}, Threshold: 10},
	}

	// Clean-language tiers match at or below the threshold.
	CleanTiers = []BadgeTier{
		{Badge: Badge{Code: "clean", Name: "Clean Mouth", Icon: "😇", Axis: AxisClean}, Threshold: 0},
		{Badge: Badge{Code: "polite", Name: "Polite", Icon: "🎩", Axis: AxisClean}, Threshold: 3},
	}

	DebtTiers = []BadgeTier{
		{Badge: Badge{Code: "debt_king", Name: "Debt King", Icon: "💰", Axis: AxisDebt}, Threshold: 500},
		{Badge: Badge{Code: "indebted", Name: "Indebted", Icon: "💸", Axis: AxisDebt}, Threshold: 200},
	}

	StreakTiers = []BadgeTier{
		{Badge: Badge{Code: "weekly_streak", Name: "Weekly Streak", Icon: "📅", Axis: AxisStreak}, Threshold: 7},
		{Badge: Badge{Code: "streak_master", Name: "Streak Master", Icon: "⚡", Axis: AxisStreak}, Threshold: 3},
	}
)
