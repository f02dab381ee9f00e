package models

// Challenge is a static daily challenge definition.
type Challenge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	RewardXP    int64  `json:"reward_xp"`
	Icon        string `json:"icon"`
}

// DailyChallenges is the fixed catalog, never mutated at runtime.
var DailyChallenges = []Challenge{
	{
		ID:          "clean_day",
		Name:        "Clean Day",
		Description: "Go a whole day without adding to the jar",
		RewardXP:    50,
		Icon:        "🧼",
	},
	{
		ID:          "kind_words",
		Name:        "Kind Words",
		Description: "Compliment three people today",
		RewardXP:    20,
		Icon:        "💬",
	},
	{
		ID:          "apology",
		Name:        "Apology Tour",
		Description: "Apologise for yesterday's worst one",
		RewardXP:    15,
		Icon:        "🙏",
	},
	{
		ID:          "pay_up",
		Name:        "Pay Up",
		Description: "Settle part of your jar balance",
		RewardXP:    25,
		Icon:        "💸",
	},
}

// ChallengeCompletion tracks one challenge for one participant on one calendar day.
type ChallengeCompletion struct {
	ID            string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ParticipantID string `gorm:"not null;type:varchar(36);uniqueIndex:idx_completion_day" json:"participant_id"`
	ChallengeType string `gorm:"not null;type:varchar(32);uniqueIndex:idx_completion_day" json:"challenge_type"`
	Day           string `gorm:"not null;type:varchar(10);uniqueIndex:idx_completion_day" json:"day"`
	Completed     bool   `gorm:"not null;default:false" json:"completed"`
	RewardXP      int64  `gorm:"column:reward_xp;not null;default:0" json:"reward_xp"` // snapshot of the catalog reward at creation
}
