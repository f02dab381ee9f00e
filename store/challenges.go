package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"swear-jar/models"
)

// UpsertChallengeCompletion inserts the (participant, challenge, day) row if it is not there yet.
// An existing row is left untouched, including its completed flag and reward snapshot.
func (s *Store) UpsertChallengeCompletion(ctx context.Context, participantID, challengeID, day string, rewardXP int64) error {
	row := models.ChallengeCompletion{
		ID:            uuid.NewString(),
		ParticipantID: participantID,
		ChallengeType: challengeID,
		Day:           day,
		RewardXP:      rewardXP,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "participant_id"}, {Name: "challenge_type"}, {Name: "day"}},
			DoNothing: true,
		}).
		Create(&row).Error
	return classify("s.db.Create", err)
}

func (s *Store) ListChallengeCompletions(ctx context.Context, participantID, day string) ([]models.ChallengeCompletion, error) {
	var rows []models.ChallengeCompletion
	err := s.db.WithContext(ctx).
		Where("participant_id = ? AND day = ?", participantID, day).
		Order("challenge_type ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classify("s.db.Find", err)
	}
	return rows, nil
}
