package services

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"swear-jar/models"
	"swear-jar/store"
)

// ChallengeStatus joins a catalog entry with today's tracking row.
type ChallengeStatus struct {
	models.Challenge
	Day       string `json:"day"`
	Completed bool   `json:"completed"`
}

// ChallengeService keeps one tracking row per catalog entry per participant per day.
// Nothing here marks a challenge completed or grants its reward.
type ChallengeService struct {
	Store *store.Store
	Clock clockwork.Clock
}

func NewChallengeService(st *store.Store, clock clockwork.Clock) *ChallengeService {
	return &ChallengeService{Store: st, Clock: clock}
}

// EnsureDaily is idempotent for a given participant and day.
func (s *ChallengeService) EnsureDaily(ctx context.Context, participantID string) error {
	day := dayOf(s.Clock.Now())
	for _, ch := range models.DailyChallenges {
		if err := s.Store.UpsertChallengeCompletion(ctx, participantID, ch.ID, day, ch.RewardXP); err != nil {
			return fmt.Errorf("s.Store.UpsertChallengeCompletion -> %w", err)
		}
	}
	return nil
}

func (s *ChallengeService) Today(ctx context.Context, participantID string) ([]ChallengeStatus, error) {
	if _, err := s.Store.Get(ctx, participantID); err != nil {
		return nil, fmt.Errorf("s.Store.Get -> %w", err)
	}
	if err := s.EnsureDaily(ctx, participantID); err != nil {
		return nil, err
	}

	day := dayOf(s.Clock.Now())
	rows, err := s.Store.ListChallengeCompletions(ctx, participantID, day)
	if err != nil {
		return nil, fmt.Errorf("s.Store.ListChallengeCompletions -> %w", err)
	}

	completed := make(map[string]bool, len(rows))
	for _, r := range rows {
		completed[r.ChallengeType] = r.Completed
	}

	statuses := make([]ChallengeStatus, 0, len(models.DailyChallenges))
	for _, ch := range models.DailyChallenges {
		statuses = append(statuses, ChallengeStatus{
			Challenge: ch,
			Day:       day,
			Completed: completed[ch.ID],
		})
	}
	return statuses, nil
}
