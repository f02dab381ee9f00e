package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"swear-jar/models"
)

// AppendCurseEvent writes one log row. Times are stored in UTC so range scans compare cleanly
// on both backends.
func (s *Store) AppendCurseEvent(ctx context.Context, participantID, origin string, at time.Time) (models.CurseEvent, error) {
	event := models.CurseEvent{
		ID:            uuid.NewString(),
		ParticipantID: participantID,
		Origin:        origin,
		CreatedAt:     at.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return models.CurseEvent{}, classify("s.db.Create", err)
	}
	return event, nil
}

// WeeklyCurseCounts counts curse events per participant since the given instant.
func (s *Store) WeeklyCurseCounts(ctx context.Context, since time.Time) (map[string]int64, error) {
	var rows []models.WeeklyCount
	err := s.db.WithContext(ctx).
		Model(&models.CurseEvent{}).
		Select("participant_id, COUNT(*) AS count").
		Where("created_at >= ?", since.UTC()).
		Group("participant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, classify("s.db.Scan", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.ParticipantID] = r.Count
	}
	return counts, nil
}

// CurseEventsSince returns events strictly after the cursor, oldest first.
func (s *Store) CurseEventsSince(ctx context.Context, since time.Time, limit int) ([]models.CurseEvent, error) {
	var events []models.CurseEvent
	err := s.db.WithContext(ctx).
		Where("created_at > ?", since.UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, classify("s.db.Find", err)
	}
	return events, nil
}

func (s *Store) RecentCurseEvents(ctx context.Context, participantID string, limit int) ([]models.CurseEvent, error) {
	var events []models.CurseEvent
	err := s.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, classify("s.db.Find", err)
	}
	return events, nil
}
