package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"swear-jar/models"
)

type OrderBy string

const (
	OrderByCount   OrderBy = "count"
	OrderByXP      OrderBy = "xp"
	OrderByName    OrderBy = "name"
	OrderByCreated OrderBy = "created"
)

// ParseOrderBy falls back to OrderByCount for anything unknown.
func ParseOrderBy(s string) OrderBy {
	switch OrderBy(s) {
	case OrderByXP, OrderByName, OrderByCreated:
		return OrderBy(s)
	default:
		return OrderByCount
	}
}

func (s *Store) Create(ctx context.Context, p models.Participant) (models.Participant, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return models.Participant{}, classify("s.db.Create", err)
	}
	return p, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.Participant, error) {
	var p models.Participant
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return models.Participant{}, classify("s.db.First", err)
	}
	return p, nil
}

func (s *Store) List(ctx context.Context, order OrderBy) ([]models.Participant, error) {
	q := s.db.WithContext(ctx).Model(&models.Participant{})
	switch order {
	case OrderByXP:
		q = q.Order("xp DESC").Order("curse_count DESC")
	case OrderByCreated:
		q = q.Order("created_at ASC")
	case OrderByName:
		// sorted below; SQL collations differ between postgres and sqlite
	default:
		q = q.Order("curse_count DESC").Order("created_at ASC")
	}

	var participants []models.Participant
	if err := q.Find(&participants).Error; err != nil {
		return nil, classify("q.Find", err)
	}

	if order == OrderByName {
		col := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
		sort.SliceStable(participants, func(i, j int) bool {
			return col.CompareString(participants[i].Name, participants[j].Name) < 0
		})
	}

	return participants, nil
}

// Leaderboard returns the top participants by XP, ties broken by curse count.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]models.Participant, error) {
	var participants []models.Participant
	err := s.db.WithContext(ctx).
		Order("xp DESC").
		Order("curse_count DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&participants).Error
	if err != nil {
		return nil, classify("s.db.Find", err)
	}
	return participants, nil
}

// UpdateCounts moves curse_count and balance together, in place.
// It refuses to take curse_count below zero: applied is false and err is nil in that case.
func (s *Store) UpdateCounts(ctx context.Context, id string, deltaCount int, deltaBalance decimal.Decimal, day string) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ? AND curse_count + ? >= 0", id, deltaCount).
		Updates(map[string]any{
			"curse_count":       gorm.Expr("curse_count + ?", deltaCount),
			"balance":           gorm.Expr("balance + ?", deltaBalance),
			"last_activity_day": day,
		})
	if result.Error != nil {
		return false, classify("s.db.Updates", result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	if err := s.mustExist(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// AdjustXP adds delta to xp in place, clamping at zero.
func (s *Store) AdjustXP(ctx context.Context, id string, delta int64) error {
	result := s.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", id).
		Update("xp", gorm.Expr("CASE WHEN xp + ? < 0 THEN 0 ELSE xp + ? END", delta, delta))
	return rowResult("s.db.Update", result)
}

func (s *Store) UpdateXPLevel(ctx context.Context, id string, xp int64, level int) error {
	result := s.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", id).
		Updates(map[string]any{"xp": xp, "level": level})
	return rowResult("s.db.Updates", result)
}

func (s *Store) UpdateAvatar(ctx context.Context, id, avatar string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", id).
		Update("avatar", avatar)
	return rowResult("s.db.Update", result)
}

func (s *Store) UpdateStreak(ctx context.Context, id string, streak int) error {
	result := s.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", id).
		Update("streak", streak)
	return rowResult("s.db.Update", result)
}

// Delete removes the participant together with its curse log and challenge rows.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if err := tx.db.Where("participant_id = ?", id).Delete(&models.CurseEvent{}).Error; err != nil {
			return classify("tx.db.Delete curse_events", err)
		}
		if err := tx.db.Where("participant_id = ?", id).Delete(&models.ChallengeCompletion{}).Error; err != nil {
			return classify("tx.db.Delete challenge_completions", err)
		}
		result := tx.db.Where("id = ?", id).Delete(&models.Participant{})
		return rowResult("tx.db.Delete participants", result)
	})
}

func (s *Store) SumBalance(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := s.db.WithContext(ctx).
		Model(&models.Participant{}).
		Select("COALESCE(SUM(balance), 0)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, classify("row.Scan", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (s *Store) mustExist(ctx context.Context, id string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Participant{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return classify("s.db.Count", err)
	}
	if count == 0 {
		return fmt.Errorf("participant %s -> %w", id, ErrNotFound)
	}
	return nil
}

func rowResult(op string, result *gorm.DB) error {
	if result.Error != nil {
		return classify(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s -> %w", op, ErrNotFound)
	}
	return nil
}
