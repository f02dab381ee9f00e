package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"swear-jar/config"
	"swear-jar/models"
	"swear-jar/store"
)

// Rules holds the arithmetic of one curse.
type Rules struct {
	UnitPenalty decimal.Decimal // added to the balance per curse
	XPPenalty   int64           // taken from xp per curse
	XPReward    int64           // given back per removed curse
}

var DefaultRules = Rules{
	UnitPenalty: decimal.NewFromInt(10),
	XPPenalty:   5,
	XPReward:    10,
}

func RulesFromConfig(conf config.RulesConfig) Rules {
	return Rules{
		UnitPenalty: decimal.NewFromInt(conf.UnitPenalty),
		XPPenalty:   conf.XPPenalty,
		XPReward:    conf.XPReward,
	}
}

// EventResult is what the engine reports after a count-mutating event.
type EventResult struct {
	Participant   models.Participant `json:"participant"`
	Applied       bool               `json:"applied"`
	LevelUp       bool               `json:"level_up"`
	PreviousLevel int                `json:"previous_level"`
}

// ProgressionService applies events to participants. Each event is one store transaction.
type ProgressionService struct {
	Store         *store.Store
	Gate          *Gate
	Rules         Rules
	Clock         clockwork.Clock
	DefaultAvatar string
}

func NewProgressionService(st *store.Store, gate *Gate, rules Rules, clock clockwork.Clock) *ProgressionService {
	return &ProgressionService{
		Store:         st,
		Gate:          gate,
		Rules:         rules,
		Clock:         clock,
		DefaultAvatar: models.DefaultAvatar,
	}
}

func (s *ProgressionService) AddParticipant(ctx context.Context, name string) (models.Participant, error) {
	name = strings.TrimSpace(name)
	if err := validation.Validate(name, validation.Required); err != nil {
		return models.Participant{}, fmt.Errorf("%w: name %v", ErrValidation, err)
	}

	p := models.Participant{
		Name:    name,
		Slug:    slug.Make(name),
		Balance: decimal.Zero,
		Level:   LevelFor(0),
		Avatar:  s.DefaultAvatar,
	}
	created, err := s.Store.Create(ctx, p)
	if err != nil {
		return models.Participant{}, fmt.Errorf("s.Store.Create -> %w", err)
	}

	zap.L().Info("👤 participant added", zap.String("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *ProgressionService) RemoveParticipant(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.Store.Delete -> %w", err)
	}

	zap.L().Info("🗑️ participant removed", zap.String("id", id))
	return nil
}

// AddCurse charges one curse: count and balance up, xp down, one log row.
func (s *ProgressionService) AddCurse(ctx context.Context, id, origin string) (EventResult, error) {
	now := s.Clock.Now()
	if !s.Gate.IsAdmitted(now) {
		return EventResult{}, ErrWindowClosed
	}

	var res EventResult
	err := s.Store.Transaction(ctx, func(tx *store.Store) error {
		before, err := tx.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("tx.Get -> %w", err)
		}

		if _, err := tx.UpdateCounts(ctx, id, 1, s.Rules.UnitPenalty, dayOf(now)); err != nil {
			return fmt.Errorf("tx.UpdateCounts -> %w", err)
		}
		if err := tx.AdjustXP(ctx, id, -s.Rules.XPPenalty); err != nil {
			return fmt.Errorf("tx.AdjustXP -> %w", err)
		}
		if _, err := tx.AppendCurseEvent(ctx, id, origin, now); err != nil {
			return fmt.Errorf("tx.AppendCurseEvent -> %w", err)
		}

		res, err = relevel(ctx, tx, id, before.Level)
		return err
	})
	if err != nil {
		return EventResult{}, err
	}

	zap.L().Info("🤬 curse added",
		zap.String("id", id),
		zap.Int("curse_count", res.Participant.CurseCount),
		zap.String("balance", res.Participant.Balance.String()),
		zap.Int64("xp", res.Participant.XP),
	)
	return res, nil
}

// RemoveCurse takes one curse back. At zero curses it changes nothing and reports Applied=false.
func (s *ProgressionService) RemoveCurse(ctx context.Context, id string) (EventResult, error) {
	now := s.Clock.Now()
	if !s.Gate.IsAdmitted(now) {
		return EventResult{}, ErrWindowClosed
	}

	var res EventResult
	err := s.Store.Transaction(ctx, func(tx *store.Store) error {
		before, err := tx.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("tx.Get -> %w", err)
		}

		applied, err := tx.UpdateCounts(ctx, id, -1, s.Rules.UnitPenalty.Neg(), dayOf(now))
		if err != nil {
			return fmt.Errorf("tx.UpdateCounts -> %w", err)
		}
		if !applied {
			res = EventResult{Participant: before, PreviousLevel: before.Level}
			return nil
		}

		if err := tx.AdjustXP(ctx, id, s.Rules.XPReward); err != nil {
			return fmt.Errorf("tx.AdjustXP -> %w", err)
		}

		res, err = relevel(ctx, tx, id, before.Level)
		return err
	})
	if err != nil {
		return EventResult{}, err
	}

	if res.LevelUp {
		zap.L().Info("🎉 level up",
			zap.String("id", id),
			zap.Int("from", res.PreviousLevel),
			zap.Int("to", res.Participant.Level),
		)
	}
	return res, nil
}

func (s *ProgressionService) ChangeAvatar(ctx context.Context, id, avatar string) (models.Participant, error) {
	allowed := make([]interface{}, len(models.Avatars))
	for i, a := range models.Avatars {
		allowed[i] = a
	}
	if err := validation.Validate(avatar, validation.Required, validation.In(allowed...)); err != nil {
		return models.Participant{}, fmt.Errorf("%w: avatar %v", ErrValidation, err)
	}

	if err := s.Store.UpdateAvatar(ctx, id, avatar); err != nil {
		return models.Participant{}, fmt.Errorf("s.Store.UpdateAvatar -> %w", err)
	}

	p, err := s.Store.Get(ctx, id)
	if err != nil {
		return models.Participant{}, fmt.Errorf("s.Store.Get -> %w", err)
	}
	return p, nil
}

// SetStreak records a streak value computed elsewhere. The engine never derives streaks itself.
func (s *ProgressionService) SetStreak(ctx context.Context, id string, streak int) (models.Participant, error) {
	if err := validation.Validate(streak, validation.Min(0)); err != nil {
		return models.Participant{}, fmt.Errorf("%w: streak %v", ErrValidation, err)
	}

	if err := s.Store.UpdateStreak(ctx, id, streak); err != nil {
		return models.Participant{}, fmt.Errorf("s.Store.UpdateStreak -> %w", err)
	}

	p, err := s.Store.Get(ctx, id)
	if err != nil {
		return models.Participant{}, fmt.Errorf("s.Store.Get -> %w", err)
	}
	return p, nil
}

// relevel re-reads the row and keeps level in step with xp.
func relevel(ctx context.Context, tx *store.Store, id string, previousLevel int) (EventResult, error) {
	p, err := tx.Get(ctx, id)
	if err != nil {
		return EventResult{}, fmt.Errorf("tx.Get -> %w", err)
	}

	level := LevelFor(p.XP)
	if level != p.Level {
		if err := tx.UpdateXPLevel(ctx, id, p.XP, level); err != nil {
			return EventResult{}, fmt.Errorf("tx.UpdateXPLevel -> %w", err)
		}
		p.Level = level
	}

	return EventResult{
		Participant:   p,
		Applied:       true,
		LevelUp:       level > previousLevel,
		PreviousLevel: previousLevel,
	}, nil
}

func dayOf(t time.Time) string {
	return t.Format("2006-01-02")
}
