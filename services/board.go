package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/unidecode"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"swear-jar/models"
	"swear-jar/store"
)

// ParticipantView is a participant decorated for display.
type ParticipantView struct {
	models.Participant
	LevelInfo    models.LevelInfo `json:"level_info"`
	Badges       []models.Badge   `json:"badges"`
	WeeklyCurses int64            `json:"weekly_curses"`
}

// Board is everything the front page shows.
type Board struct {
	Participants []ParticipantView  `json:"participants"`
	TotalBalance decimal.Decimal    `json:"total_balance"`
	Gate         GateStatus         `json:"gate"`
	Leaderboard  []ParticipantView  `json:"leaderboard"`
	Challenges   []models.Challenge `json:"challenges"`
}

type BoardService struct {
	Store           *store.Store
	Gate            *Gate
	Challenges      *ChallengeService
	Clock           clockwork.Clock
	LeaderboardSize int
}

func NewBoardService(st *store.Store, gate *Gate, challenges *ChallengeService, clock clockwork.Clock, leaderboardSize int) *BoardService {
	return &BoardService{
		Store:           st,
		Gate:            gate,
		Challenges:      challenges,
		Clock:           clock,
		LeaderboardSize: leaderboardSize,
	}
}

func (s *BoardService) Snapshot(ctx context.Context, order store.OrderBy) (Board, error) {
	participants, err := s.List(ctx, order, "")
	if err != nil {
		return Board{}, err
	}

	total, err := s.Store.SumBalance(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("s.Store.SumBalance -> %w", err)
	}

	leaders, err := s.Leaderboard(ctx, s.LeaderboardSize)
	if err != nil {
		return Board{}, err
	}

	return Board{
		Participants: participants,
		TotalBalance: total,
		Gate:         s.Gate.Status(s.Clock.Now()),
		Leaderboard:  leaders,
		Challenges:   models.DailyChallenges,
	}, nil
}

// List returns decorated participants; query, when set, matches names with diacritics folded.
// Reading a participant also makes sure today's challenge rows exist.
func (s *BoardService) List(ctx context.Context, order store.OrderBy, query string) ([]ParticipantView, error) {
	participants, err := s.Store.List(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("s.Store.List -> %w", err)
	}

	weekly, err := s.Weekly(ctx)
	if err != nil {
		return nil, err
	}

	needle := fold(query)
	views := make([]ParticipantView, 0, len(participants))
	for _, p := range participants {
		if needle != "" && !strings.Contains(fold(p.Name), needle) {
			continue
		}
		if err := s.Challenges.EnsureDaily(ctx, p.ID); err != nil {
			return nil, err
		}
		views = append(views, decorate(p, weekly[p.ID]))
	}
	return views, nil
}

func (s *BoardService) Participant(ctx context.Context, id string) (ParticipantView, error) {
	p, err := s.Store.Get(ctx, id)
	if err != nil {
		return ParticipantView{}, fmt.Errorf("s.Store.Get -> %w", err)
	}
	if err := s.Challenges.EnsureDaily(ctx, p.ID); err != nil {
		return ParticipantView{}, err
	}

	weekly, err := s.Weekly(ctx)
	if err != nil {
		return ParticipantView{}, err
	}
	return decorate(p, weekly[p.ID]), nil
}

func (s *BoardService) Leaderboard(ctx context.Context, limit int) ([]ParticipantView, error) {
	if limit <= 0 {
		limit = s.LeaderboardSize
	}
	participants, err := s.Store.Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.Store.Leaderboard -> %w", err)
	}

	views := make([]ParticipantView, len(participants))
	for i, p := range participants {
		views[i] = decorate(p, 0)
	}
	return views, nil
}

// Weekly counts curse events over the trailing seven days.
func (s *BoardService) Weekly(ctx context.Context) (map[string]int64, error) {
	since := s.Clock.Now().AddDate(0, 0, -7)
	counts, err := s.Store.WeeklyCurseCounts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("s.Store.WeeklyCurseCounts -> %w", err)
	}
	return counts, nil
}

func (s *BoardService) History(ctx context.Context, id string, limit int) ([]models.CurseEvent, error) {
	if _, err := s.Store.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("s.Store.Get -> %w", err)
	}
	events, err := s.Store.RecentCurseEvents(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("s.Store.RecentCurseEvents -> %w", err)
	}
	return events, nil
}

func decorate(p models.Participant, weekly int64) ParticipantView {
	return ParticipantView{
		Participant:  p,
		LevelInfo:    LevelInfoFor(p.XP),
		Badges:       BadgesFor(p.CurseCount, p.Balance, p.Streak),
		WeeklyCurses: weekly,
	}
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
}
