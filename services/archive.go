package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"swear-jar/store"
)

// Uploader stores an archive object. utils.R2Client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
}

type ArchiveService struct {
	Store    *store.Store
	Uploader Uploader
	Clock    clockwork.Clock
	JarName  string
}

func NewArchiveService(st *store.Store, uploader Uploader, clock clockwork.Clock, jarName string) *ArchiveService {
	return &ArchiveService{Store: st, Uploader: uploader, Clock: clock, JarName: jarName}
}

var archiveHeader = []string{"id", "slug", "name", "curse_count", "balance", "xp", "level", "streak"}

// Snapshot renders every participant as CSV, oldest first.
func (s *ArchiveService) Snapshot(ctx context.Context) ([]byte, error) {
	participants, err := s.Store.List(ctx, store.OrderByCreated)
	if err != nil {
		return nil, fmt.Errorf("s.Store.List -> %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(archiveHeader); err != nil {
		return nil, err
	}
	for _, p := range participants {
		record := []string{
			p.ID,
			p.Slug,
			p.Name,
			strconv.Itoa(p.CurseCount),
			p.Balance.StringFixed(2),
			strconv.FormatInt(p.XP, 10),
			strconv.Itoa(p.Level),
			strconv.Itoa(p.Streak),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Key is archives/<date>-<jar slug>.csv.
func (s *ArchiveService) Key() string {
	return fmt.Sprintf("archives/%s-%s.csv", dayOf(s.Clock.Now()), slug.Make(s.JarName))
}

// Run builds a snapshot and uploads it, returning the object key.
func (s *ArchiveService) Run(ctx context.Context) (string, error) {
	body, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	key := s.Key()
	if err := s.Uploader.Upload(ctx, key, body, "text/csv"); err != nil {
		return "", fmt.Errorf("s.Uploader.Upload -> %w", err)
	}

	zap.L().Info("🗄️ Jar archived", zap.String("key", key), zap.Int("bytes", len(body)))
	return key, nil
}
