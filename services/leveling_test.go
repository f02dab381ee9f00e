package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"swear-jar/models"
	"swear-jar/services"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{500, 4},
		{999, 4},
		{1000, 5},
		{999999, 5},
		{-20, 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, services.LevelFor(tc.xp), "xp=%d", tc.xp)
	}
}

func TestLevelInfoFor(t *testing.T) {
	info := services.LevelInfoFor(175)
	assert.Equal(t, 2, info.Level)
	assert.Equal(t, "Apprentice", info.Name)
	assert.Equal(t, 50.0, info.ProgressPct)

	assert.Equal(t, 0.0, services.LevelInfoFor(0).ProgressPct)
	assert.Equal(t, 33.3, services.LevelInfoFor(150).ProgressPct)
	assert.Equal(t, 100.0, services.LevelInfoFor(5000).ProgressPct)
}

func TestBadgesFor(t *testing.T) {
	codes := func(badges []models.Badge) []string {
		out := make([]string, len(badges))
		for i, b := range badges {
			out[i] = b.Code
		}
		return out
	}

	tests := []struct {
		name    string
		count   int
		balance int64
		streak  int
		want    []string
	}{
		{"axes are independent", 0, 0, 8, []string{"clean", "weekly_streak"}},
		{"polite with short streak", 2, 20, 3, []string{"polite", "streak_master"}},
		{"apprentice", 10, 100, 0, []string{"apprentice"}},
		{"master and indebted", 30, 300, 1, []string{"master", "indebted"}},
		{"king of debt", 55, 550, 0, []string{"king", "debt_king"}},
		{"nothing", 5, 50, 2, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := services.BadgesFor(tc.count, decimal.NewFromInt(tc.balance), tc.streak)
			assert.Equal(t, tc.want, codes(got))
		})
	}
}
