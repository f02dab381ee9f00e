package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swear-jar/config"
)

func TestLoadDefaults(t *testing.T) {
	conf, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "5200", conf.Port)
	assert.Equal(t, "development", conf.Environment)
	assert.Equal(t, "swear_jar.db", conf.SQLitePath)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.AllowedOrigins)
	assert.Equal(t, config.GateConfig{Start: "09:00", End: "21:00"}, conf.Gate)
	assert.Equal(t, config.RulesConfig{UnitPenalty: 10, XPPenalty: 5, XPReward: 10}, conf.Rules)
	assert.Equal(t, 5, conf.LeaderboardSize)
	assert.False(t, conf.Archive.Enabled)
	assert.Equal(t, 24*time.Hour, conf.Archive.Interval)
	assert.False(t, conf.Archive.R2Configured())
	assert.False(t, conf.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("GATE_START", "08:30")
	t.Setenv("GATE_TIMEZONE", "Europe/Istanbul")
	t.Setenv("UNIT_PENALTY", "25")
	t.Setenv("ARCHIVE_ENABLED", "true")
	t.Setenv("ARCHIVE_INTERVAL", "6h")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acc")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_ACCESS_KEY_SECRET", "secret")
	t.Setenv("R2_BUCKET_NAME", "jars")

	conf, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.Port)
	assert.True(t, conf.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, conf.AllowedOrigins)
	assert.Equal(t, "08:30", conf.Gate.Start)
	assert.Equal(t, "Europe/Istanbul", conf.Gate.Timezone)
	assert.Equal(t, int64(25), conf.Rules.UnitPenalty)
	assert.True(t, conf.Archive.Enabled)
	assert.Equal(t, 6*time.Hour, conf.Archive.Interval)
	assert.True(t, conf.Archive.R2Configured())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("XP_REWARD: 15\nLEADERBOARD_SIZE: 3\n"), 0o600))

	conf, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(15), conf.Rules.XPReward)
	assert.Equal(t, 3, conf.LeaderboardSize)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown environment", "ENVIRONMENT", "staging"},
		{"zero unit penalty", "UNIT_PENALTY", "0"},
		{"negative reward", "XP_REWARD", "-1"},
		{"bad interval", "ARCHIVE_INTERVAL", "daily"},
		{"empty leaderboard", "LEADERBOARD_SIZE", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := config.Load("")
			require.Error(t, err)
		})
	}
}
