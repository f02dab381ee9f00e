package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is built once at startup and handed to every component that needs it.
type Config struct {
	Port           string
	Environment    string
	AllowedOrigins []string

	DatabaseURL string // Postgres when set
	SQLitePath  string // embedded store otherwise

	Gate    GateConfig
	Rules   RulesConfig
	Archive ArchiveConfig

	DefaultAvatar   string
	LeaderboardSize int
}

type GateConfig struct {
	Start    string // HH:MM, inclusive
	End      string // HH:MM, inclusive
	Timezone string // empty means process local time
}

type RulesConfig struct {
	UnitPenalty int64
	XPPenalty   int64
	XPReward    int64
}

type ArchiveConfig struct {
	Enabled  bool
	Interval time.Duration
	JarName  string

	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
}

// R2Configured reports whether every credential needed for uploads is present.
func (a ArchiveConfig) R2Configured() bool {
	return a.AccountID != "" && a.AccessKeyID != "" && a.AccessKeySecret != "" && a.Bucket != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5200")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SQLITE_PATH", "swear_jar.db")
	v.SetDefault("GATE_START", "09:00")
	v.SetDefault("GATE_END", "21:00")
	v.SetDefault("GATE_TIMEZONE", "")
	v.SetDefault("UNIT_PENALTY", 10)
	v.SetDefault("XP_PENALTY", 5)
	v.SetDefault("XP_REWARD", 10)
	v.SetDefault("DEFAULT_AVATAR", "😀")
	v.SetDefault("LEADERBOARD_SIZE", 5)
	v.SetDefault("ARCHIVE_ENABLED", false)
	v.SetDefault("ARCHIVE_INTERVAL", "24h")
	v.SetDefault("ARCHIVE_JAR_NAME", "swear jar")
}

var boundKeys = []string{
	"DATABASE_URL", "CLOUDFLARE_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_ACCESS_KEY_SECRET", "R2_BUCKET_NAME",
}

// Load reads .env (if any), then the optional YAML file at path, then the environment.
// Environment variables win over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("godotenv.Load -> %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	for _, k := range boundKeys {
		_ = v.BindEnv(k)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
			}
		}
	}

	interval, err := time.ParseDuration(v.GetString("ARCHIVE_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid ARCHIVE_INTERVAL: %w", err)
	}

	conf := &Config{
		Port:           v.GetString("PORT"),
		Environment:    v.GetString("ENVIRONMENT"),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		Gate: GateConfig{
			Start:    v.GetString("GATE_START"),
			End:      v.GetString("GATE_END"),
			Timezone: v.GetString("GATE_TIMEZONE"),
		},
		Rules: RulesConfig{
			UnitPenalty: v.GetInt64("UNIT_PENALTY"),
			XPPenalty:   v.GetInt64("XP_PENALTY"),
			XPReward:    v.GetInt64("XP_REWARD"),
		},
		Archive: ArchiveConfig{
			Enabled:         v.GetBool("ARCHIVE_ENABLED"),
			Interval:        interval,
			JarName:         v.GetString("ARCHIVE_JAR_NAME"),
			AccountID:       v.GetString("CLOUDFLARE_ACCOUNT_ID"),
			AccessKeyID:     v.GetString("R2_ACCESS_KEY_ID"),
			AccessKeySecret: v.GetString("R2_ACCESS_KEY_SECRET"),
			Bucket:          v.GetString("R2_BUCKET_NAME"),
		},
		DefaultAvatar:   v.GetString("DEFAULT_AVATAR"),
		LeaderboardSize: v.GetInt("LEADERBOARD_SIZE"),
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return conf, nil
}

func (c *Config) Validate() error {
	err := validation.ValidateStruct(
		c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.Environment, validation.Required, validation.In("development", "production", "test")),
		validation.Field(&c.LeaderboardSize, validation.Required, validation.Min(1)),
		validation.Field(&c.DefaultAvatar, validation.Required),
	)
	if err != nil {
		return err
	}

	if c.DatabaseURL == "" && c.SQLitePath == "" {
		return errors.New("either DATABASE_URL or SQLITE_PATH must be set")
	}

	return validation.ValidateStruct(
		&c.Rules,
		validation.Field(&c.Rules.UnitPenalty, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.Rules.XPPenalty, validation.Min(int64(0))),
		validation.Field(&c.Rules.XPReward, validation.Min(int64(0))),
	)
}

// IsProduction is used to pick the log encoder and gorm log level.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
