package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Cron   CronConfig   `mapstructure:"cron"`

	Engine   EngineConfig   `mapstructure:"engine"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Stream   StreamConfig   `mapstructure:"stream"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	SnapshotRefresh string `mapstructure:"snapshot_refresh"`
	ReportPrune     string `mapstructure:"report_prune"`
}

// EngineConfig drives the recommendation engine.
type EngineConfig struct {
	// SampleSize bounds how many budget-eligible transactions are scored
	// per property recommendation request.
	SampleSize int `mapstructure:"sample_size"`
	// SampleSeed makes property sampling reproducible. 0 means seed from
	// the clock on engine construction.
	SampleSeed int64 `mapstructure:"sample_seed"`
	// MaxTopN caps the top_n a caller may request.
	MaxTopN int `mapstructure:"max_top_n"`
}

type SnapshotConfig struct {
	// RefreshOnStart loads the first snapshot before the server accepts
	// traffic.
	RefreshOnStart bool `mapstructure:"refresh_on_start"`
}

type AnalysisConfig struct {
	// RetentionDays is how long persisted analysis reports are kept before
	// the prune job removes them. <=0 disables pruning.
	RetentionDays int `mapstructure:"retention_days"`
}

type StreamConfig struct {
	// Strategy and TopN shape the ranking pushed to websocket subscribers
	// after each snapshot refresh.
	Strategy string `mapstructure:"strategy"`
	TopN     int    `mapstructure:"top_n"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BTR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.snapshot_refresh", "@every 10m")
	v.SetDefault("cron.report_prune", "@every 6h")

	v.SetDefault("engine.sample_size", 100)
	v.SetDefault("engine.sample_seed", 0)
	v.SetDefault("engine.max_top_n", 50)

	v.SetDefault("snapshot.refresh_on_start", true)

	v.SetDefault("analysis.retention_days", 90)

	v.SetDefault("stream.strategy", "balanced")
	v.SetDefault("stream.top_n", 10)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
