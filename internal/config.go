package internal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/internal/sql/executor"
	"github.com/tuannm99/tinysql/internal/sql/parser"
	"github.com/tuannm99/tinysql/internal/sql/planner"
)

const EnvPrefix = "TINYSQL"

type Config struct {
	AppName string `mapstructure:"app_name"`

	Parser struct {
		Strict bool `mapstructure:"strict"`
	} `mapstructure:"parser"`

	Executor struct {
		Backfill     string `mapstructure:"backfill"`
		StrictInsert bool   `mapstructure:"strict_insert"`
	} `mapstructure:"executor"`

	Output struct {
		ColumnWidth int `mapstructure:"column_width"`
	} `mapstructure:"output"`

	Server struct {
		Addr  string `mapstructure:"addr"`
		Debug bool   `mapstructure:"debug"`
	} `mapstructure:"server"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "tinysql")
	v.SetDefault("parser.strict", false)
	v.SetDefault("executor.backfill", string(engine.BackfillDatabase))
	v.SetDefault("executor.strict_insert", false)
	v.SetDefault("output.column_width", executor.DefaultColumnWidth)
	v.SetDefault("server.addr", "127.0.0.1:8866")
	v.SetDefault("server.debug", false)
	v.SetDefault("log.level", "warn")
}

// LoadConfig reads the YAML file at path (skipped when path is empty),
// fills in defaults and applies TINYSQL_* environment overrides,
// e.g. TINYSQL_EXECUTOR_BACKFILL=table.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := engine.ParseBackfillScope(c.Executor.Backfill); err != nil {
		return fmt.Errorf("config: executor.backfill: %w", err)
	}
	if c.Output.ColumnWidth <= 0 {
		return fmt.Errorf("config: output.column_width must be positive, got %d", c.Output.ColumnWidth)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}

// BackfillScope returns the validated backfill scope.
func (c *Config) BackfillScope() engine.BackfillScope {
	s, _ := engine.ParseBackfillScope(c.Executor.Backfill)
	return s
}

func (c *Config) ExecutorOptions() executor.Options {
	return executor.Options{
		Parser:  parser.Options{Strict: c.Parser.Strict},
		Planner: planner.Options{StrictInsert: c.Executor.StrictInsert},
	}
}

// NewSession returns a fresh database and an executor bound to it.
func (c *Config) NewSession() *executor.Executor {
	db := engine.NewDatabase(c.BackfillScope())
	return executor.NewExecutor(db, c.ExecutorOptions())
}
