package bootstrap

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string        `mapstructure:"SERVER_PORT"`
	EnginePath      string        `mapstructure:"ENGINE_PATH"`
	EngineArgs      string        `mapstructure:"ENGINE_ARGS"`
	RedisUrl        string        `mapstructure:"REDIS_URL"`
	MongoUri        string        `mapstructure:"MONGO_URI"`
	MongoDatabase   string        `mapstructure:"MONGO_DATABASE"`
	TranscriptLimit int           `mapstructure:"TRANSCRIPT_LIMIT"`
	TranscriptTTL   time.Duration `mapstructure:"TRANSCRIPT_TTL"`
	ParseWorkers    int           `mapstructure:"PARSE_WORKERS"`
	IsLocalCors     bool          `mapstructure:"LOCAL_CORS"`
}

var defaults = map[string]any{
	"SERVER_PORT":      ":8080",
	"ENGINE_PATH":      "",
	"ENGINE_ARGS":      "",
	"REDIS_URL":        "",
	"MONGO_URI":        "",
	"MONGO_DATABASE":   "usi_bridge",
	"TRANSCRIPT_LIMIT": 1000,
	"TRANSCRIPT_TTL":   "24h",
	"PARSE_WORKERS":    8,
	"LOCAL_CORS":       false,
}

// Setup reads cfgPath (a .env file) on top of the defaults. A missing file is
// not an error; environment variables win over both.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.ParseWorkers < 1 {
		cfg.ParseWorkers = 1
	}

	return &cfg, nil
}

func (c *Config) EngineArgList() []string {
	return strings.Fields(c.EngineArgs)
}
