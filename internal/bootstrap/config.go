package bootstrap

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort     string `mapstructure:"SERVER_PORT"`
	GrpcPort       string `mapstructure:"GRPC_PORT"`
	NotationAddr   string `mapstructure:"NOTATION_ADDR"`
	RedisUrl       string `mapstructure:"REDIS_URL"`
	MongoUri       string `mapstructure:"MONGO_URI"`
	MongoDatabase  string `mapstructure:"MONGO_DATABASE"`
	IsLocalCors    bool   `mapstructure:"LOCAL_CORS"`
	EditRetries    int    `mapstructure:"EDIT_RETRIES"`
	PageLimitGames int    `mapstructure:"PAGE_LIMIT_GAMES"`
}

var defaults = map[string]any{
	"SERVER_PORT":      "8080",
	"GRPC_PORT":        "8082",
	"NOTATION_ADDR":    "localhost:8082",
	"REDIS_URL":        "localhost:6379",
	"MONGO_URI":        "mongodb://localhost:27017",
	"MONGO_DATABASE":   "pgn4",
	"LOCAL_CORS":       false,
	"EDIT_RETRIES":     5,
	"PAGE_LIMIT_GAMES": 20,
}

// Setup reads the dotenv file at cfgPath. A missing file is not an error:
// environment variables and defaults still apply.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
