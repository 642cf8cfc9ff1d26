package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env   string `env:"ENV" env-default:"local"`
	HTTP  HTTPConfig
	Mongo MongoConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"5000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type MongoConfig struct {
	URI            string        `env:"MONGODB_URI" env-default:"mongodb://localhost:27017"`
	Database       string        `env:"MONGODB_DATABASE" env-default:"todo-app"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"MONGODB_PING_TIMEOUT" env-default:"10s"`
	QueryTimeout   time.Duration `env:"MONGODB_QUERY_TIMEOUT" env-default:"5s"`
}
