package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort            string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL         string `env:"DATABASE_URL"`
	RedisAddr           string `env:"REDIS_ADDR"`
	RedisPassword       string `env:"REDIS_PASSWORD"`
	RedisDB             int    `env:"REDIS_DB" envDefault:"0"`
	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
	BatchCooldownHours  int    `env:"BATCH_COOLDOWN_HOURS" envDefault:"24"`
	MatchEventChannel   string `env:"MATCH_EVENT_CHANNEL" envDefault:"matches.created"`
}

// LoadConfig carga la configuración desde variables de entorno.
// DATABASE_URL y REDIS_ADDR son opcionales: sin base el servicio corre con
// repositorios null-object, sin redis el cooldown es en memoria.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
