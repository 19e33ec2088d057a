package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"workorder-service/internal/model"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
	AccessTTL    time.Duration
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Rates       model.RateTable
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
			AccessTTL:    v.GetDuration("JWT_ACCESS_TTL"),
		},
		Rates: model.RateTable{
			FirstHourTechnician:  v.GetFloat64("RATE_FIRST_HOUR_TECHNICIAN"),
			HourTechnician:       v.GetFloat64("RATE_HOUR_TECHNICIAN"),
			HourHelper:           v.GetFloat64("RATE_HOUR_HELPER"),
			TravelHourTechnician: v.GetFloat64("RATE_TRAVEL_HOUR_TECHNICIAN"),
			TravelHourHelper:     v.GetFloat64("RATE_TRAVEL_HOUR_HELPER"),
			PerKM:                v.GetFloat64("RATE_PER_KM"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Auth.AccessTTL <= 0 {
		cfg.Auth.AccessTTL = 30 * time.Minute
	}
	applyRateDefaults(&cfg.Rates)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyRateDefaults fills unset rates with the current assistance rate card.
func applyRateDefaults(rates *model.RateTable) {
	if rates.FirstHourTechnician == 0 {
		rates.FirstHourTechnician = 87.01
	}
	if rates.HourTechnician == 0 {
		rates.HourTechnician = 62.15
	}
	if rates.HourHelper == 0 {
		rates.HourHelper = 27.57
	}
	if rates.TravelHourTechnician == 0 {
		rates.TravelHourTechnician = 24.86
	}
	if rates.TravelHourHelper == 0 {
		rates.TravelHourHelper = 12.43
	}
	if rates.PerKM == 0 {
		rates.PerKM = 1.15
	}
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}
