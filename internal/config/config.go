package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port       string        `mapstructure:"PORT"`
	SiteURL    string        `mapstructure:"SITE_URL"`
	APIBaseURL string        `mapstructure:"API_BASE_URL"`
	APITimeout time.Duration `mapstructure:"API_TIMEOUT"`
	APIRPS     float64       `mapstructure:"API_RPS"`
	APIBurst   int           `mapstructure:"API_BURST"`

	RedisEnabled  bool   `mapstructure:"REDIS_ENABLED"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	CacheTTL     time.Duration `mapstructure:"CACHE_TTL"`
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`
	BookingTTL   time.Duration `mapstructure:"BOOKING_TTL"`
	CookieSecure bool          `mapstructure:"COOKIE_SECURE"`
	LoginRPS     float64       `mapstructure:"LOGIN_RPS"`
	LoginBurst   int           `mapstructure:"LOGIN_BURST"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SITE_URL", "https://leolovestravel.com")
	viper.SetDefault("API_BASE_URL", "https://leolovestravel.com/api/")
	viper.SetDefault("API_TIMEOUT", 10*time.Second)
	viper.SetDefault("API_RPS", 5)
	viper.SetDefault("API_BURST", 10)
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("CACHE_TTL", 5*time.Minute)
	viper.SetDefault("SESSION_TTL", 8*time.Hour)
	viper.SetDefault("BOOKING_TTL", 90*24*time.Hour)
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("LOGIN_RPS", 0.2)
	viper.SetDefault("LOGIN_BURST", 5)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
