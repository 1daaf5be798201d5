package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Booking BookingConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// BookingConfig carries the scheduling policy knobs.
type BookingConfig struct {
	// DefaultSlotMinutes is used when a doctor is created without an explicit granularity.
	DefaultSlotMinutes int
	// NoShowGrace is how long after a slot window ends before a still-scheduled
	// appointment is swept to no_show.
	NoShowGrace time.Duration
	// NoShowSweepInterval is how often the background sweep runs.
	NoShowSweepInterval time.Duration
	// BookingTimeout bounds a single booking request end to end.
	BookingTimeout time.Duration
	// RequireConfirmation controls whether completed requires a prior confirmed status.
	RequireConfirmation bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	noShowGrace, err := time.ParseDuration(viper.GetString("BOOKING_NO_SHOW_GRACE"))
	if err != nil {
		noShowGrace = 30 * time.Minute
	}

	sweepInterval, err := time.ParseDuration(viper.GetString("BOOKING_NO_SHOW_SWEEP_INTERVAL"))
	if err != nil {
		sweepInterval = 5 * time.Minute
	}

	bookingTimeout, err := time.ParseDuration(viper.GetString("BOOKING_TIMEOUT"))
	if err != nil {
		bookingTimeout = 10 * time.Second
	}

	slotMinutes := viper.GetInt("BOOKING_DEFAULT_SLOT_MINUTES")
	if slotMinutes <= 0 {
		slotMinutes = 30
	}

	migrationsDir := viper.GetString("DB_MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Name:          viper.GetString("DB_NAME"),
			MigrationsDir: migrationsDir,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Booking: BookingConfig{
			DefaultSlotMinutes:  slotMinutes,
			NoShowGrace:         noShowGrace,
			NoShowSweepInterval: sweepInterval,
			BookingTimeout:      bookingTimeout,
			RequireConfirmation: viper.GetBool("BOOKING_REQUIRE_CONFIRMATION"),
		},
	}

	return config, nil
}
