package config

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	RunMigrations  bool
	ServerPort     string
	GinMode        string
	JWTSecret      string
	JWTExpiryHours int
	WebhookSecret  string
	LogLevel       string
	LogFormat      string
	MaxWorkspaces  int
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Info("⚠️  No .env file found, using system environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		RunMigrations:  v.GetBool("DB_RUN_MIGRATIONS"),
		ServerPort:     v.GetString("SERVER_PORT"),
		GinMode:        v.GetString("GIN_MODE"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		WebhookSecret:  v.GetString("CLERK_WEBHOOK_SECRET"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		MaxWorkspaces:  v.GetInt("MAX_WORKSPACES_PER_USER"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "tickr_user")
	v.SetDefault("DB_PASSWORD", "tickr_pass")
	v.SetDefault("DB_NAME", "tickr_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_RUN_MIGRATIONS", true)
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("JWT_SECRET", "supersecretkey")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("CLERK_WEBHOOK_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("MAX_WORKSPACES_PER_USER", 5)
}
