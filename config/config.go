package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the app reads from the environment.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Telegram     TelegramConfig
	JWT          JWTConfig
	Admin        AdminConfig
	Subscription SubscriptionConfig
	Scheduler    SchedulerConfig
	Log          LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Path string
}

// TelegramConfig carries the outbound-notification side of the bots.
// The conversational front-ends themselves live outside this service.
type TelegramConfig struct {
	BotToken    string
	AdminChatID int64
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// AdminConfig holds the shared admin password. Once an admin rotates it
// through the API, the stored hash takes precedence over this default.
type AdminConfig struct {
	Password string
}

// SubscriptionConfig holds premium pricing and the free-tier limit.
// Prices are in so'm, matching the payment card details shown to users.
type SubscriptionConfig struct {
	MonthlyPrice      float64
	YearlyPrice       float64
	FreePropertyLimit int
}

type SchedulerConfig struct {
	ReminderLeadDays int
	ReminderCron     string
	OverdueCron      string
	BillingResetCron string
}

type LogConfig struct {
	Level string
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "rental_bot.db"),
		},
		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			AdminChatID: getEnvAsInt64("ADMIN_CHAT_ID", 0),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "rentbotsecret"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Admin: AdminConfig{
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		Subscription: SubscriptionConfig{
			MonthlyPrice:      getEnvAsFloat("MONTHLY_SUBSCRIPTION_PRICE", 12000),
			YearlyPrice:       getEnvAsFloat("YEARLY_SUBSCRIPTION_PRICE", 100000),
			FreePropertyLimit: getEnvAsInt("FREE_PROPERTY_LIMIT", 1),
		},
		Scheduler: SchedulerConfig{
			ReminderLeadDays: getEnvAsInt("RENT_REMINDER_DAYS", 3),
			ReminderCron:     getEnv("REMINDER_CRON", "0 9 * * *"),
			OverdueCron:      getEnv("OVERDUE_CRON", "0 10 * * *"),
			BillingResetCron: getEnv("BILLING_RESET_CRON", "5 0 1 * *"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
