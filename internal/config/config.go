package config

import (
	"os"
	"strconv"
	"strings"

	"go-cookie-shop/internal/spin"
)

// StoreConfig selects and configures the persistence backend
type StoreConfig struct {
	Backend         string // "sheets" or "mysql"
	SheetID         string
	CredentialsFile string
	MySQLDSN        string
}

// TelegramConfig configures the notification fan-out
type TelegramConfig struct {
	BotToken string
	ChatIDs  []string
}

// AuthConfig holds the static staff credentials for the orders list.
// PasswordHash (bcrypt) takes precedence over the plain Password when
// both are set.
type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string
	JWTSecret    string
}

// Config is everything the server reads from the environment
type Config struct {
	Port          string
	BaseURL       string
	SpinThreshold int64
	Store         StoreConfig
	Telegram      TelegramConfig
	Auth          AuthConfig
}

// Load reads the configuration from environment variables, applying the
// same defaults the original deployment used.
func Load() Config {
	threshold := spin.DefaultThreshold
	if raw := os.Getenv("SPIN_THRESHOLD"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			threshold = parsed
		}
	}

	var chatIDs []string
	for _, id := range strings.Split(os.Getenv("TELEGRAM_CHAT_IDS"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			chatIDs = append(chatIDs, id)
		}
	}

	return Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		BaseURL:       getEnvOrDefault("BASE_URL", "http://localhost:8080"),
		SpinThreshold: threshold,
		Store: StoreConfig{
			Backend:         getEnvOrDefault("STORE_BACKEND", "sheets"),
			SheetID:         os.Getenv("GOOGLE_SHEET_ID"),
			CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
			MySQLDSN:        os.Getenv("DB_DSN"),
		},
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatIDs:  chatIDs,
		},
		Auth: AuthConfig{
			Username:     getEnvOrDefault("ORDERS_LIST_USERNAME", "admin"),
			Password:     os.Getenv("ORDERS_LIST_PASSWORD"),
			PasswordHash: os.Getenv("ORDERS_LIST_PASSWORD_HASH"),
			JWTSecret:    getEnvOrDefault("JWT_SECRET", "cookie_shop_dev_secret"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
