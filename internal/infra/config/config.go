package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	StoreBackend string

	SheetID           string
	SheetName         string
	SheetReadRows     int
	GoogleClientEmail string
	GooglePrivateKey  string

	DatabaseURL string
	DBTable     string
	DBKeyColumn string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	TelegramToken   string
	AdminTelegramID int64

	LogLevel          string
	Environment       string
	CronSpec          string
	HeaderAliasesFile string
	DryRun            bool
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.StoreBackend = strings.ToLower(os.Getenv("STORE_BACKEND"))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = BackendSheets
	}

	switch cfg.StoreBackend {
	case BackendSheets:
		cfg.SheetID = os.Getenv("SHEET_ID")
		if cfg.SheetID == "" {
			return nil, fmt.Errorf("SHEET_ID is not set")
		}
		cfg.GoogleClientEmail = os.Getenv("GOOGLE_CLIENT_EMAIL")
		if cfg.GoogleClientEmail == "" {
			return nil, fmt.Errorf("GOOGLE_CLIENT_EMAIL is not set")
		}
		// Keys pasted into a single-line env var carry literal "\n" sequences.
		cfg.GooglePrivateKey = strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n")
		if cfg.GooglePrivateKey == "" {
			return nil, fmt.Errorf("GOOGLE_PRIVATE_KEY is not set")
		}
	case BackendPostgres, BackendSQLite:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: must be one of sheets, postgres, sqlite", cfg.StoreBackend)
	}

	cfg.SheetName = os.Getenv("SHEET_NAME")
	if cfg.SheetName == "" {
		cfg.SheetName = "Sheet1"
	}
	cfg.SheetReadRows, err = intEnv("SHEET_READ_RANGE_ROWS", 10000)
	if err != nil {
		return nil, err
	}

	cfg.DBTable = os.Getenv("DB_TABLE")
	if cfg.DBTable == "" {
		cfg.DBTable = "registry"
	}
	cfg.DBKeyColumn = os.Getenv("DB_KEY_COLUMN")
	if cfg.DBKeyColumn == "" {
		cfg.DBKeyColumn = "row_id"
	}

	cfg.DryRun, err = boolEnv("DRY_RUN")
	if err != nil {
		return nil, err
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPHost == "" {
		cfg.SMTPHost = "smtp.gmail.com"
	}
	cfg.SMTPPort, err = intEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPUsername = os.Getenv("GMAIL_USER")
	cfg.SMTPPassword = os.Getenv("GMAIL_PASS")
	if !cfg.DryRun {
		if cfg.SMTPUsername == "" {
			return nil, fmt.Errorf("GMAIL_USER is not set")
		}
		if cfg.SMTPPassword == "" {
			return nil, fmt.Errorf("GMAIL_PASS is not set")
		}
	}
	cfg.MailFrom = os.Getenv("MAIL_FROM")
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUsername
	}

	// Admin alerts are optional, but the token and chat ID come as a pair.
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if (cfg.TelegramToken == "") != (adminIDStr == "") {
		return nil, fmt.Errorf("TELEGRAM_TOKEN and ADMIN_TELEGRAM_ID must be set together")
	}
	if adminIDStr != "" {
		cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpec = os.Getenv("CRON_SPEC")
	if cfg.CronSpec == "" {
		cfg.CronSpec = "0 8 * * *" // Default: 08:00 daily, UTC+7
	}

	cfg.HeaderAliasesFile = os.Getenv("HEADER_ALIASES_FILE")

	return cfg, nil
}

// AlertsEnabled reports whether run reports go to an admin Telegram chat.
func (c *AppConfig) AlertsEnabled() bool {
	return c.TelegramToken != "" && c.AdminTelegramID != 0
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, v)
	}
	return n, nil
}

func boolEnv(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
