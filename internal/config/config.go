package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Review
	Year              int
	LoanToleranceDays int
	MatchThreshold    float64
	HorizonMonths     int
	ForecastYears     int

	// Database
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
	GoogleOAuthClientFile    string
	GoogleOAuthClientJSON    string
	GoogleOAuthTokenFile     string

	// Worker
	ImportBatchSize int
	ImportInterval  time.Duration

	// Backend selection
	DataBackend   string
	DataDirectory string
}

func Load() *Config {
	cfg := &Config{
		Year:              getEnvInt("BUDGET_YEAR", time.Now().UTC().Year()),
		LoanToleranceDays: getEnvInt("LOAN_TOLERANCE_DAYS", 5),
		MatchThreshold:    getEnvFloat("MATCH_THRESHOLD", 0.7),
		HorizonMonths:     getEnvInt("HORIZON_MONTHS", 12),
		ForecastYears:     getEnvInt("FORECAST_YEARS", 5),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/moneymage.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "moneymage"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "import_transactions"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleOAuthClientFile:    getEnv("GOOGLE_OAUTH_CLIENT_FILE", ""),
		GoogleOAuthClientJSON:    getEnv("GOOGLE_OAUTH_CLIENT_JSON", ""),
		GoogleOAuthTokenFile:     getEnv("GOOGLE_OAUTH_TOKEN_FILE", ""),

		ImportBatchSize: getEnvInt("IMPORT_BATCH_SIZE", 100),
		ImportInterval:  getEnvDuration("IMPORT_INTERVAL", 30*time.Second),

		DataBackend:   getEnv("DATA_BACKEND", "memory"),
		DataDirectory: getEnv("DATA_DIRECTORY", "data"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.Year < 1900 || c.Year > 3000 {
		errors = append(errors, fmt.Sprintf("invalid budget year %d", c.Year))
	}

	if c.LoanToleranceDays < 0 || c.LoanToleranceDays > 31 {
		errors = append(errors, fmt.Sprintf("invalid loan tolerance %d days: must be between 0 and 31", c.LoanToleranceDays))
	}

	if c.MatchThreshold < 0 || c.MatchThreshold > 1 {
		errors = append(errors, fmt.Sprintf("invalid match threshold %.2f: must be between 0 and 1", c.MatchThreshold))
	}

	if c.HorizonMonths < 1 || c.HorizonMonths > 120 {
		errors = append(errors, fmt.Sprintf("invalid horizon %d months: must be between 1 and 120", c.HorizonMonths))
	}

	if c.ForecastYears < 1 || c.ForecastYears > 30 {
		errors = append(errors, fmt.Sprintf("invalid forecast span %d years: must be between 1 and 30", c.ForecastYears))
	}

	validBackends := []string{"memory", "sheets", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.DataBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}

		hasAccountFile := c.GoogleServiceAccountFile != ""
		hasAccountJSON := c.GoogleServiceAccountJSON != ""
		if !hasAccountFile && !hasAccountJSON {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for sheets backend")
		}
		if hasAccountFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if c.ImportBatchSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid import batch size %d: must be at least 1", c.ImportBatchSize))
	} else if c.ImportBatchSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid import batch size %d: must be at most 10000", c.ImportBatchSize))
	}

	if c.ImportInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid import interval %v: must be at least 1 second", c.ImportInterval))
	} else if c.ImportInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid import interval %v: must be at most 24 hours", c.ImportInterval))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
