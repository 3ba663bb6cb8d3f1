package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	AMQPURL           string
	AMQPExchange      string
	LogLevel          string
	LogFormat         string
	ReminderSchedule  string
	ReminderLeadTime  time.Duration
	OpenAPIValidation bool
}

var defaults = map[string]any{
	"HTTP_PORT":          "8080",
	"DB_HOST":            "localhost",
	"DB_PORT":            "5432",
	"DB_USER":            "postgres",
	"DB_PASSWORD":        "",
	"DB_NAME":            "repairshop",
	"DB_SSLMODE":         "disable",
	"AMQP_URL":           "",
	"AMQP_EXCHANGE":      "repairshop.events",
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "json",
	"REMINDER_SCHEDULE":  "0 */5 * * * *",
	"REMINDER_LEAD_TIME": "24h",
	"OPENAPI_VALIDATION": true,
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	lead, err := time.ParseDuration(v.GetString("REMINDER_LEAD_TIME"))
	if err != nil {
		return Config{}, fmt.Errorf("REMINDER_LEAD_TIME: %w", err)
	}
	if lead <= 0 {
		return Config{}, fmt.Errorf("REMINDER_LEAD_TIME: %s is not positive", lead)
	}

	return Config{
		HTTPPort:          v.GetString("HTTP_PORT"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		DBSslMode:         v.GetString("DB_SSLMODE"),
		AMQPURL:           v.GetString("AMQP_URL"),
		AMQPExchange:      v.GetString("AMQP_EXCHANGE"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		ReminderSchedule:  v.GetString("REMINDER_SCHEDULE"),
		ReminderLeadTime:  lead,
		OpenAPIValidation: v.GetBool("OPENAPI_VALIDATION"),
	}, nil
}

// DSN is the PostgreSQL connection URL, understood by both pgx and lib/pq.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}
