package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"fieldservice/internal/pkg/errs"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHTTPPort                     = "8080"
	DefaultMaxLoad                      = 3
	DefaultAutoAssignSchedule           = "0 * * * * *"
	DefaultAutoAssignBatchSize          = 50
	DefaultNotificationDispatchSchedule = "*/10 * * * * *"
	DefaultNotificationBatchSize        = 100
)

type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	LogLevel      string
	Scheduler     SchedulerConfig
}

// SchedulerConfig is the scheduling policy. It can also be read from the YAML file named
// by CONFIG_FILE, whose non-zero values take precedence over the environment.
type SchedulerConfig struct {
	MaxLoad                      int    `yaml:"maxLoad"`
	AutoAssignSchedule           string `yaml:"autoAssignSchedule"`
	AutoAssignBatchSize          int    `yaml:"autoAssignBatchSize"`
	NotificationDispatchSchedule string `yaml:"notificationDispatchSchedule"`
	NotificationBatchSize        int    `yaml:"notificationBatchSize"`
}

type fileConfig struct {
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// LoadConfig reads .env when present, then the process environment, then CONFIG_FILE.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	maxLoad, err := intVariable("SCHEDULER_MAX_LOAD", DefaultMaxLoad)
	if err != nil {
		return Config{}, err
	}
	autoAssignBatchSize, err := intVariable("AUTO_ASSIGN_BATCH_SIZE", DefaultAutoAssignBatchSize)
	if err != nil {
		return Config{}, err
	}
	notificationBatchSize, err := intVariable("NOTIFICATION_BATCH_SIZE", DefaultNotificationBatchSize)
	if err != nil {
		return Config{}, err
	}

	config := Config{
		HTTPPort:      stringVariable("HTTP_PORT", DefaultHTTPPort),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        stringVariable("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     stringVariable("DB_SSLMODE", "disable"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		LogLevel:      stringVariable("LOG_LEVEL", "info"),
		Scheduler: SchedulerConfig{
			MaxLoad:                      maxLoad,
			AutoAssignSchedule:           stringVariable("AUTO_ASSIGN_SCHEDULE", DefaultAutoAssignSchedule),
			AutoAssignBatchSize:          autoAssignBatchSize,
			NotificationDispatchSchedule: stringVariable("NOTIFICATION_DISPATCH_SCHEDULE", DefaultNotificationDispatchSchedule),
			NotificationBatchSize:        notificationBatchSize,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err = config.Scheduler.merge(path); err != nil {
			return Config{}, err
		}
	}

	return config, config.Validate()
}

func (c Config) Validate() error {
	var err error
	if c.DBHost == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("DB_HOST"))
	}
	if c.DBName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("DB_NAME"))
	}
	if c.JWTSecret == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("JWT_SECRET"))
	}
	if c.Scheduler.MaxLoad < 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("SCHEDULER_MAX_LOAD", c.Scheduler.MaxLoad, 1, "unbounded"))
	}
	if c.Scheduler.AutoAssignBatchSize < 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("AUTO_ASSIGN_BATCH_SIZE", c.Scheduler.AutoAssignBatchSize, 1, "unbounded"))
	}
	if c.Scheduler.NotificationBatchSize < 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("NOTIFICATION_BATCH_SIZE", c.Scheduler.NotificationBatchSize, 1, "unbounded"))
	}
	return err
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (s *SchedulerConfig) merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var file fileConfig
	if err = yaml.Unmarshal(data, &file); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("CONFIG_FILE", err)
	}

	override := file.Scheduler
	if override.MaxLoad != 0 {
		s.MaxLoad = override.MaxLoad
	}
	if override.AutoAssignSchedule != "" {
		s.AutoAssignSchedule = override.AutoAssignSchedule
	}
	if override.AutoAssignBatchSize != 0 {
		s.AutoAssignBatchSize = override.AutoAssignBatchSize
	}
	if override.NotificationDispatchSchedule != "" {
		s.NotificationDispatchSchedule = override.NotificationDispatchSchedule
	}
	if override.NotificationBatchSize != 0 {
		s.NotificationBatchSize = override.NotificationBatchSize
	}
	return nil
}

func stringVariable(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intVariable(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return n, nil
}
