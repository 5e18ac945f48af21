package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "fieldservice")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPPort, cfg.HTTPPort)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSslMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, SchedulerConfig{
		MaxLoad:                      DefaultMaxLoad,
		AutoAssignSchedule:           DefaultAutoAssignSchedule,
		AutoAssignBatchSize:          DefaultAutoAssignBatchSize,
		NotificationDispatchSchedule: DefaultNotificationDispatchSchedule,
		NotificationBatchSize:        DefaultNotificationBatchSize,
	}, cfg.Scheduler)
}

func TestLoadConfig_Environment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SCHEDULER_MAX_LOAD", "5")
	t.Setenv("NOTIFICATION_BATCH_SIZE", "20")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 5, cfg.Scheduler.MaxLoad)
	assert.Equal(t, 20, cfg.Scheduler.NotificationBatchSize)
}

func TestLoadConfig_FileOverridesSchedulingPolicy(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCHEDULER_MAX_LOAD", "5")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scheduler:
  maxLoad: 2
  autoAssignSchedule: "*/30 * * * * *"
`), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Scheduler.MaxLoad)
	assert.Equal(t, "*/30 * * * * *", cfg.Scheduler.AutoAssignSchedule)
	assert.Equal(t, DefaultNotificationBatchSize, cfg.Scheduler.NotificationBatchSize)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}, errs.ErrValueIsRequired},
		{"missing db host", map[string]string{"DB_HOST": ""}, errs.ErrValueIsRequired},
		{"non numeric load", map[string]string{"SCHEDULER_MAX_LOAD": "three"}, errs.ErrValueIsInvalid},
		{"zero load", map[string]string{"SCHEDULER_MAX_LOAD": "0"}, errs.ErrValueIsOutOfRange},
		{"negative batch", map[string]string{"NOTIFICATION_BATCH_SIZE": "-1"}, errs.ErrValueIsOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scheduler: [unterminated"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := LoadConfig()

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSslMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DSN())
}
