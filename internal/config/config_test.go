package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dealflow/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DEALFLOW_GENERATOR_API_KEY", "sk-ant-test")
	t.Setenv("DEALFLOW_DOCSTORE_BASE_FOLDER_ID", "root-folder")
	t.Setenv("DEALFLOW_EMAIL_FROM_ADDRESS", "deals@acme.example")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.Generator.DefaultModel)
	assert.Equal(t, 4096, cfg.Generator.MaxTokens)
	assert.Equal(t, 30, cfg.Generator.TimeoutSecs)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, "none", cfg.Archive.Provider)
	assert.Equal(t, 60*time.Second, cfg.Webhook.DownloadTimeout)
	assert.Empty(t, cfg.Notify.InternalAddresses)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DEALFLOW_SERVER_PORT", ":9090")
	t.Setenv("DEALFLOW_GENERATOR_MAX_TOKENS", "2048")
	t.Setenv("DEALFLOW_NOTIFY_INTERNAL_ADDRESSES", "team@acme.example, boss@acme.example,")
	t.Setenv("DEALFLOW_COMPANY_NAME", "Acme Capital")
	t.Setenv("DEALFLOW_EMAIL_PROVIDER", "gmail")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 2048, cfg.Generator.MaxTokens)
	assert.Equal(t, []string{"team@acme.example", "boss@acme.example"}, cfg.Notify.InternalAddresses)
	assert.Equal(t, "Acme Capital", cfg.Company.Name)
	assert.Equal(t, "gmail", cfg.Email.Provider)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "7000")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestValidate_CollectsAllMissingKeys(t *testing.T) {
	cfg := &config.Config{}

	err := cfg.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "generator.api_key")
	assert.Contains(t, err.Error(), "docstore.base_folder_id")
	assert.Contains(t, err.Error(), "email.from_address")
}

func TestValidate_OK(t *testing.T) {
	cfg := &config.Config{}
	cfg.Generator.APIKey = "sk-ant-test"
	cfg.DocStore.BaseFolderID = "root-folder"
	cfg.Email.FromAddress = "deals@acme.example"

	assert.NoError(t, cfg.Validate())
}
