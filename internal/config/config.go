package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded once at startup
// and read-only for the lifetime of the process.
type Config struct {
	Server    ServerConfig
	Generator GeneratorConfig
	DocStore  DocStoreConfig
	Email     EmailConfig
	Notify    NotifyConfig
	Company   CompanyConfig
	Archive   ArchiveConfig
	Webhook   WebhookConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// GeneratorConfig holds text-generation provider settings.
type GeneratorConfig struct {
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
	RateLimitRPM int    `mapstructure:"rate_limit_rpm"`
}

// DocStoreConfig holds document-store settings.
type DocStoreConfig struct {
	BaseFolderID    string `mapstructure:"base_folder_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// NotifyConfig holds internal notification settings.
type NotifyConfig struct {
	InternalAddresses []string `mapstructure:"internal_addresses"`
}

// CompanyConfig holds display fields interpolated into outbound messages.
type CompanyConfig struct {
	Name           string `mapstructure:"name"`
	SignatureName  string `mapstructure:"signature_name"`
	SignatureTitle string `mapstructure:"signature_title"`
	PhoneNumber    string `mapstructure:"phone_number"`
	SupportURL     string `mapstructure:"support_url"`
}

// ArchiveConfig holds raw-document archive settings. Provider "none"
// disables archival.
type ArchiveConfig struct {
	Provider  string `mapstructure:"provider"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// WebhookConfig holds intake webhook settings. An empty Secret disables
// request authentication.
type WebhookConfig struct {
	Secret          string        `mapstructure:"secret"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
}

// Load reads configuration from environment variables with the DEALFLOW_
// prefix. Missing required keys are a hard startup failure; the error names
// every missing key.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DEALFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Generator defaults
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.default_model", "claude-3-5-sonnet-20241022")
	v.SetDefault("generator.max_tokens", 4096)
	v.SetDefault("generator.timeout_secs", 30)
	v.SetDefault("generator.rate_limit_rpm", 0)

	// Document store defaults
	v.SetDefault("docstore.base_folder_id", "")
	v.SetDefault("docstore.credentials_file", "credentials.json")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "")
	v.SetDefault("email.from_name", "")

	// Notification defaults
	v.SetDefault("notify.internal_addresses", "")

	// Company display defaults
	v.SetDefault("company.name", "Your Company")
	v.SetDefault("company.signature_name", "Your Name")
	v.SetDefault("company.signature_title", "Your Title")
	v.SetDefault("company.phone_number", "Your Phone Number")
	v.SetDefault("company.support_url", "https://your-website.com/contact")

	// Archive defaults
	v.SetDefault("archive.provider", "none")
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.endpoint", "")

	// Webhook defaults
	v.SetDefault("webhook.secret", "")
	v.SetDefault("webhook.download_timeout", "60s")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "DEALFLOW_SERVER_PORT",
		"server.read_timeout":       "DEALFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "DEALFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":        "DEALFLOW_SERVER_ENVIRONMENT",
		"generator.api_key":         "DEALFLOW_GENERATOR_API_KEY",
		"generator.default_model":   "DEALFLOW_GENERATOR_DEFAULT_MODEL",
		"generator.max_tokens":      "DEALFLOW_GENERATOR_MAX_TOKENS",
		"generator.timeout_secs":    "DEALFLOW_GENERATOR_TIMEOUT_SECS",
		"generator.rate_limit_rpm":  "DEALFLOW_GENERATOR_RATE_LIMIT_RPM",
		"docstore.base_folder_id":   "DEALFLOW_DOCSTORE_BASE_FOLDER_ID",
		"docstore.credentials_file": "DEALFLOW_DOCSTORE_CREDENTIALS_FILE",
		"email.provider":            "DEALFLOW_EMAIL_PROVIDER",
		"email.region":              "DEALFLOW_EMAIL_REGION",
		"email.from_address":        "DEALFLOW_EMAIL_FROM_ADDRESS",
		"email.from_name":           "DEALFLOW_EMAIL_FROM_NAME",
		"notify.internal_addresses": "DEALFLOW_NOTIFY_INTERNAL_ADDRESSES",
		"company.name":              "DEALFLOW_COMPANY_NAME",
		"company.signature_name":    "DEALFLOW_COMPANY_SIGNATURE_NAME",
		"company.signature_title":   "DEALFLOW_COMPANY_SIGNATURE_TITLE",
		"company.phone_number":      "DEALFLOW_COMPANY_PHONE_NUMBER",
		"company.support_url":       "DEALFLOW_COMPANY_SUPPORT_URL",
		"archive.provider":          "DEALFLOW_ARCHIVE_PROVIDER",
		"archive.region":            "DEALFLOW_ARCHIVE_REGION",
		"archive.bucket":            "DEALFLOW_ARCHIVE_BUCKET",
		"archive.endpoint":          "DEALFLOW_ARCHIVE_ENDPOINT",
		"archive.access_key":        "DEALFLOW_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":        "DEALFLOW_ARCHIVE_SECRET_KEY",
		"webhook.secret":            "DEALFLOW_WEBHOOK_SECRET",
		"webhook.download_timeout":  "DEALFLOW_WEBHOOK_DOWNLOAD_TIMEOUT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DEALFLOW_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DEALFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Generator = GeneratorConfig{
		APIKey:       v.GetString("generator.api_key"),
		DefaultModel: v.GetString("generator.default_model"),
		MaxTokens:    v.GetInt("generator.max_tokens"),
		TimeoutSecs:  v.GetInt("generator.timeout_secs"),
		RateLimitRPM: v.GetInt("generator.rate_limit_rpm"),
	}
	cfg.DocStore = DocStoreConfig{
		BaseFolderID:    v.GetString("docstore.base_folder_id"),
		CredentialsFile: v.GetString("docstore.credentials_file"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Notify = NotifyConfig{
		InternalAddresses: splitList(v.GetString("notify.internal_addresses")),
	}
	cfg.Company = CompanyConfig{
		Name:           v.GetString("company.name"),
		SignatureName:  v.GetString("company.signature_name"),
		SignatureTitle: v.GetString("company.signature_title"),
		PhoneNumber:    v.GetString("company.phone_number"),
		SupportURL:     v.GetString("company.support_url"),
	}
	cfg.Archive = ArchiveConfig{
		Provider:  v.GetString("archive.provider"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}
	cfg.Webhook = WebhookConfig{
		Secret:          v.GetString("webhook.secret"),
		DownloadTimeout: v.GetDuration("webhook.download_timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every required key is present. It collects all
// missing keys so the operator sees them in one pass.
func (c *Config) Validate() error {
	var missing []string
	if c.Generator.APIKey == "" {
		missing = append(missing, "generator.api_key")
	}
	if c.DocStore.BaseFolderID == "" {
		missing = append(missing, "docstore.base_folder_id")
	}
	if c.Email.FromAddress == "" {
		missing = append(missing, "email.from_address")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// splitList parses a comma-separated string into a trimmed, non-empty slice.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
