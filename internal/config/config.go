package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
)

const envPrefix = "PRTITLE"

type (
	Config struct {
		Server   ServerConfig
		Log      LogConfig
		Language string
		AI       AIConfig
		GitHub   GitHubConfig

		// PathFile is the config file that was read, empty when only defaults
		// and environment variables were used.
		PathFile string
	}

	ServerConfig struct {
		Address      string
		Port         int
		WebhookPath  string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
	}

	LogConfig struct {
		Level  string
		Format string
	}

	AIConfig struct {
		Provider     AI
		Model        Model
		BaseURL      string
		Timeout      time.Duration
		OpenAIAPIKey string
		GeminiAPIKey string
	}

	GitHubConfig struct {
		AppID          int64
		PrivateKeyPath string
		PrivateKey     string
		Token          string
		BaseURL        string
		Timeout        time.Duration
	}
)

// Load reads configuration from an optional .env file, an optional YAML file
// and PRTITLE_* environment variables, in increasing order of precedence.
// An empty path looks for config.yaml in the working directory and ./config.
func Load(path string) (*Config, error) {
	// .env is optional; variables already present in the environment win.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The API secrets also accept the provider's conventional variable names.
	_ = v.BindEnv("openai.api.key", envPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("gemini.api_key", envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("github.token", envPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, domainErrors.ErrInvalidConfig.
				WithContext("path", path).
				WithError(fmt.Errorf("reading config file: %w", err))
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Address:      v.GetString("server.address"),
			Port:         v.GetInt("server.port"),
			WebhookPath:  v.GetString("server.webhook_path"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Language: v.GetString("language"),
		AI: AIConfig{
			Provider:     AI(strings.ToLower(v.GetString("ai.provider"))),
			Model:        Model(v.GetString("ai.model")),
			BaseURL:      v.GetString("ai.base_url"),
			Timeout:      v.GetDuration("ai.timeout"),
			OpenAIAPIKey: v.GetString("openai.api.key"),
			GeminiAPIKey: v.GetString("gemini.api_key"),
		},
		GitHub: GitHubConfig{
			AppID:          v.GetInt64("github.app_id"),
			PrivateKeyPath: v.GetString("github.private_key_path"),
			PrivateKey:     v.GetString("github.private_key"),
			Token:          v.GetString("github.token"),
			BaseURL:        v.GetString("github.base_url"),
			Timeout:        v.GetDuration("github.timeout"),
		},
		PathFile: v.ConfigFileUsed(),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.webhook_path", "/webhook")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("language", LangEN)

	v.SetDefault("ai.provider", string(AIOpenAI))
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.base_url", DefaultOpenAIBaseURL)
	v.SetDefault("ai.timeout", 60*time.Second)

	v.SetDefault("github.app_id", 0)
	v.SetDefault("github.private_key_path", "")
	v.SetDefault("github.private_key", "")
	v.SetDefault("github.base_url", "")
	v.SetDefault("github.timeout", 30*time.Second)
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return domainErrors.ErrInvalidConfig.WithContext("server.port", cfg.Server.Port).
			WithError(errors.New("server.port must be between 1 and 65535"))
	}
	if !strings.HasPrefix(cfg.Server.WebhookPath, "/") {
		return domainErrors.ErrInvalidConfig.WithContext("server.webhook_path", cfg.Server.WebhookPath).
			WithError(errors.New("server.webhook_path must start with '/'"))
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 || cfg.AI.Timeout <= 0 || cfg.GitHub.Timeout <= 0 {
		return domainErrors.ErrInvalidConfig.WithError(errors.New("timeouts must be positive"))
	}
	if !isSupportedLanguage(cfg.Language) {
		return domainErrors.ErrLanguageNotSupported.WithContext("language", cfg.Language)
	}

	supported := false
	for _, ai := range SupportedAIs() {
		if cfg.AI.Provider == ai {
			supported = true
			break
		}
	}
	if !supported {
		return domainErrors.ErrProviderNotSupported.WithContext("provider", string(cfg.AI.Provider))
	}

	return nil
}

// ValidateCredentials checks the secrets needed to talk to the completion API
// and to GitHub. Commands that only classify titles do not call it.
func (c *Config) ValidateCredentials() error {
	if c.AI.APIKey() == "" {
		return domainErrors.ErrAPIKeyMissing.WithContext("provider", string(c.AI.Provider))
	}
	if !c.GitHub.UsesApp() && c.GitHub.Token == "" {
		return domainErrors.ErrGitHubCredentialsMissing
	}
	if c.GitHub.AppID != 0 && c.GitHub.PrivateKeyPath == "" && c.GitHub.PrivateKey == "" {
		return domainErrors.ErrGitHubCredentialsMissing.
			WithError(errors.New("github.app_id is set but no private key was configured"))
	}
	return nil
}

// ListenAddr returns the host:port the webhook server binds to.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Server.Address, strconv.Itoa(c.Server.Port))
}

// APIKey returns the secret of the active provider.
func (a AIConfig) APIKey() string {
	switch a.Provider {
	case AIGemini:
		return a.GeminiAPIKey
	default:
		return a.OpenAIAPIKey
	}
}

// ModelName returns the configured model, or the provider default.
func (a AIConfig) ModelName() string {
	if a.Model != "" {
		return string(a.Model)
	}
	return string(DefaultModelForAI(a.Provider))
}

// UsesApp reports whether GitHub App installation auth is configured.
func (g GitHubConfig) UsesApp() bool {
	return g.AppID != 0 && (g.PrivateKeyPath != "" || g.PrivateKey != "")
}
