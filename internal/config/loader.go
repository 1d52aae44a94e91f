package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ConfigPath returns the default configuration file path: ~/.slack-format-bot/config.json.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".slack-format-bot/config.json"
	}
	return filepath.Join(home, ".slack-format-bot", "config.json")
}

// envOverrides lists the environment variables that take precedence over the file.
type envOverrides struct {
	SlackBotToken      string `envconfig:"SLACK_BOT_TOKEN"`
	SlackAppToken      string `envconfig:"SLACK_APP_TOKEN"`
	SlackSigningSecret string `envconfig:"SLACK_SIGNING_SECRET"`
	SlackMode          string `envconfig:"FORMATBOT_SLACK_MODE"`
	OpenAIAPIKey       string `envconfig:"OPENAI_API_KEY"`
	Provider           string `envconfig:"FORMATBOT_PROVIDER"`
	Model              string `envconfig:"FORMATBOT_MODEL"`
	APIBase            string `envconfig:"FORMATBOT_API_BASE"`
	Port               int    `envconfig:"FORMATBOT_PORT"`
	Host               string `envconfig:"FORMATBOT_HOST"`
}

// Load reads and parses the config file at path, then overlays the environment.
// If path is empty, ConfigPath() is used.
// A missing file yields DefaultConfig(); on parse failure it prints a warning
// and falls back to DefaultConfig().
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, &cfg); err != nil {
			fmt.Printf("Warning: failed to parse config %s: %v\n", path, err)
			fmt.Println("Using default configuration.")
			cfg = DefaultConfig()
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path. The encoding follows the file extension.
// If path is empty, ConfigPath() is used.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
		// Append a trailing newline for POSIX compliance.
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func decode(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Slack.BotToken, env.SlackBotToken)
	set(&cfg.Slack.AppToken, env.SlackAppToken)
	set(&cfg.Slack.SigningSecret, env.SlackSigningSecret)
	set(&cfg.Slack.Mode, env.SlackMode)
	set(&cfg.Provider.APIKey, env.OpenAIAPIKey)
	set(&cfg.Provider.Name, env.Provider)
	set(&cfg.Provider.Model, env.Model)
	set(&cfg.Provider.APIBase, env.APIBase)
	set(&cfg.Server.Host, env.Host)
	if env.Port > 0 {
		cfg.Server.Port = env.Port
	}
	return nil
}
