package config

import (
	"strings"

	"github.com/doyanishi/slack-format-bot/internal/config/provider"
	"github.com/doyanishi/slack-format-bot/internal/providers"
)

// MatchResult is the resolved provider registry entry and connection values.
type MatchResult struct {
	Name    string // registry name, e.g. "openrouter"
	APIKey  string
	APIBase string
	Model   string
}

// MatchProvider resolves which provider registry entry serves the configured model.
//
// Priority order:
//  1. Explicit provider.name when it is a registry entry
//  2. Explicit provider prefix in the model string ("deepseek/deepseek-chat")
//  3. Keyword match in the model name (registry order)
//  4. Fallback: openai
func (c *Config) MatchProvider() MatchResult {
	p := c.Provider
	res := MatchResult{APIKey: p.APIKey, APIBase: p.APIBase, Model: p.Model}

	var spec *providers.ProviderSpec
	if p.Name != "" {
		spec = providers.FindByName(p.Name)
	}
	if spec == nil {
		prefix, _, found := strings.Cut(strings.ToLower(p.Model), "/")
		if found {
			spec = providers.FindByName(strings.ReplaceAll(prefix, "-", "_"))
		}
	}
	if spec == nil {
		spec = providers.FindByModel(p.Model)
	}
	if spec == nil {
		spec = providers.FindByName(provider.ProviderOpenAI)
	}

	res.Name = spec.Name
	if res.APIBase == "" {
		res.APIBase = spec.DefaultAPIBase
	}
	return res
}

// GetProviderName returns the registry name of the matched provider.
func (c *Config) GetProviderName() string {
	return c.MatchProvider().Name
}

// GetAPIBase resolves the effective API base URL.
// Precedence: user-configured apiBase > registry default.
func (c *Config) GetAPIBase() string {
	return c.MatchProvider().APIBase
}
