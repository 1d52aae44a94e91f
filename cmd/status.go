package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doyanishi/slack-format-bot/internal/providers"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show slack-format-bot status",
	RunE:  runStatus,
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := resolvedConfigPath()

	fmt.Printf("%s slack-format-bot Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	fmt.Printf("Config:    %s %s\n", cfgPath, mark(statErr == nil))

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	match := cfg.MatchProvider()
	label := match.Name
	if spec := providers.FindByName(match.Name); spec != nil {
		label = spec.Label()
	}
	fmt.Printf("Provider:  %s\n", label)
	fmt.Printf("Model:     %s\n", match.Model)
	fmt.Printf("API base:  %s\n", match.APIBase)
	fmt.Printf("API key:   %s\n\n", mark(match.APIKey != ""))

	fmt.Println("Slack:")
	fmt.Printf("  %-16s %s\n", "mode", cfg.Slack.Mode)
	fmt.Printf("  %-16s %s\n", "bot token", mark(cfg.Slack.BotToken != ""))
	if cfg.Slack.Socket() {
		fmt.Printf("  %-16s %s\n", "app token", mark(cfg.Slack.AppToken != ""))
	} else {
		fmt.Printf("  %-16s %s\n", "signing secret", mark(cfg.Slack.SigningSecret != ""))
		fmt.Printf("  %-16s http://%s%s\n", "endpoint", cfg.Server.Addr(), cfg.Server.CommandPath)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("\nNot ready to serve:\n%v\n", err)
	}
	return nil
}
