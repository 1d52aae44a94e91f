package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doyanishi/slack-format-bot/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize configuration",
	RunE:  runOnboard,
}

func runOnboard(_ *cobra.Command, _ []string) error {
	cfgPath := resolvedConfigPath()

	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		fmt.Printf("Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
		fmt.Scanln()
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	fmt.Printf("\n%s slack-format-bot is ready!\n\n", logo)
	fmt.Println("Next steps:")
	fmt.Println("  1. Export SLACK_BOT_TOKEN (scopes: channels:history, chat:write, chat:write.customize)")
	fmt.Println("     and SLACK_SIGNING_SECRET, or SLACK_APP_TOKEN for socket mode")
	fmt.Println("  2. Export OPENAI_API_KEY")
	fmt.Println("  3. Try it: slack-format-bot rewrite -m \"資料送って\"")
	fmt.Println("  4. Serve:  slack-format-bot serve")
	return nil
}
