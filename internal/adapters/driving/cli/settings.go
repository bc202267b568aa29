package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the backend connection, editor behaviour and the
local edit history.

Use subcommands to change single settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save it to the config file.

Keys:
  backend.url            backend origin, e.g. http://localhost:8000
  backend.timeout        per-request timeout, e.g. 30s (0 waits indefinitely)
  backend.rate_limit     requests per second (0 is unlimited)
  editor.refresh_delay   wait before browsing again after an edit, e.g. 1.5s
  editor.default_action  overwrite or append
  history.enabled        record edits in the local history (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Backend]")
	cmd.Printf("  URL: %s\n", settings.Backend.URL)
	cmd.Printf("  Timeout: %s\n", describeTimeout(settings.Backend.Timeout))
	cmd.Printf("  Rate limit: %s\n", describeRateLimit(settings.Backend.RateLimit))
	cmd.Println()

	cmd.Println("[Editor]")
	cmd.Printf("  Refresh delay: %s\n", settings.Editor.RefreshDelay)
	cmd.Printf("  Default action: %s\n", settings.Editor.DefaultAction)
	cmd.Println()

	cmd.Println("[History]")
	status := "enabled"
	if !settings.History.Enabled {
		status = "disabled"
	}
	cmd.Printf("  Status: %s\n", status)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w (keys: %s)", key, err, strings.Join(settingsService.Keys(), ", "))
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("chunkctl Settings Wizard")
	cmd.Println("========================")
	cmd.Println("Press enter to keep the current value.")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Backend
	cmd.Println("Step 1: Backend")
	cmd.Println("---------------")
	settings.Backend.URL = prompt(cmd, reader, "Backend URL", settings.Backend.URL)
	if d, ok := promptDuration(cmd, reader, "Request timeout", settings.Backend.Timeout); ok {
		settings.Backend.Timeout = d
	}
	cmd.Println()

	// Step 2: Editor
	cmd.Println("Step 2: Editor")
	cmd.Println("--------------")
	if d, ok := promptDuration(cmd, reader, "Refresh delay", settings.Editor.RefreshDelay); ok {
		settings.Editor.RefreshDelay = d
	}
	actions := []domain.EditAction{domain.ActionOverwrite, domain.ActionAppend}
	current := 1
	for i, a := range actions {
		cmd.Printf("  %d. %s\n", i+1, a)
		if a == settings.Editor.DefaultAction {
			current = i + 1
		}
	}
	cmd.Printf("Default action [%d]: ", current)
	settings.Editor.DefaultAction = actions[parseChoice(readLine(reader), len(actions), current)-1]
	cmd.Println()

	// Step 3: History
	cmd.Println("Step 3: History")
	cmd.Println("---------------")
	enabled := prompt(cmd, reader, "Record edits (true/false)", strconv.FormatBool(settings.History.Enabled))
	if b, err := strconv.ParseBool(enabled); err == nil {
		settings.History.Enabled = b
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("All settings are valid and saved.")
	return nil
}

func describeTimeout(d time.Duration) string {
	if d == 0 {
		return "none"
	}
	return d.String()
}

func describeRateLimit(rps float64) string {
	if rps == 0 {
		return "unlimited"
	}
	return strconv.FormatFloat(rps, 'f', -1, 64) + " req/s"
}

func prompt(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	cmd.Printf("%s [%s]: ", label, current)
	if input := readLine(reader); input != "" {
		return input
	}
	return current
}

func promptDuration(cmd *cobra.Command, reader *bufio.Reader, label string, current time.Duration) (time.Duration, bool) {
	input := prompt(cmd, reader, label, current.String())
	d, err := time.ParseDuration(input)
	if err != nil {
		cmd.Printf("Invalid duration %q, keeping %s\n", input, current)
		return current, false
	}
	return d, true
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

