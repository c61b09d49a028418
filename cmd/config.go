package cmd

import (
	"fmt"
	"strings"

	"github.com/longkey1/translitc/internal/translit/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFields = "configfile, transliterate_url, contribute_url, health_url, token, language, min_latency, http_timeout, log_file, log_level"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: ` + configFields + `

Examples:
  translitc config                    # Show all configuration
  translitc config transliterate_url  # Show only the transliteration endpoint
  translitc config language           # Show only the default language mode
  translitc config token              # Show only the (masked) token`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		out := cmd.OutOrStdout()

		// If a field is specified, show only that field
		if len(args) > 0 {
			switch strings.ToLower(args[0]) {
			case "configfile":
				fmt.Fprintln(out, viper.ConfigFileUsed())
			case "transliterate_url", "transliterateurl":
				fmt.Fprintln(out, cfg.TransliterateURL)
			case "contribute_url", "contributeurl":
				fmt.Fprintln(out, cfg.ContributeURL)
			case "health_url", "healthurl":
				fmt.Fprintln(out, cfg.HealthURL)
			case "token":
				fmt.Fprintln(out, maskToken(cfg.Token))
			case "language":
				fmt.Fprintln(out, displayLanguage(cfg.Language))
			case "min_latency", "minlatency":
				fmt.Fprintln(out, cfg.MinLatency)
			case "http_timeout", "httptimeout":
				fmt.Fprintln(out, cfg.HTTPTimeout)
			case "log_file", "logfile":
				fmt.Fprintln(out, cfg.LogFile)
			case "log_level", "loglevel":
				fmt.Fprintln(out, cfg.LogLevel)
			default:
				return fmt.Errorf("unknown field: %s\nAvailable fields: %s", args[0], configFields)
			}
			return nil
		}

		fmt.Fprintf(out, "ConfigFile: %s\n", viper.ConfigFileUsed())
		fmt.Fprintf(out, "TransliterateURL: %s\n", cfg.TransliterateURL)
		fmt.Fprintf(out, "ContributeURL: %s\n", cfg.ContributeURL)
		fmt.Fprintf(out, "HealthURL: %s\n", cfg.HealthURL)
		fmt.Fprintf(out, "Token: %s\n", maskToken(cfg.Token))
		fmt.Fprintf(out, "Language: %s\n", displayLanguage(cfg.Language))
		fmt.Fprintf(out, "MinLatency: %s\n", cfg.MinLatency)
		fmt.Fprintf(out, "HTTPTimeout: %s\n", cfg.HTTPTimeout)
		fmt.Fprintf(out, "LogFile: %s\n", cfg.LogFile)
		fmt.Fprintf(out, "LogLevel: %s\n", cfg.LogLevel)
		return nil
	},
}

// maskToken returns a masked version of the token for security
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func displayLanguage(code string) string {
	if code == "" {
		return "auto"
	}
	return code
}

func init() {
	rootCmd.AddCommand(configCmd)
}
