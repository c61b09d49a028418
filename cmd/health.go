package cmd

import (
	"context"
	"fmt"

	"github.com/longkey1/translitc/internal/api"
	"github.com/longkey1/translitc/internal/translit/config"
	"github.com/spf13/cobra"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the transliteration service health",
	Long: `Query the service health endpoint (health_url) and report its status.
Exits with a non-zero status if the service reports itself unhealthy.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		status, err := api.NewClient(cfg, log).Health(context.Background())
		if err != nil {
			return fmt.Errorf("checking health: %w", err)
		}

		out := cmd.OutOrStdout()
		if showJSON {
			if err := writeJSON(out, status); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "Status: %s\n", status.Status)
			if status.Database != "" {
				fmt.Fprintf(out, "Database: %s\n", status.Database)
			}
			fmt.Fprintf(out, "Feedback received: %d\n", status.FeedbackCount)
			if status.Error != "" {
				fmt.Fprintf(out, "Error: %s\n", status.Error)
			}
		}

		if !status.Healthy() {
			return fmt.Errorf("service is %s", status.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)

	healthCmd.Flags().BoolVar(&showJSON, "json", false, "Print the health payload as JSON")
}
