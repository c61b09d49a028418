package cmd

import (
	"context"
	"fmt"

	"github.com/longkey1/translitc/internal/translit"
	"github.com/longkey1/translitc/internal/translit/config"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

// correctCmd represents the correct command
var correctCmd = &cobra.Command{
	Use:   "correct <source-text> <corrected-text>",
	Short: "Submit a correction for a transliteration",
	Long: `Submit a correction pairing the original text with the expected transliteration.
The service uses contributed corrections to improve future output.

Inside an interactive session, use /wrong and /submit instead.

Example:
  translitc correct hi ਹਾਇ`,
	Args: cobra.ExactArgs(2),
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

		client, err := newClient(cfg, log)
		if err != nil {
			return fmt.Errorf("creating client: %w", err)
		}

		correction := translit.Correction{
			Key:   norm.NFC.String(args[0]),
			Value: norm.NFC.String(args[1]),
		}
		if err := client.Contribute(context.Background(), correction); err != nil {
			log.Error("correction", "correction submission failed", map[string]interface{}{"error": err})
			return fmt.Errorf("submitting correction: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Correction submitted. Thank you!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(correctCmd)
}
