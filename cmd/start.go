package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/longkey1/translitc/internal/translit/config"
	"github.com/longkey1/translitc/internal/translit/session"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var startLanguage string

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an interactive transliteration session",
	Long: `Start an interactive session. Each line you type is sent to the transliteration
service and the result is shown as a numbered message.

Mark a result as wrong with /wrong <n> to open a correction form, fill it with
/source and /fix, then /submit it. Type /help for all commands.

The conversation lives in memory only and ends when you exit.

Examples:
  translitc start                # Auto-detect the language
  translitc start -l en-pa       # English to Punjabi`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		lang, err := resolveLanguage(cmd, cfg, startLanguage)
		if err != nil {
			return err
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

		sess := session.New(session.Options{
			Client:     client,
			Logger:     log,
			Language:   lang,
			MinLatency: cfg.MinLatency,
		})
		defer sess.Close()

		interactive := isatty.IsTerminal(os.Stderr.Fd()) && !color.NoColor

		fmt.Fprintf(cmd.ErrOrStderr(), "\n=== Interactive Transliteration ===\n")
		fmt.Fprintf(cmd.ErrOrStderr(), "Language: %s (%s)\n", lang, lang.Label())
		fmt.Fprintf(cmd.ErrOrStderr(), "Type '/help' for commands, '/exit' or 'Ctrl+D' to quit\n")
		fmt.Fprintf(cmd.ErrOrStderr(), "===================================\n\n")

		return newREPL(sess, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), interactive).run()
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVarP(&startLanguage, "language", "l", "", "Language mode (auto, en-pa, en-hi, en-ar, en-es)")
}
