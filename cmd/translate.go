/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/longkey1/translitc/internal/translit"
	"github.com/longkey1/translitc/internal/translit/config"
	"github.com/longkey1/translitc/internal/translit/session"
	"github.com/spf13/cobra"
)

var (
	language  string
	useEditor bool
	showJSON  bool
)

// errTransliterationFailed is returned when the session logs an error Bot message
var errTransliterationFailed = errors.New("transliteration failed")

// translateCmd represents the translate command
var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Transliterate text once",
	Long: `Send text to the transliteration service and print the result.
This command performs one request/response cycle.

For an interactive conversation with feedback and corrections, use 'translitc start' instead.

If no text is provided as an argument, it reads from stdin.
If --editor flag is set, it opens the default editor (from EDITOR environment variable) to compose the text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		lang, err := resolveLanguage(cmd, cfg, language)
		if err != nil {
			return err
		}

		var text string
		if useEditor {
			text, err = getMessageFromEditor()
			if err != nil {
				return fmt.Errorf("getting text from editor: %w", err)
			}
		} else if len(args) > 0 {
			text = strings.Join(args, " ")
		} else {
			input, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			text = string(input)
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

		// One-shot output has nothing to animate, so skip the latency floor
		sess := session.New(session.Options{
			Client:   client,
			Logger:   log,
			Language: lang,
		})
		defer sess.Close()

		sess.SetDraft(text)
		if !sess.SubmitDraft() {
			return fmt.Errorf("nothing to transliterate: input is empty")
		}
		sess.Wait()

		reply, ok := lastBotMessage(sess.Snapshot().Log)
		if !ok {
			return errTransliterationFailed
		}

		if showJSON {
			if err := writeJSON(cmd.OutOrStdout(), reply); err != nil {
				return err
			}
		} else if !reply.IsError {
			fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
		}

		if reply.IsError {
			fmt.Fprintln(cmd.ErrOrStderr(), reply.Content)
			return errTransliterationFailed
		}
		return nil
	},
}

// getMessageFromEditor opens the default editor and returns the edited text
func getMessageFromEditor() (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return "", fmt.Errorf("EDITOR environment variable is not set")
	}

	tmpFile, err := os.CreateTemp("", "translitc-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %v", err)
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	cmd := exec.Command(editor, tmpFile.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to open editor: %v", err)
	}

	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited content: %v", err)
	}

	return strings.TrimSpace(string(content)), nil
}

// lastBotMessage returns the most recent Bot message in the log
func lastBotMessage(log []translit.Message) (translit.Message, bool) {
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].Role == translit.RoleBot {
			return log[i], true
		}
	}
	return translit.Message{}, false
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&language, "language", "l", "", "Language mode (auto, en-pa, en-hi, en-ar, en-es)")
	translateCmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "Use default editor (from EDITOR environment variable) to compose text")
	translateCmd.Flags().BoolVar(&showJSON, "json", false, "Print the resulting message as JSON")
}
