package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/longkey1/translitc/internal/translit"
	"github.com/spf13/cobra"
)

// languagesCmd represents the languages command
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported language modes",
	Long: `List the transliteration directions understood by the service.
Use the CODE column with --language, the language config key, or /lang in a session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tLANGUAGE\tDEFAULT")
		fmt.Fprintln(w, "----\t--------\t-------")
		for _, lang := range translit.Languages() {
			def := ""
			if lang.IsDefault {
				def = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", lang.Code, lang.Label, def)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
