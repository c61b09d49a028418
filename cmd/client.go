package cmd

import (
	"fmt"

	"github.com/longkey1/translitc/internal/api"
	"github.com/longkey1/translitc/internal/logger"
	"github.com/longkey1/translitc/internal/translit"
	"github.com/longkey1/translitc/internal/translit/config"
	"github.com/spf13/cobra"
)

// newClient creates the service client from the configuration
func newClient(cfg *config.Config, log logger.Logger) (translit.Client, error) {
	// Fail early on a misconfigured endpoint rather than on first use
	for _, name := range []string{config.EndpointTransliterate, config.EndpointContribute} {
		if _, err := cfg.GetEndpoint(name); err != nil {
			return nil, err
		}
	}
	return api.NewClient(cfg, log), nil
}

// resolveLanguage applies the --language flag over the configured default
func resolveLanguage(cmd *cobra.Command, cfg *config.Config, flagValue string) (translit.Language, error) {
	if cmd.Flags().Changed("language") {
		lang, err := translit.ParseLanguage(flagValue)
		if err != nil {
			return translit.LanguageAuto, fmt.Errorf("invalid language from flag: %w", err)
		}
		return lang, nil
	}
	return cfg.GetLanguage()
}
