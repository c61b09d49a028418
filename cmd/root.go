/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/longkey1/translitc/internal/logger"
	"github.com/longkey1/translitc/internal/translit/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "translitc",
	Short: "A CLI client for the transliteration service",
	Long: `translitc sends text to a remote transliteration service and shows the results.
It supports an interactive session with feedback and corrections, and one-shot commands.
You can configure the tool using a TOML configuration file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/translitc/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// userConfigDir returns $HOME/.config/translitc
func userConfigDir() string {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	return filepath.Join(home, ".config", "translitc")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("TRANSLITC")
	viper.AutomaticEnv()

	dir := userConfigDir()
	defaultConfig := config.NewDefaultConfig(filepath.Join(dir, "translitc.log"))

	viper.SetDefault("transliterate_url", defaultConfig.TransliterateURL)
	viper.SetDefault("contribute_url", defaultConfig.ContributeURL)
	viper.SetDefault("health_url", defaultConfig.HealthURL)
	viper.SetDefault("token", defaultConfig.Token)
	viper.SetDefault("language", defaultConfig.Language)
	viper.SetDefault("min_latency", defaultConfig.MinLatency)
	viper.SetDefault("http_timeout", defaultConfig.HTTPTimeout)
	viper.SetDefault("log_file", defaultConfig.LogFile)
	viper.SetDefault("log_level", defaultConfig.LogLevel)

	viper.BindEnv("transliterate_url", "TRANSLITC_TRANSLITERATE_URL")
	viper.BindEnv("contribute_url", "TRANSLITC_CONTRIBUTE_URL")
	viper.BindEnv("health_url", "TRANSLITC_HEALTH_URL")
	viper.BindEnv("language", "TRANSLITC_LANGUAGE")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	} else {
		// Load system-wide config first (lower priority)
		for _, path := range []string{"/etc/translitc", "/usr/local/etc/translitc"} {
			viper.AddConfigPath(path)
		}
		viper.SetConfigType("toml")
		viper.SetConfigName("config")

		systemConfigLoaded := false
		if err := viper.ReadInConfig(); err == nil {
			systemConfigLoaded = true
			if verbose {
				fmt.Fprintln(os.Stderr, "Loaded system-wide config:", viper.ConfigFileUsed())
			}
		}

		// Load user config (higher priority) - merge with system config
		viper.AddConfigPath(dir)
		if systemConfigLoaded {
			if err := viper.MergeInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					fmt.Fprintf(os.Stderr, "Error merging user config file: %v\n", err)
				}
			} else if verbose {
				fmt.Fprintln(os.Stderr, "Merged user config:", viper.ConfigFileUsed())
			}
		} else {
			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				}
			}
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "  TRANSLITC_TRANSLITERATE_URL:", viper.GetString("transliterate_url"))
		fmt.Fprintln(os.Stderr, "  TRANSLITC_CONTRIBUTE_URL:", viper.GetString("contribute_url"))
		fmt.Fprintln(os.Stderr, "  TRANSLITC_LANGUAGE:", viper.GetString("language"))
	}
}

// newLogger builds the diagnostic logger from configuration
func newLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Options{
		FilePath: cfg.LogFile,
		Level:    cfg.LogLevel,
		Console:  verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return log, nil
}
