package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/cloudtranslate/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cloudtranslate [text]",
		Short: "Cloud Translation Desktop Client",
		Long: `cloudtranslate translates text using the Google Cloud Translation API.

It keeps a running count of characters translated this month against a
configurable quota, and records recent translations in a local history.

Examples:
  cloudtranslate                        # Launch interactive GUI (default)
  cloudtranslate "good morning"         # Translate via CLI (en -> th)
  cloudtranslate --from en --to ja hi   # Pick languages explicitly
  cloudtranslate --batch lines.txt      # Translate a file line by line`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Set default data directory to match GUI mode
	home, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(home, ".local", "state", "cloudtranslate")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.cloudtranslate.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.FromLang, "from", "f", flags.FromLang, "Source language code")
	cmd.Flags().StringVarP(&flags.ToLang, "to", "t", flags.ToLang, "Target language code")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate lines from file (one per line, # comments skipped)")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider (google, openai or gemini)")
	cmd.Flags().StringVarP(&flags.DataDir, "data-dir", "d", defaultDataDir, "Data directory for usage, history and cache")
	cmd.Flags().IntVar(&flags.MonthlyLimit, "limit", flags.MonthlyLimit, "Monthly character quota")
	cmd.Flags().BoolVar(&flags.ShowHistory, "history", false, "Print the translation history and exit")
	cmd.Flags().BoolVar(&flags.ShowUsage, "usage", false, "Print this month's character usage and exit")
	cmd.Flags().BoolVar(&flags.ClearHistory, "clear-history", false, "Clear the translation history and exit")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the data directory and exit")
	cmd.Flags().BoolVar(&flags.ListLanguages, "list-languages", false, "List supported languages and exit")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Skip the local translation cache")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translate.from", cmd.Flags().Lookup("from"))
	viper.BindPFlag("translate.to", cmd.Flags().Lookup("to"))
	viper.BindPFlag("translate.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("data.directory", cmd.Flags().Lookup("data-dir"))
	viper.BindPFlag("usage.monthly_limit", cmd.Flags().Lookup("limit"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".cloudtranslate" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cloudtranslate")
	}

	// Environment variables
	viper.SetEnvPrefix("CLOUDTRANSLATE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGoogleAPIKey retrieves the Google API key from environment or config
func GetGoogleAPIKey() string {
	// First check environment variable
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("google.api_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("openai.api_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.api_key")
}

// GetMonthlyLimit returns the configured monthly character quota
func GetMonthlyLimit() int {
	if limit := viper.GetInt("usage.monthly_limit"); limit > 0 {
		return limit
	}
	return 500000
}
