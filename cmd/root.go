package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	baseURL   string
	dbPath    string
	userAgent string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xenforo-scraper",
	Short: "Archive XenForo forums into SQLite",
	Long: `Walk a XenForo forum's thread index page by page, walk each thread's
posts page by page, and persist normalized thread and post records:

- Recursive pagination traversal with per-page concurrency
- Tolerant extraction of inconsistent forum markup
- SQLite storage with an idempotent schema
- Configurable CSS selectors for non-stock templates`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.xenforo-scraper.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "forum base URL, e.g. https://example.com/")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "archive database path (default: ~/forum-archive.db)")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "custom user agent (default: random)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Bind flags to viper
	viper.BindPFlag("base-url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("user-agent", rootCmd.PersistentFlags().Lookup("user-agent"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".xenforo-scraper" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".xenforo-scraper")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// Set default values
	if dbPath == "" {
		home, _ := os.UserHomeDir()
		viper.SetDefault("db", filepath.Join(home, "forum-archive.db"))
	}
	viper.SetDefault("start-page", 1)
	viper.SetDefault("concurrency", 8)
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("verbose", false)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
