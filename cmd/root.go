package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blink-cli/internal/client"
	"blink-cli/internal/config"
	"blink-cli/internal/logging"
)

var (
	cfgFile    string
	jsonOutput bool
	logLevel   string
	logFormat  string

	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "blink-cli",
	Short: "A CLI for the Blink home-security camera cloud",
	Long: `Log in to the Blink cloud service, list sync modules and cameras,
arm or disarm networks, download thumbnails and clips, and run a
polling watcher or Prometheus exporter.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		config.InitConfig(cfgFile)
		logger = logging.New(logLevel, logFormat)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.blink-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}

// setupClient restores the saved session for commands that talk to the
// service without a fresh login.
func setupClient() *client.BlinkClient {
	token := viper.GetString(config.KeySessionToken)
	tier := viper.GetString(config.KeyRegionTier)

	if token == "" {
		fmt.Println("Error: Not logged in. Please run 'blink-cli login' first.")
		os.Exit(1)
	}

	api := client.New(client.ClientConfig{
		Email:    viper.GetString(config.KeyEmail),
		Password: viper.GetString(config.KeyPassword),
		Tier:     tier,
	}, logger)
	api.RestoreSession(token, tier)
	return api
}
