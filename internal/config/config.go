package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Recognized configuration keys. All can also come from the
// environment via viper's AutomaticEnv.
const (
	KeyEmail           = "email"
	KeyPassword        = "password"
	KeySessionToken    = "session_token"
	KeyRegionTier      = "region_tier"
	KeyRefreshInterval = "refresh_interval"
	KeyClipHistory     = "clip_history"
	KeyMQTTBroker      = "mqtt_broker"
	KeyMQTTUsername    = "mqtt_username"
	KeyMQTTPassword    = "mqtt_password"
	KeyMQTTTopicPrefix = "mqtt_topic_prefix"
)

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".blink-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".blink-cli")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		// Config loaded successfully
	}
}

// SaveSession updates the config file with the session token and the
// region tier it is bound to.
func SaveSession(token, tier string) error {
	viper.Set(KeySessionToken, token)
	viper.Set(KeyRegionTier, tier)

	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, ".blink-cli.yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}

// RefreshInterval returns the configured throttle window, or zero when
// unset so the library default applies.
func RefreshInterval() time.Duration {
	return viper.GetDuration(KeyRefreshInterval)
}

// ClipHistorySize returns the configured per-camera clip window, or
// zero when unset so the library default applies.
func ClipHistorySize() int {
	return viper.GetInt(KeyClipHistory)
}
