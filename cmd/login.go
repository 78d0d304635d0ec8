package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blink-cli/internal/client"
	"blink-cli/internal/config"
)

// Variables to hold flag values
var (
	email  string
	pass   string
	region string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the Blink cloud",
	Long: `Authenticates with the provided credentials, discovers the region
host binding, and saves the session token locally for future commands.

Example:
  blink-cli login --email me@example.com --password secret`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := client.ClientConfig{
			Email:    email,
			Password: pass,
			Tier:     region,
		}

		fmt.Printf("Authenticating as '%s'...\n", email)

		api := client.New(cfg, logger)
		token, err := api.Login()
		if err != nil {
			log.Fatalf("Fatal: Login failed: %v", err)
		}

		fmt.Printf("Login successful (region tier %q). Saving configuration...\n", api.Tier())

		// Persist the email so subsequent commands can re-login when
		// the saved token expires.
		viper.Set(config.KeyEmail, email)

		if err := config.SaveSession(token, api.Tier()); err != nil {
			log.Fatalf("Failed to save configuration file: %v", err)
		}

		fmt.Println("Session saved. You can now run commands like './blink-cli cameras list'.")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVarP(&email, "email", "e", "", "Blink account email")
	loginCmd.Flags().StringVarP(&pass, "password", "p", "", "Blink account password")
	loginCmd.Flags().StringVar(&region, "region", "", "Region tier override (optional, e.g. prde)")

	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
