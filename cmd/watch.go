package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blink-cli/internal/client"
	"blink-cli/internal/config"
	"blink-cli/internal/mqtt"
	"blink-cli/pkg/blink"
)

// Variables to hold flag values
var (
	watchEmail    string
	watchPassword string
	watchInterval time.Duration
)

// watchCmd drives the polling orchestrator on a timer and optionally
// publishes refreshed state to MQTT.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the Blink cloud and track device state",
	Long: `Logs in, discovers every onboarded network, then refreshes the whole
device tree on a timer. Motion detection, battery, temperature and arm
state are logged on every cycle; with an MQTT broker configured, state
is also published per device.`,
	Run: func(cmd *cobra.Command, args []string) {
		b, _ := setupBlink()

		publisher := newPublisher()
		if err := publisher.Start(); err != nil {
			log.Fatalf("Fatal: MQTT start failed: %v", err)
		}
		defer publisher.Stop()

		if err := b.Setup(); err != nil {
			log.Fatalf("Fatal: setup failed: %v", err)
		}
		logger.Info("device tree discovered", "sync_modules", len(b.SyncModules()), "cameras", len(b.Cameras()))
		reportCycle(b, publisher)

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case <-ticker.C:
				if err := b.Refresh(false); err != nil {
					logger.Error("refresh failed", "error", err)
					continue
				}
				reportCycle(b, publisher)
			case <-sigs:
				logger.Info("shutting down")
				return
			}
		}
	},
}

// setupBlink builds the orchestrator from flags and the config file.
func setupBlink() (*blink.Blink, *client.BlinkClient) {
	if watchEmail == "" {
		watchEmail = viper.GetString(config.KeyEmail)
	}
	if watchPassword == "" {
		watchPassword = viper.GetString(config.KeyPassword)
	}
	if watchEmail == "" || watchPassword == "" {
		fmt.Println("Error: watch needs --email and --password (or a saved email with --password).")
		os.Exit(1)
	}

	api := client.New(client.ClientConfig{
		Email:    watchEmail,
		Password: watchPassword,
		Tier:     viper.GetString(config.KeyRegionTier),
	}, logger)

	interval := config.RefreshInterval()
	if interval == 0 {
		interval = blink.DefaultRefreshInterval
	}
	if watchInterval == 0 {
		watchInterval = interval
	}

	b := blink.New(api, blink.Config{
		RefreshInterval: interval,
		ClipHistorySize: config.ClipHistorySize(),
		Logger:          logger,
	})
	return b, api
}

func newPublisher() mqtt.Publisher {
	broker := viper.GetString(config.KeyMQTTBroker)
	if broker == "" {
		return mqtt.NewStubPublisher(logger)
	}
	return mqtt.NewBrokerPublisher(mqtt.Config{
		Broker:      broker,
		Username:    viper.GetString(config.KeyMQTTUsername),
		Password:    viper.GetString(config.KeyMQTTPassword),
		TopicPrefix: viper.GetString(config.KeyMQTTTopicPrefix),
	}, logger)
}

func reportCycle(b *blink.Blink, publisher mqtt.Publisher) {
	for _, sm := range b.SyncModules() {
		logger.Info("sync module",
			"name", sm.Name, "status", sm.Status, "armed", sm.Armed)
		for _, cam := range sm.Cameras() {
			logger.Info("camera",
				"name", cam.Name,
				"battery", cam.BatteryString,
				"temp_c", cam.TemperatureC,
				"wifi_bars", cam.WifiBars,
				"motion", cam.MotionDetected)
		}
	}
	if err := publisher.Publish(b); err != nil {
		logger.Warn("MQTT publish failed", "error", err)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchEmail, "email", "", "Blink account email (defaults to saved)")
	watchCmd.Flags().StringVar(&watchPassword, "password", "", "Blink account password")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Poll interval (defaults to the configured refresh interval)")
}
