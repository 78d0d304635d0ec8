package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"blink-cli/pkg/blink"
)

// Variables to hold flag values
var (
	expEmail      string
	expPassword   string
	expPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	b      *blink.Blink
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	log.Println("Discovering Blink device tree...")
	if err := p.b.Setup(); err != nil {
		// Exit so the service manager attempts a restart.
		log.Fatalf("Fatal: setup failed: %v", err)
	}
	log.Println("Device tree discovered.")

	registry := prometheus.NewRegistry()
	collector := &BlinkCollector{Blink: p.b}
	registry.MustRegister(collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("Blink Exporter listening on %s", addr)

	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COLLECTOR ---

// BlinkCollector forces a refresh cycle per scrape and exports the
// resulting device tree.
type BlinkCollector struct {
	Blink *blink.Blink
	Mutex sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		"blink_up", "Was the last refresh successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"blink_scrape_duration_seconds", "Time taken to refresh the device tree.", nil, nil,
	)
	armedDesc = prometheus.NewDesc(
		"blink_network_armed", "Arm state per network.", []string{"network", "name"}, nil,
	)
	moduleOnlineDesc = prometheus.NewDesc(
		"blink_sync_module_online", "Sync module up/down.", []string{"network", "name", "serial"}, nil,
	)
	cameraBatteryDesc = prometheus.NewDesc(
		"blink_camera_battery_level", "Battery level on the 0-3 scale.", []string{"network", "name"}, nil,
	)
	cameraTempDesc = prometheus.NewDesc(
		"blink_camera_temperature_celsius", "Calibrated camera temperature.", []string{"network", "name"}, nil,
	)
	cameraWifiDesc = prometheus.NewDesc(
		"blink_camera_wifi_bars", "Wifi signal in bars (0-5).", []string{"network", "name"}, nil,
	)
	cameraMotionDesc = prometheus.NewDesc(
		"blink_camera_motion_detected", "Motion detected in the last cycle.", []string{"network", "name"}, nil,
	)
	cameraCountDesc = prometheus.NewDesc(
		"blink_cameras_total", "Total discovered cameras.", nil, nil,
	)
)

func (c *BlinkCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- armedDesc
	ch <- moduleOnlineDesc
	ch <- cameraBatteryDesc
	ch <- cameraTempDesc
	ch <- cameraWifiDesc
	ch <- cameraMotionDesc
	ch <- cameraCountDesc
}

func (c *BlinkCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	start := time.Now()
	success := 1.0

	if err := c.Blink.Refresh(true); err != nil {
		success = 0.0
		log.Printf("Error refreshing device tree: %v", err)
	}

	cameraTotal := 0
	for _, sm := range c.Blink.SyncModules() {
		network := strconv.Itoa(sm.NetworkID)

		ch <- prometheus.MustNewConstMetric(armedDesc, prometheus.GaugeValue,
			boolGauge(sm.Armed), network, sm.Name)
		ch <- prometheus.MustNewConstMetric(moduleOnlineDesc, prometheus.GaugeValue,
			boolGauge(sm.Online()), network, sm.Name, sm.Serial)

		for _, cam := range sm.Cameras() {
			cameraTotal++
			ch <- prometheus.MustNewConstMetric(cameraBatteryDesc, prometheus.GaugeValue,
				float64(cam.Battery), network, cam.Name)
			ch <- prometheus.MustNewConstMetric(cameraTempDesc, prometheus.GaugeValue,
				cam.TemperatureC, network, cam.Name)
			ch <- prometheus.MustNewConstMetric(cameraWifiDesc, prometheus.GaugeValue,
				float64(cam.WifiBars), network, cam.Name)
			ch <- prometheus.MustNewConstMetric(cameraMotionDesc, prometheus.GaugeValue,
				boolGauge(cam.MotionDetected), network, cam.Name)
		}
	}
	ch <- prometheus.MustNewConstMetric(cameraCountDesc, prometheus.GaugeValue, float64(cameraTotal))

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

func boolGauge(v bool) float64 {
	if v {
		return 1.0
	}
	return 0.0
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes Blink device metrics.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		watchEmail = expEmail
		watchPassword = expPassword
		b, _ := setupBlink()

		svcConfig := &service.Config{
			Name:        "blink-exporter",
			DisplayName: "Blink Prometheus Exporter",
			Description: "Exposes Blink camera metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--email", expEmail,
				"--password", expPassword,
				"--port", expPort,
			},
		}

		prg := &program{b: b}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if serviceAction == "install" {
				if expEmail == "" || expPassword == "" {
					log.Fatal("Error: You must provide --email and --password to install the service.")
				}
			}

			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// Run the Service (Blocking)
		svcLogger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			svcLogger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expEmail, "email", "", "Blink account email")
	exporterCmd.Flags().StringVar(&expPassword, "password", "", "Blink account password")
	exporterCmd.Flags().StringVar(&expPort, "port", "9835", "Port to listen on")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
