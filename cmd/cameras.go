package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Variables to hold flag values
var (
	cameraNetworkID int
	cameraName      string
	outputFile      string
)

// Parent Command
var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "Manage cameras",
	Long:  `List cameras on a network or download a camera's latest thumbnail.`,
}

// List Command
var camerasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cameras on a network",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		cameras, err := api.GetCameras(cameraNetworkID)
		if err != nil {
			fmt.Printf("Error fetching cameras: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(cameras); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSERIAL\tBATTERY\tTEMP(F)\tENABLED")
		fmt.Fprintln(w, "--\t----\t------\t-------\t-------\t-------")

		for _, cam := range cameras {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				cam.ID,
				cam.Name,
				cam.Serial,
				fmtIntPtr(cam.Battery),
				fmtIntPtr(cam.Temperature),
				fmtBoolPtr(cam.Enabled),
			)
		}
		w.Flush()
	},
}

// Snapshot Command
var camerasSnapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Short:   "Download the latest thumbnail for a camera",
	Example: `  blink-cli cameras snapshot --network 1234 --name "Front Door" --output front.jpg`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		roster, err := api.GetCameras(cameraNetworkID)
		if err != nil {
			fmt.Printf("Error fetching cameras: %v\n", err)
			os.Exit(1)
		}

		var address string
		for _, cam := range roster {
			if strings.EqualFold(cam.Name, cameraName) && cam.Thumbnail != nil {
				address = *cam.Thumbnail
				break
			}
		}
		if address == "" {
			fmt.Printf("Error: no thumbnail known for camera %q\n", cameraName)
			os.Exit(1)
		}

		imgData, err := api.GetThumbnail(address)
		if err != nil {
			fmt.Printf("Error getting thumbnail: %v\n", err)
			os.Exit(1)
		}

		if err := os.WriteFile(outputFile, imgData, 0644); err != nil {
			fmt.Printf("Error writing file: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Thumbnail saved to %s\n", outputFile)
	},
}

// Motion Command
var camerasMotionCmd = &cobra.Command{
	Use:     "motion",
	Short:   "Enable or disable motion detection on a camera",
	Example: `  blink-cli cameras motion --network 1234 --id 5 --enable`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		enable, _ := cmd.Flags().GetBool("enable")
		id, _ := cmd.Flags().GetInt("id")

		if err := api.SetCameraMotion(cameraNetworkID, id, enable); err != nil {
			fmt.Printf("Error setting motion: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Success.")
	},
}

func init() {
	rootCmd.AddCommand(camerasCmd)
	camerasCmd.AddCommand(camerasListCmd)
	camerasCmd.AddCommand(camerasSnapshotCmd)
	camerasCmd.AddCommand(camerasMotionCmd)

	camerasCmd.PersistentFlags().IntVar(&cameraNetworkID, "network", 0, "Network ID")
	_ = camerasCmd.MarkPersistentFlagRequired("network")

	camerasSnapshotCmd.Flags().StringVar(&cameraName, "name", "", "Name of the camera")
	camerasSnapshotCmd.Flags().StringVar(&outputFile, "output", "snapshot.jpg", "Output filename")
	_ = camerasSnapshotCmd.MarkFlagRequired("name")

	camerasMotionCmd.Flags().Int("id", 0, "Camera ID")
	camerasMotionCmd.Flags().Bool("enable", true, "Enable (true) or disable (false)")
	_ = camerasMotionCmd.MarkFlagRequired("id")
}
