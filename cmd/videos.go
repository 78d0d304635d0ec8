package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Variables to hold flag values
var (
	videoPage    int
	videoCamera  string
	videoOutDir  string
	videoMaxSave int
)

// Parent Command
var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List and download recorded clips",
}

var videosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of recorded clips",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		clips, err := api.GetVideoPage(videoPage)
		if err != nil {
			fmt.Printf("Error fetching videos: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(clips)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CREATED\tCAMERA\tADDRESS")
		fmt.Fprintln(w, "-------\t------\t-------")
		for _, clip := range clips {
			fmt.Fprintf(w, "%s\t%s\t%s\n", clip.CreatedAt, clip.CameraName, clip.Address)
		}
		w.Flush()
	},
}

var videosSaveCmd = &cobra.Command{
	Use:     "save",
	Short:   "Download recent clips for one camera",
	Example: `  blink-cli videos save --camera "Front Door" --dir ./clips --max 5`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		clips, err := api.GetVideoPage(videoPage)
		if err != nil {
			fmt.Printf("Error fetching videos: %v\n", err)
			os.Exit(1)
		}

		if err := os.MkdirAll(videoOutDir, 0755); err != nil {
			fmt.Printf("Error creating directory: %v\n", err)
			os.Exit(1)
		}

		saved := 0
		for _, clip := range clips {
			if saved >= videoMaxSave {
				break
			}
			if !strings.EqualFold(clip.CameraName, videoCamera) || clip.Address == "" {
				continue
			}

			data, err := api.GetClip(clip.Address)
			if err != nil {
				fmt.Printf("Warning: could not download %s: %v\n", clip.Address, err)
				continue
			}

			name := fmt.Sprintf("%s-%s.mp4", sanitizeName(clip.CameraName), sanitizeName(clip.CreatedAt))
			path := filepath.Join(videoOutDir, name)
			if err := os.WriteFile(path, data, 0644); err != nil {
				fmt.Printf("Error writing %s: %v\n", path, err)
				os.Exit(1)
			}
			fmt.Printf("Saved %s\n", path)
			saved++
		}

		if saved == 0 {
			fmt.Printf("No clips found for camera %q on page %d.\n", videoCamera, videoPage)
		}
	},
}

// sanitizeName makes a clip field safe to use in a filename.
func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, s)
}

func init() {
	rootCmd.AddCommand(videosCmd)
	videosCmd.AddCommand(videosListCmd)
	videosCmd.AddCommand(videosSaveCmd)

	videosCmd.PersistentFlags().IntVar(&videoPage, "page", 0, "Result page to read")

	videosSaveCmd.Flags().StringVar(&videoCamera, "camera", "", "Camera name")
	videosSaveCmd.Flags().StringVar(&videoOutDir, "dir", ".", "Destination directory")
	videosSaveCmd.Flags().IntVar(&videoMaxSave, "max", 5, "Maximum clips to save")
	_ = videosSaveCmd.MarkFlagRequired("camera")
}
