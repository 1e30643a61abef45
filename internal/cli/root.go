package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/mp3get/internal/config"
	"github.com/ytget/mp3get/internal/logging"
)

var (
	output     string
	batchFile  string
	bitrate    string
	numWorkers int
	reEncode   bool
	timeout    time.Duration
	debug      bool
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "mp3get [URL]",
	Short:   "mp3get saves the audio track of a YouTube video as an MP3 file",
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logging.Init(debug)
		if len(args) == 0 && batchFile == "" {
			PrintError("No URL or batch file provided")
			os.Exit(1)
		}
		if batchFile != "" && len(args) > 0 {
			PrintError("Cannot specify a URL argument and --batch together, choose one")
			os.Exit(1)
		}
		var entries []config.BatchEntry
		if len(args) > 0 {
			entries = []config.BatchEntry{{Link: args[0], OutputPath: output}}
		} else {
			var err error
			entries, err = config.ReadBatchList(batchFile)
			if err != nil {
				PrintError(err.Error())
				os.Exit(1)
			}
			if len(entries) == 0 {
				PrintError("No valid entries found in the batch file")
				os.Exit(1)
			}
		}
		if err := runDownloads(entries); err != nil {
			fmt.Println()
			PrintError("Encountered failed download(s)")
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (file name is derived from the video title if not provided)")
	rootCmd.Flags().StringVarP(&batchFile, "batch", "l", "", "Path to YAML file containing links and output paths")
	rootCmd.Flags().StringVarP(&bitrate, "bitrate", "b", config.DefaultBitrate, "MP3 bitrate when re-encoding (eg. 128k, 320k)")
	rootCmd.Flags().IntVarP(&numWorkers, "workers", "w", 1, "Number of batch entries to download in parallel")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 3*time.Minute, "Connection timeout (eg. 5s, 10m)")

	// flags without shorthand
	rootCmd.Flags().BoolVar(&reEncode, "re-encode", false, "Re-encode the audio through ffmpeg at the configured bitrate")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
