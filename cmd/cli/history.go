package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yourusername/download-it/internal/app"
	"github.com/yourusername/download-it/internal/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past downloads",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		filters := map[string]interface{}{}
		if status != "" {
			if !domain.ValidateStatus(domain.DownloadStatus(status)) {
				return fmt.Errorf("invalid status: %s", status)
			}
			filters["status"] = status
		}

		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		downloads, err := rt.Manager.ListDownloads(filters)
		if err != nil {
			return err
		}
		if limit > 0 && len(downloads) > limit {
			downloads = downloads[:limit]
		}

		if len(downloads) == 0 {
			fmt.Println("No downloads yet")
			return nil
		}
		return printHistory(os.Stdout, downloads, time.Now())
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show download totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		stats, err := rt.Manager.Stats()
		if err != nil {
			return err
		}
		printStats(os.Stdout, stats)
		return nil
	},
}

var forgetCmd = &cobra.Command{
	Use:   "forget",
	Short: "Forget the remembered URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.Manager.ForgetLastURL(); err != nil {
			return err
		}
		fmt.Println("Remembered URL cleared")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the server has downloads in flight",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		if !isServerRunning() {
			fmt.Printf("Server not running at %s\n", serverURL)
			return nil
		}

		status, err := fetchStatus()
		if err != nil {
			return fmt.Errorf("failed to read server status: %w", err)
		}
		fmt.Println(formatInFlight(status.InFlight))
		return nil
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the current configuration to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		path := app.DefaultConfigPath()
		if len(args) == 1 {
			path = args[0]
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := app.SaveConfig(config, path); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

func init() {
	historyCmd.Flags().String("status", "", "Filter by status (processing, completed, failed, cancelled)")
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum entries to show (0 for all)")
}

func printHistory(w io.Writer, downloads []*domain.Download, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tSTATUS\tSIZE\tURL\tDESTINATION")
	for _, d := range downloads {
		size := "-"
		if d.Status == domain.StatusCompleted {
			size = humanize.Bytes(uint64(d.BytesWritten))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			humanize.RelTime(d.CreatedAt, now, "ago", "from now"),
			d.Status, size, d.URL, d.DestinationPath)
	}
	return tw.Flush()
}

func printStats(w io.Writer, stats *domain.DownloadStats) {
	fmt.Fprintf(w, "Total:      %s\n", humanize.Comma(stats.Total))
	fmt.Fprintf(w, "Completed:  %s\n", humanize.Comma(stats.Completed))
	fmt.Fprintf(w, "Failed:     %s\n", humanize.Comma(stats.Failed))
	fmt.Fprintf(w, "Cancelled:  %s\n", humanize.Comma(stats.Cancelled))
	fmt.Fprintf(w, "Processing: %s\n", humanize.Comma(stats.Processing))
	fmt.Fprintf(w, "Written:    %s\n", humanize.Bytes(uint64(stats.Bytes)))
}

func formatInFlight(n int64) string {
	switch n {
	case 0:
		return "Idle"
	case 1:
		return "1 download in progress"
	default:
		return fmt.Sprintf("%d downloads in progress", n)
	}
}
