package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/download-it/pkg/logger"
)

// ISO8601 as written by the category loggers
const logTimeLayout = "2006-01-02T15:04:05.000Z0700"

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show download logs",
	Long:  `Prints the status lines of past downloads. --follow keeps printing new lines as they are written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		dateStr, _ := cmd.Flags().GetString("date")
		lines, _ := cmd.Flags().GetInt("lines")
		follow, _ := cmd.Flags().GetBool("follow")

		cat := logger.LogCategory(category)
		if !logger.ValidCategory(cat) {
			return fmt.Errorf("invalid category: %s", category)
		}

		date := time.Now()
		if dateStr != "" {
			d, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", dateStr)
			}
			date = d
		}

		config, err := loadConfig()
		if err != nil {
			return err
		}
		reader := logger.NewLogReader(config.Download.LogsDir)

		entries, err := reader.ReadLogs(cat, date, lines)
		if err != nil {
			return fmt.Errorf("failed to read logs: %w", err)
		}
		for _, entry := range entries {
			printLogEntry(os.Stdout, entry)
		}

		if !follow {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		entryChan := make(chan logger.LogEntry, 16)
		errChan := make(chan error, 1)
		go func() {
			errChan <- reader.TailLogs(ctx, cat, entryChan)
		}()

		for {
			select {
			case entry := <-entryChan:
				printLogEntry(os.Stdout, entry)
			case err := <-errChan:
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	},
}

func init() {
	logCmd.Flags().StringP("category", "c", string(logger.CategoryDownload), "Log category (download, error)")
	logCmd.Flags().String("date", "", "Day to show (YYYY-MM-DD, default today)")
	logCmd.Flags().IntP("lines", "n", 50, "Number of entries to show (0 for all)")
	logCmd.Flags().BoolP("follow", "f", false, "Keep printing new entries")
}

func printLogEntry(w io.Writer, entry logger.LogEntry) {
	stamp := entry.Timestamp
	if t, err := time.Parse(logTimeLayout, entry.Timestamp); err == nil {
		stamp = t.Local().Format("15:04:05")
	} else if t, err := time.Parse(time.RFC3339, entry.Timestamp); err == nil {
		stamp = t.Local().Format("15:04:05")
	}

	if entry.Level != "" && entry.Level != "info" {
		fmt.Fprintf(w, "%s [%s] %s\n", stamp, entry.Level, entry.Message)
		return
	}
	fmt.Fprintf(w, "%s %s\n", stamp, entry.Message)
}
