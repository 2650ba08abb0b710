package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/yourusername/download-it/internal/app"
	"github.com/yourusername/download-it/internal/domain"
	"github.com/yourusername/download-it/internal/infrastructure"
)

var downloadCmd = &cobra.Command{
	Use:   "download [dir]",
	Short: "Prompt for a URL and download it",
	Long: `Prompts for a URL and a destination path, then downloads the URL.
The destination defaults to the URL's file name inside dir (or download.base_dir).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := ""
		if len(args) == 1 {
			baseDir = args[0]
		}

		url, _ := cmd.Flags().GetString("url")
		output, _ := cmd.Flags().GetString("output")
		remote, _ := cmd.Flags().GetBool("remote")

		if remote {
			if _, err := loadConfig(); err != nil {
				return err
			}
			return runRemoteDownload(url, output, baseDir)
		}

		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		terminal := infrastructure.NewTerminalPrompter(os.Stdin, os.Stderr, plain)

		theme := infrastructure.DefaultTheme()
		if plain {
			theme = infrastructure.PlainTheme()
		}

		opts := app.RunOptions{
			Prompter: terminal,
			Reporter: infrastructure.NewOutputReporter(rt.Logs.Download(), os.Stdout, theme, rt.Notifier),
		}
		if url != "" {
			opts.Prompter = &app.PresetPrompter{URL: url, DestinationPath: output}
		}
		if assumeYes || !rt.Config.Download.Confirm {
			opts.CreateDirs = true
			opts.Overwrite = true
		} else {
			opts.Confirmer = terminal
		}

		outcome := rt.Manager.Run(ctx, baseDir, opts)
		if outcome.State == domain.StateFailed {
			return errDownloadFailed
		}
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringP("url", "u", "", "URL to download instead of prompting")
	downloadCmd.Flags().StringP("output", "o", "", "Destination path (with --url)")
	downloadCmd.Flags().Bool("remote", false, "Run the download on the server (requires --url)")
}
