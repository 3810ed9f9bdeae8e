package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"subgif/internal/config"
	"subgif/internal/workflow"
)

type runFlags struct {
	outputDir string
	workers   int
	scale     float64
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "Directory that receives one folder of GIFs per video (default from config)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Number of videos processed at once (default from config)")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "Output scale factor in (0, 1] (default from config)")
}

// apply copies explicitly set flags onto cfg and revalidates it.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("output-dir") {
		dir, err := config.ExpandPath(f.outputDir)
		if err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
		cfg.Paths.OutputDir = dir
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workflow.VideoWorkers = f.workers
	}
	if cmd.Flags().Changed("scale") {
		cfg.Render.Scale = f.scale
	}
	return cfg.Validate()
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "convert <input-dir>",
		Short: "Render one captioned GIF per subtitle cue for every video in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.cloneConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			inputDir, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input directory: %w", err)
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			runner, err := workflow.NewFromConfig(cfg, logger, workflow.WithDryRun(dryRun))
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := runner.Run(runCtx, inputDir, cfg.Paths.OutputDir)
			if err != nil {
				if errors.Is(err, workflow.ErrInputDirectoryNotFound) {
					return fmt.Errorf("input directory %q does not exist or is not a directory", args[0])
				}
				if !errors.Is(err, context.Canceled) {
					return err
				}
			}
			printSummary(cmd.OutOrStdout(), summary)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan clips without rendering or touching the output directory")
	return cmd
}

func printSummary(out io.Writer, summary workflow.Summary) {
	if len(summary.Videos) == 0 {
		fmt.Fprintf(out, "No videos found in %s\n", summary.InputDir)
		return
	}

	headers := []string{"Video", "Cues", "Clips", "Rendered", "Failed", "Time", "Error"}
	if summary.DryRun {
		headers[3] = "Planned"
	}
	rows := make([][]string, 0, len(summary.Videos))
	for _, video := range summary.Videos {
		rendered := video.Succeeded
		if summary.DryRun {
			rendered = video.Jobs
		}
		rows = append(rows, []string{
			video.Name,
			cueSourceLabel(video),
			strconv.Itoa(video.Jobs),
			strconv.Itoa(rendered),
			strconv.Itoa(video.Failed),
			formatElapsed(video.Duration),
			video.FailureKind,
		})
	}

	jobs, succeeded, failed := summary.Totals()
	if summary.DryRun {
		succeeded = jobs
	}
	footer := []string{
		fmt.Sprintf("%d videos", len(summary.Videos)),
		"",
		strconv.Itoa(jobs),
		strconv.Itoa(succeeded),
		strconv.Itoa(failed),
		formatElapsed(summary.Duration),
		"",
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}
	fmt.Fprintln(out, renderTable(headers, rows, aligns, footer))

	switch {
	case summary.DryRun:
		fmt.Fprintln(out, "Dry run: nothing was rendered")
	case summary.HasFailures():
		fmt.Fprintf(out, "Finished with failures; GIFs written to %s\n", summary.OutputDir)
	default:
		fmt.Fprintf(out, "GIFs written to %s\n", summary.OutputDir)
	}
}

func cueSourceLabel(video workflow.VideoResult) string {
	if video.Subtitle != "" {
		return filepath.Base(video.Subtitle)
	}
	if video.Source != "" {
		return string(video.Source)
	}
	return "-"
}

func formatElapsed(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(10 * time.Millisecond).String()
}
