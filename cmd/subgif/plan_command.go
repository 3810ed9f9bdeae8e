package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subgif/internal/config"
	"subgif/internal/planner"
	"subgif/internal/workflow"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	var format string

	cmd := &cobra.Command{
		Use:   "plan <input-dir>",
		Short: "List the clips convert would render without touching the output directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case "table", "json", "yaml":
			default:
				return fmt.Errorf("unsupported format %q (use table, json or yaml)", format)
			}

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
			runner, err := workflow.NewFromConfig(cfg, logger, workflow.WithDryRun(true))
			if err != nil {
				return err
			}
			summary, err := runner.Run(cmd.Context(), inputDir, cfg.Paths.OutputDir)
			if err != nil {
				if errors.Is(err, workflow.ErrInputDirectoryNotFound) {
					return fmt.Errorf("input directory %q does not exist or is not a directory", args[0])
				}
				return err
			}

			switch format {
			case "json":
				return writeJSON(cmd, summary.Plans())
			case "yaml":
				return writeYAML(cmd, summary.Plans())
			default:
				printPlans(cmd.OutOrStdout(), summary)
				return nil
			}
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	return cmd
}

func printPlans(out io.Writer, summary workflow.Summary) {
	if len(summary.Videos) == 0 {
		fmt.Fprintf(out, "No videos found in %s\n", summary.InputDir)
		return
	}
	for i, video := range summary.Videos {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if video.Error != "" {
			fmt.Fprintf(out, "%s: cannot plan (%s)\n", video.Name, video.Error)
			continue
		}
		fmt.Fprintf(out, "%s: %d clips from %s\n", video.Name, video.Jobs, cueSourceLabel(video))
		if len(video.Plan.Jobs) == 0 {
			continue
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Start", "End", "Text", "Output"},
			jobRows(video.Plan.Jobs),
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			nil,
		))
	}
}

func jobRows(jobs []planner.Job) [][]string {
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, []string{
			strconv.Itoa(job.Index),
			job.Start.FFmpeg(),
			job.End.FFmpeg(),
			strings.ReplaceAll(job.Text, "\n", " / "),
			filepath.Base(job.Output),
		})
	}
	return rows
}
