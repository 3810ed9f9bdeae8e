package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subgif/internal/deps"
	"subgif/internal/language"
	"subgif/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that ffmpeg is available and the output directory is writable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			if ctx.configSeen {
				lines = append(lines, renderStatusLine("Config file", statusInfo, ctx.configPath, colorize))
			} else {
				lines = append(lines, renderStatusLine("Config file", statusInfo, "none found; using defaults", colorize))
			}
			code := language.ToISO2(cfg.Matching.Language)
			lines = append(lines, renderStatusLine("Subtitle language", statusInfo,
				fmt.Sprintf("%s (%s)", language.DisplayName(code), code), colorize))
			lines = append(lines, "")

			statuses := preflight.CheckSystemDeps(cfg)
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(statuses, colorize)...)
			lines = append(lines, "")

			results := preflight.RunAll(cfg)
			lines = append(lines, renderSectionHeader("Paths", colorize)...)
			lines = append(lines, checkLines(results, colorize)...)

			fmt.Fprintln(out, strings.Join(lines, "\n"))

			var problems []string
			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				problems = append(problems, "missing "+strings.Join(missing, ", "))
			}
			for _, result := range results {
				if !result.Passed {
					problems = append(problems, strings.ToLower(result.Name)+" unusable")
				}
			}
			if len(problems) > 0 {
				return fmt.Errorf("doctor found problems: %s", strings.Join(problems, "; "))
			}
			return nil
		},
	}
}
