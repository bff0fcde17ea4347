// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/keepdown/internal/pipeline"
	"github.com/pdiddy/keepdown/internal/render"
	"github.com/pdiddy/keepdown/internal/report"
	"github.com/pdiddy/keepdown/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert new note files into PDF and Markdown documents",
	Long: `Convert scans the keep directory for *.json note files, skips the ones
the ledger already records, and converts the rest. Each note yields a PDF
(via the configured render backend) and a Markdown file in the output
directory. Failed notes are logged, left out of the ledger, and retried on
the next run; one bad note never aborts the batch.

The output directory must exist before the run (see mage init).`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfig(cmd)
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	strict, _ := cmd.Flags().GetBool("strict")
	reportPath, _ := cmd.Flags().GetString("report")

	var r render.Renderer
	if !dryRun {
		var err error
		r, err = render.DetectRenderer(cfg.Backend)
		if err != nil {
			return err
		}
	}

	result, err := pipeline.Run(r, pipeline.Options{Config: cfg, DryRun: dryRun}, os.Stdout)
	if err != nil {
		return err
	}

	if reportPath != "" {
		if err := report.Write(reportPath, runReport(cfg, dryRun, result)); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Wrote run report:", reportPath)
	}

	if strict && result.HasFailures() {
		return fmt.Errorf("%d note(s) failed conversion", len(result.Failed))
	}
	return nil
}

// convertConfig resolves the run configuration: flags override config file
// and environment, which override the defaults.
func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	cfg := types.ConvertConfig{
		KeepDir:    viper.GetString("keep_dir"),
		OutDir:     viper.GetString("out_dir"),
		LedgerPath: viper.GetString("ledger"),
		Backend:    types.RenderBackend(viper.GetString("backend")),
	}

	if cmd.Flags().Changed("keep-dir") {
		cfg.KeepDir, _ = cmd.Flags().GetString("keep-dir")
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutDir, _ = cmd.Flags().GetString("out-dir")
	}
	if cmd.Flags().Changed("ledger") {
		cfg.LedgerPath, _ = cmd.Flags().GetString("ledger")
	}
	if cmd.Flags().Changed("backend") {
		backend, _ := cmd.Flags().GetString("backend")
		cfg.Backend = types.RenderBackend(backend)
	}
	return cfg
}

func runReport(cfg types.ConvertConfig, dryRun bool, result pipeline.Result) report.Run {
	run := report.Run{
		Timestamp: time.Now().UTC(),
		KeepDir:   cfg.KeepDir,
		OutDir:    cfg.OutDir,
		Backend:   string(cfg.Backend),
		DryRun:    dryRun,
		Converted: result.Converted,
		Skipped:   result.Skipped,
		Totals: report.Totals{
			Converted: len(result.Converted),
			Skipped:   len(result.Skipped),
			Failed:    len(result.Failed),
		},
	}
	for _, f := range result.Failed {
		run.Failed = append(run.Failed, report.Failure{Path: f.Path, Error: f.Err})
	}
	return run
}

func init() {
	convertCmd.Flags().String("keep-dir", "", "directory scanned for *.json note files (default: keep)")
	convertCmd.Flags().String("out-dir", "", "directory receiving .pdf and .md outputs (default: generated)")
	convertCmd.Flags().String("ledger", "", "ledger file recording converted notes (default: processed.txt)")
	convertCmd.Flags().String("backend", "", "render backend: pandoc or wkhtmltopdf (default: pandoc)")
	convertCmd.Flags().String("report", "", "write a YAML run report to this path")
	convertCmd.Flags().Bool("dry-run", false, "list what would be converted without converting")
	convertCmd.Flags().Bool("strict", false, "exit non-zero when any note fails")

	rootCmd.AddCommand(convertCmd)
}
