package fittrack

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fittrack/internal/service"
)

var (
	exportOut    string
	importIn     string
	importMode   string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every record of the current user to a JSON snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		return withService(func(svc *service.Service, user string) error {
			snap, err := svc.Export(cmd.Context(), user)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal export json: %w", err)
			}
			if exportOut == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if err := os.WriteFile(exportOut, b, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d section(s) for %s to %s\n", len(snap.Data), user, exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a JSON snapshot into the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		mode, err := service.ParseImportMode(importMode)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(importIn)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		var snap service.Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			return fmt.Errorf("parse import json: %w", err)
		}
		return withService(func(svc *service.Service, user string) error {
			report, err := svc.Import(cmd.Context(), user, snap, service.ImportOptions{Mode: mode, DryRun: importDryRun})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			prefix := "Imported"
			if importDryRun {
				prefix = "Dry run"
			}
			fmt.Fprintf(out, "%s (%s): written=%d merged=%d skipped=%d\n", prefix, mode, report.Written, report.Merged, report.Skipped)
			for _, w := range report.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path, or - for stdout")
	importCmd.Flags().StringVar(&importIn, "in", "", "Snapshot file to import")
	importCmd.Flags().StringVar(&importMode, "mode", "merge", "Conflict mode: fail, skip, merge or replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what would change without writing")
}
