package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/recon/internal/core"
	"github.com/JonMunkholm/recon/internal/report"
)

type runFlags struct {
	fileA, fileB string
	out          string
	asJSON       bool

	profile        string
	minIDDigits    int
	invalidPrefix  []string
	statusColumn   string
	statusMarker   string
	headerScanRows int
	skipRowsB      int
}

// runOutput is what --json prints.
type runOutput struct {
	RunID       string           `json:"runId"`
	Profile     string           `json:"profile"`
	FileA       string           `json:"fileA"`
	FileB       string           `json:"fileB"`
	Workbook    string           `json:"workbook,omitempty"`
	Settings    core.Settings    `json:"settings"`
	Summary     core.Summary     `json:"summary"`
	Diagnostics core.Diagnostics `json:"diagnostics"`
}

func newRunCommand(c *cli) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile two exports",
		Example: `  recon run --a csod.xlsx --b sap.xlsx --out result.xlsx
  recon run --a csod.csv --b sap.csv --profile csod_sap_strict_ids --json
  recon run --a csod.xlsx --b sap.xlsx --invalid-prefix - --status-column ""`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.fileA, "a", "", "source A file (CSOD export, .xlsx or .csv)")
	flags.StringVar(&f.fileB, "b", "", "source B file (SAP export, .xlsx or .csv)")
	flags.StringVar(&f.out, "out", "", "write the result workbook to this path")
	flags.BoolVar(&f.asJSON, "json", false, "print the summary as JSON")

	flags.StringVar(&f.profile, "profile", "", "reconciliation profile (see 'recon profiles')")
	flags.IntVar(&f.minIDDigits, "min-id-digits", 0, "minimum digits for an employee ID")
	flags.StringArrayVar(&f.invalidPrefix, "invalid-prefix", nil, "excluded ID prefix, repeatable; '-' clears the profile list")
	flags.StringVar(&f.statusColumn, "status-column", "", "source B column checked for the inactive marker")
	flags.StringVar(&f.statusMarker, "status-marker", "", "case-insensitive marker of inactive employees")
	flags.IntVar(&f.headerScanRows, "header-scan-rows", 0, "leading rows of source A searched for the header")
	flags.IntVar(&f.skipRowsB, "skip-rows-b", 0, "rows above the source B header")

	cmd.MarkFlagRequired("a")
	cmd.MarkFlagRequired("b")

	return cmd
}

func (c *cli) run(cmd *cobra.Command, f *runFlags) error {
	// Flags become the configured default so they layer over env overrides.
	o := &c.cfg.Reconcile
	if f.profile != "" {
		o.Profile = f.profile
	}
	if f.minIDDigits > 0 {
		o.MinIDDigits = f.minIDDigits
	}
	if len(f.invalidPrefix) > 0 {
		o.InvalidIDPrefixes = f.invalidPrefix
	}
	if f.statusColumn != "" {
		o.StatusColumn = f.statusColumn
	}
	if f.statusMarker != "" {
		o.StatusMarker = f.statusMarker
	}
	if f.headerScanRows > 0 {
		o.HeaderScanRows = f.headerScanRows
	}
	if f.skipRowsB > 0 {
		o.SourceBSkipRows = f.skipRowsB
	}

	fileA, err := readUpload(f.fileA)
	if err != nil {
		return err
	}
	fileB, err := readUpload(f.fileB)
	if err != nil {
		return err
	}

	svc := core.NewService(c.cfg)
	run, err := svc.Run(cmd.Context(), core.RunRequest{FileA: fileA, FileB: fileB})
	if err != nil {
		return userError(err)
	}

	if f.out != "" {
		if err := writeWorkbook(f.out, run); err != nil {
			return err
		}
		slog.Info("workbook written", "path", f.out)
	}

	out := cmd.OutOrStdout()
	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runOutput{
			RunID:       run.ID,
			Profile:     run.Profile,
			FileA:       run.FileNameA,
			FileB:       run.FileNameB,
			Workbook:    f.out,
			Settings:    run.Settings,
			Summary:     run.Result.Summary,
			Diagnostics: run.Result.Diagnostics,
		})
	}
	return report.WriteSummary(out, run.Result, run.Settings)
}

func readUpload(path string) (core.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Upload{}, err
	}
	return core.Upload{Name: filepath.Base(path), Data: data}, nil
}

func writeWorkbook(path string, run *core.Run) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return report.WriteWorkbook(file, run.Result, run.Settings)
}

// userError replaces a recognised error with its support message. The
// technical error is kept in the debug log.
func userError(err error) error {
	if !core.IsUserFacing(err) {
		return err
	}
	slog.Debug("run failed", "error", err)
	return errors.New(core.FormatUserError(err))
}
