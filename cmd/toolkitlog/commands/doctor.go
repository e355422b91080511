package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/toolkitlog/internal/doctor"
	"github.com/thoreinstein/toolkitlog/internal/errors"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"fix log file permission issues")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose logging setup issues",
	Long: `Run diagnostic checks on the toolkitlog configuration and sinks.

Validates the config file, probes the log directory through a file sink,
checks log file permissions and reports how console output is rendered.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}

	if count > 1 {
		return errors.NewUserError(
			errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}
	return nil
}

func newDoctorRunner(cmd *cobra.Command) *doctor.Runner {
	cfg := currentConfig()

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(configFileTarget()))
	runner.AddCheck(doctor.NewLogFileCheck(cfg.LogFile))
	runner.AddCheck(doctor.NewConsoleCheck(cfg.Console, cfg.Color, cmd.OutOrStdout()))
	return runner
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	runner := newDoctorRunner(cmd)
	report := runner.Run(cmd.Context())

	if doctorFix {
		fixed := applyFixes(cmd.OutOrStdout(), runner)
		if fixed > 0 {
			report = runner.Run(cmd.Context())
		}
	}

	if err := outputDoctorReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errors.NewSystemError(errDoctorErrors, "")
	}
	if report.HasWarnings() {
		return errors.NewUserError(errDoctorWarnings, "")
	}
	return nil
}

// applyFixes runs every fixable check's fixes and returns how many applied.
func applyFixes(w io.Writer, runner *doctor.Runner) int {
	fixed := 0
	for _, check := range runner.Checks() {
		fixer, ok := check.(doctor.Fixer)
		if !ok || !fixer.CanFix() {
			continue
		}
		for _, r := range fixer.Fix() {
			if !doctorQuiet && !doctorJSON {
				fmt.Fprintf(w, "fix %s: %s\n", r.Path, r.Description)
			}
			if r.Fixed {
				fixed++
			}
		}
	}
	return fixed
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}

	outputDoctorText(w, report)
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport) {
	// In normal mode, show only errors and warnings
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}

// errDoctorWarnings is the error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is the error for exit code 2.
var errDoctorErrors = errors.New("errors found")
