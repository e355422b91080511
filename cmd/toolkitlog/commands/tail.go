package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/toolkitlog/internal/console"
	"github.com/thoreinstein/toolkitlog/internal/errors"
	"github.com/thoreinstein/toolkitlog/pkg/fileutil"
	"github.com/thoreinstein/toolkitlog/pkg/logger"
)

var (
	tailLines int
	tailLevel string
)

func init() {
	tailCmd.Flags().IntVarP(&tailLines, "lines", "n", 20, "number of records to show")
	tailCmd.Flags().StringVarP(&tailLevel, "level", "l", "debug", "only show records at or above this level")
	rootCmd.AddCommand(tailCmd)
}

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Show the last records of the log file",
	Long: `Show the last records written to the configured log file.

Records are read from the final 64 KiB of the file. Continuation lines of
multi-line messages are shown with their record.`,
	Example: `  # Last 20 records
  toolkitlog tail

  # Last 5 warnings and errors
  toolkitlog tail -n 5 --level warn`,
	Args: cobra.NoArgs,
	RunE: runTail,
}

func runTail(cmd *cobra.Command, _ []string) error {
	minLevel, err := messageLevel(tailLevel)
	if err != nil {
		return err
	}
	if tailLines < 1 {
		return errors.NewUserError(errors.Newf("--lines must be positive, got %d", tailLines), "")
	}

	cfg := currentConfig()
	if cfg.LogFile == "" {
		return errors.NewUserError(errors.Wrap(errors.ErrNotFound, "no log file configured"),
			"Run: toolkitlog config set log_file <path>")
	}

	data, err := fileutil.ReadTail(cfg.LogFile, fileutil.DefaultTailSize)
	if errors.Is(err, os.ErrNotExist) {
		logFromCmd(cmd).Info("log file does not exist yet", "path", cfg.LogFile)
		return nil
	}
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	records := selectRecords(string(data), minLevel, tailLines)

	out := console.New(cmd.OutOrStdout(), cfg.Color)
	for _, r := range records {
		for _, line := range r {
			if err := out.Write(line); err != nil {
				return errors.Wrap(err, "writing output")
			}
		}
	}
	return nil
}

// selectRecords groups text into records, each a rendered line followed by
// its continuation lines, and returns the last n at or above minLevel.
// Text before the first rendered line is skipped.
func selectRecords(text string, minLevel logger.Level, n int) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	var (
		records [][]string
		keep    bool
	)
	for line := range strings.SplitSeq(text, "\n") {
		if rec, ok := logger.ParseLine(line); ok {
			keep = logger.ShouldLog(minLevel, rec.Level)
			if keep {
				records = append(records, []string{line})
			}
			continue
		}
		if keep && len(records) > 0 {
			last := len(records) - 1
			records[last] = append(records[last], line)
		}
	}

	if len(records) > n {
		records = records[len(records)-n:]
	}
	return records
}
