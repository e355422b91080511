package commands

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/toolkitlog/internal/errors"
)

// maxLineSize bounds a single piped line.
const maxLineSize = 1 << 20

// pipeLevel holds the value of the pipe --level flag.
var pipeLevel string

func init() {
	pipeCmd.Flags().StringVarP(&pipeLevel, "level", "l", "info",
		"level of every line: debug, verbose, info, warn, error")
	rootCmd.AddCommand(pipeCmd)
}

var pipeCmd = &cobra.Command{
	Use:   "pipe [--level L]",
	Short: "Log each line read from stdin",
	Long: `Log each line read from standard input as its own message, in order.

Lines are written once stdin is closed and every sink has drained.`,
	Example: `  # Record a build log
  make 2>&1 | toolkitlog pipe --level verbose

See Also: toolkitlog log`,
	Args: cobra.NoArgs,
	RunE: runPipe,
}

func runPipe(cmd *cobra.Command, _ []string) error {
	level, err := messageLevel(pipeLevel)
	if err != nil {
		return err
	}

	l, err := newToolkitLogger(cmd, currentConfig())
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines int
	for scanner.Scan() {
		if err := l.Log(level, scanner.Text()); err != nil {
			_ = l.Dispose()
			return errors.Wrap(err, "logging line")
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		_ = l.Dispose()
		return errors.Wrap(err, "reading stdin")
	}

	if err := disposeLogger(l); err != nil {
		return err
	}
	logFromCmd(cmd).Debug("pipe finished", "lines", lines, "level", level.String())
	return nil
}
